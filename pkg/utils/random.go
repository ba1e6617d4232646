package utils

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// GenerateID создает уникальный ID сущности.
func GenerateID() string {
	return uuid.NewString()
}

// GenerateShortID возвращает первые 8 символов UUID (для суффиксов ID мобов и задач).
func GenerateShortID() string {
	return uuid.NewString()[:8]
}

// GenerateLogID создает сортируемый по времени ID для записей лога и чата.
func GenerateLogID() string {
	return ulid.Make().String()
}

// RandRange возвращает случайное целое в диапазоне [min, max] включительно.
func RandRange(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// Roll возвращает равномерное значение в [0, 100).
func Roll(rng *rand.Rand) float64 {
	return rng.Float64() * 100
}
