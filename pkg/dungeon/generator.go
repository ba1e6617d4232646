package dungeon

import (
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/content"
	"github.com/uhaszYsz/mmomicro/pkg/utils"
)

// Константы генерации
const (
	NoiseScale     = 0.15 // частота шума, искажающего границы биомов
	NoiseStrength  = 2.5  // амплитуда искажения в клетках
	MinMobsPerTile = 3
	MaxMobsPerTile = 9
)

type seedPoint struct {
	x, y  float64
	biome string
}

// GenerateBiomes размечает карту: для каждого биома случайная опорная точка,
// клетка принадлежит ближайшей. Расстояние искажается симплекс-шумом,
// чтобы границы не были прямыми.
func GenerateBiomes(w *domain.World, biomes []content.Biome, rng *rand.Rand) {
	if len(biomes) == 0 {
		return
	}
	noise := opensimplex.NewWithSeed(rng.Int63())

	taken := make(map[int]bool, len(biomes))
	seeds := make([]seedPoint, 0, len(biomes))
	for _, b := range biomes {
		for {
			x, y := rng.Intn(w.Width), rng.Intn(w.Height)
			idx := w.GetIndex(x, y)
			if taken[idx] {
				continue
			}
			taken[idx] = true
			seeds = append(seeds, seedPoint{x: float64(x), y: float64(y), biome: b.Key})
			break
		}
	}

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			fx := float64(x) + noise.Eval2(float64(x)*NoiseScale, float64(y)*NoiseScale)*NoiseStrength
			fy := float64(y) + noise.Eval2(float64(y)*NoiseScale+100, float64(x)*NoiseScale+100)*NoiseStrength
			best, bestDist := seeds[0].biome, math.Inf(1)
			for _, s := range seeds {
				d := math.Hypot(fx-s.x, fy-s.y)
				if d < bestDist {
					best, bestDist = s.biome, d
				}
			}
			w.Biomes[w.GetIndex(x, y)] = best
		}
	}
}

// Populate расселяет мобов: 3-9 на клетку из шаблонов биома клетки, без боссов.
// Возвращает число созданных мобов.
func Populate(w *domain.World, snap *content.Snapshot, rng *rand.Rand) int {
	spawned := 0
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			pos := domain.Position{X: x, Y: y}
			biome := w.BiomeAt(pos)
			templates := snap.EnemiesForBiome(biome, false)
			if len(templates) == 0 {
				continue
			}
			n := utils.RandRange(rng, MinMobsPerTile, MaxMobsPerTile)
			for i := 0; i < n; i++ {
				tmpl := templates[rng.Intn(len(templates))]
				w.AddObject(SpawnMob(tmpl, pos, 1, biome, w.Rules))
				spawned++
			}
		}
	}
	return spawned
}
