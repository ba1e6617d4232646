package systems

import (
	"errors"
	"fmt"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

// SpawnPoint - точка появления новых и возрожденных игроков.
var SpawnPoint = domain.Position{X: 0, Y: 0}

// MovePlayer переводит игрока в соседнюю клетку (включая диагонали).
// Перемещение всегда прерывает бой.
func MovePlayer(env *Env, p *domain.Player, to domain.Position) (string, error) {
	w := env.World
	if err := requireAlive(p); err != nil {
		return "", err
	}
	if !w.InBounds(to) {
		return "", domain.Validation("Нельзя выйти за границы карты.")
	}
	if !p.Pos.IsAdjacent(to) {
		return "", domain.Validation("Можно перейти только в соседнюю клетку.")
	}

	StopCombat(w, p)
	if err := w.UpdateEntityPos(p, to); err != nil {
		if errors.Is(err, domain.ErrOutOfBounds) {
			return "", domain.Validation("Нельзя выйти за границы карты.")
		}
		return "", err
	}
	return fmt.Sprintf("%s переходит в %s.", p.Name, to), nil
}

// RespawnPlayer возвращает погибшего игрока в точку появления с полными ресурсами.
func RespawnPlayer(env *Env, p *domain.Player) (string, error) {
	if !p.IsDead {
		return "", domain.Precondition("Вы живы.")
	}
	p.IsDead = false
	RecalculateStats(p)
	p.Stats.HP = p.Stats.MaxHP
	p.Stats.MP = p.Stats.MaxMP
	p.Stats.Stamina = p.Stats.MaxStamina
	if p.Pos != SpawnPoint {
		if err := env.World.UpdateEntityPos(p, SpawnPoint); err != nil {
			return "", err
		}
	}
	env.Broadcast(LogInfo, "%s возрождается!", p.Name)
	return "", nil
}
