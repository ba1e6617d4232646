package systems

import (
	"math/rand"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/utils"
)

// DistributeDrops разыгрывает добычу моба между атакующими.
// Каждая строка добычи бросается для каждого атакующего отдельно с шансом
// chance * level * (урон атакующего по мобу / суммарный урон по мобу),
// поэтому одну редкую вещь могут получить несколько участников.
// После раздачи счетчики урона по этому мобу обнуляются у всех игроков.
func DistributeDrops(env *Env, m *domain.Mob, attackers []string) {
	w := env.World

	total := 0.0
	for _, id := range attackers {
		if p := w.Player(id); p != nil {
			total += p.DamageDealt[m.ID]
		}
	}

	if total > 0 {
		for i := range m.Drops {
			drop := &m.Drops[i]
			for _, id := range attackers {
				p := w.Player(id)
				if p == nil || p.IsDead {
					continue
				}
				share := p.DamageDealt[m.ID] / total
				chance := drop.Chance * float64(m.Level) * share
				if env.Rng.Float64() >= chance {
					continue
				}
				qty := utils.RandRange(env.Rng, drop.MinQuantity, drop.MaxQuantity)
				p.Inventory.AddByName(ItemFromDrop(drop, qty, env.Rng))
				env.Tell(p.ID, LogLoot, "Вы получаете %dx %s! (%.1f%% урона)", qty, drop.Name, share*100)
			}
		}
	}

	for _, p := range w.Players {
		delete(p.DamageDealt, m.ID)
	}
}

// ItemFromDrop создает предмет из строки добычи.
func ItemFromDrop(d *domain.Drop, qty int, rng *rand.Rand) *domain.Item {
	it := &domain.Item{
		Name:        d.Name,
		Type:        d.Type,
		Slot:        d.Slot,
		Level:       d.Level,
		Quality:     d.Quality,
		Quantity:    qty,
		Description: d.Description,
	}
	if len(d.Stats) > 0 {
		it.Stats = make(domain.StatMods, len(d.Stats))
		for k, v := range d.Stats {
			it.Stats[k] = v
		}
	}
	if it.IsEquipment() {
		it.EnhancementSlots = RollEnhancementSlots(rng)
	}
	return it
}

// RollEnhancementSlots - число слотов усиления: подбрасываем монету, пока выпадает орел.
func RollEnhancementSlots(rng *rand.Rand) int {
	n := 0
	for rng.Float64() < 0.5 {
		n++
	}
	return n
}
