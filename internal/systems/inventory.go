package systems

import (
	"fmt"
	"time"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

// --- EQUIP ---

// Equip надевает предмет из инвентаря. Кольцо занимает первый свободный слот ring1-ring3,
// остальные предметы вытесняют надетый предмет того же слота обратно в инвентарь.
func Equip(p *domain.Player, itemIndex int) (string, error) {
	item := p.Inventory.At(itemIndex)
	if item == nil {
		return "", domain.NotFound("Предмет не найден.")
	}
	if !item.IsEquipment() || item.Slot == "" {
		return "", domain.Validation("%s нельзя надеть.", item.Name)
	}

	slot := item.Slot
	if slot == domain.SlotRing {
		slot = ""
		for _, rs := range domain.RingSlots {
			if p.Equipment[rs] == nil {
				slot = rs
				break
			}
		}
		if slot == "" {
			return "", domain.Precondition("Все слоты колец заняты.")
		}
	} else if _, ok := p.Equipment[slot]; !ok {
		return "", domain.Validation("Неизвестный слот %q.", slot)
	}

	p.Inventory.RemoveAt(itemIndex)
	if prev := p.Equipment[slot]; prev != nil {
		p.Inventory = append(p.Inventory, prev)
	}
	p.Equipment[slot] = item
	RecalculateStats(p)
	return fmt.Sprintf("%s надевает %s.", p.Name, item.Name), nil
}

// --- UNEQUIP ---

func Unequip(p *domain.Player, slot string) (string, error) {
	item, ok := p.Equipment[slot]
	if !ok {
		return "", domain.Validation("Неизвестный слот %q.", slot)
	}
	if item == nil {
		return "", domain.Precondition("Слот %s пуст.", slot)
	}
	p.Inventory = append(p.Inventory, item)
	p.Equipment[slot] = nil
	RecalculateStats(p)
	return fmt.Sprintf("%s снимает %s.", p.Name, item.Name), nil
}

// --- USE ---

// UseItem применяет расходник (восполнение в процентах от максимума) или свиток (бафф).
// Использованный предмет списывается по одной штуке.
func UseItem(p *domain.Player, itemIndex int, now time.Time) (string, error) {
	item := p.Inventory.At(itemIndex)
	if item == nil {
		return "", domain.NotFound("Предмет не найден.")
	}
	if p.IsDead {
		return "", domain.Precondition("Вы мертвы.")
	}

	var msg string
	switch {
	case item.Type == domain.ItemConsumable && item.Effects != nil && item.Effects.Replenish != "":
		resource := item.Effects.Replenish
		maxName, ok := domain.MaxFor(resource)
		if !ok {
			return "", domain.Validation("%s нельзя использовать.", item.Name)
		}
		amount := p.Stats.Get(maxName) * item.Effects.Value / 100
		p.Stats.Restore(resource, amount)
		msg = fmt.Sprintf("%s использует %s и восстанавливает %.0f %s.", p.Name, item.Name, amount, resource)

	case item.Type == domain.ItemScroll && item.Effects != nil && item.Effects.Buff != nil:
		b := item.Effects.Buff
		if !domain.IsKnownStat(b.Stat) {
			return "", domain.Validation("%s нельзя использовать.", item.Name)
		}
		duration := time.Duration(b.DurationMs) * time.Millisecond
		p.Buffs = append(p.Buffs, domain.Buff{Stat: b.Stat, Percentage: b.Percentage, ExpiresAt: now.Add(duration)})
		msg = fmt.Sprintf("%s использует %s: +%.0f%% к %s на %s.", p.Name, item.Name, b.Percentage, b.Stat, duration)

	default:
		return "", domain.Validation("%s нельзя использовать.", item.Name)
	}

	p.Inventory.Take(itemIndex, 1)
	RecalculateStats(p)
	return msg, nil
}
