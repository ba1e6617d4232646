package systems

import (
	"fmt"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

// Enchant вставляет руну в свободный слот усиления предмета снаряжения.
// Нужна площадка своей команды со станцией усиления. Руна расходуется.
func Enchant(env *Env, p *domain.Player, itemIndex, runeIndex int) (string, error) {
	if err := requireAlive(p); err != nil {
		return "", err
	}
	site, err := ownSite(env.World, p)
	if err != nil {
		return "", err
	}
	if site.FindBuildingType(domain.BuildingEnhancement) == nil {
		return "", domain.Precondition("На площадке нет станции усиления.")
	}
	if itemIndex == runeIndex {
		return "", domain.Validation("Предмет и руна должны быть разными.")
	}
	item := p.Inventory.At(itemIndex)
	if item == nil || !item.IsEquipment() {
		return "", domain.Validation("Выберите предмет снаряжения.")
	}
	runeItem := p.Inventory.At(runeIndex)
	if runeItem == nil || runeItem.Type != domain.ItemRune {
		return "", domain.Validation("Выберите руну.")
	}
	if len(item.Enchantments) >= item.EnhancementSlots {
		return "", domain.Precondition("У %s нет свободных слотов усиления.", item.Name)
	}

	if item.Stats == nil {
		item.Stats = make(domain.StatMods, len(runeItem.Stats))
	}
	for stat, v := range runeItem.Stats {
		if domain.IsKnownStat(stat) {
			item.Stats[stat] += v
		}
	}
	item.Enchantments = append(item.Enchantments, runeItem.Name)
	p.Inventory.Take(runeIndex, 1)

	return fmt.Sprintf("%s усилен руной %s.", item.Name, runeItem.Name), nil
}
