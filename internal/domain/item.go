package domain

// Типы предметов
const (
	ItemMaterial   = "material"
	ItemEquipment  = "equipment"
	ItemConsumable = "consumable"
	ItemScroll     = "scroll"
	ItemRune       = "rune"
)

// Слоты экипировки
const (
	SlotWeapon = "weapon"
	SlotHelmet = "helmet"
	SlotArmor  = "armor"
	SlotLegs   = "legs"
	SlotGloves = "gloves"
	SlotBoots  = "boots"
	SlotCape   = "cape"
	SlotHand   = "hand"
	SlotRing   = "ring"
	SlotRing1  = "ring1"
	SlotRing2  = "ring2"
	SlotRing3  = "ring3"
)

// EquipmentSlots - все именованные слоты в порядке отображения.
var EquipmentSlots = []string{
	SlotWeapon, SlotHelmet, SlotArmor, SlotLegs, SlotGloves,
	SlotBoots, SlotCape, SlotHand, SlotRing1, SlotRing2, SlotRing3,
}

var RingSlots = []string{SlotRing1, SlotRing2, SlotRing3}

// BuffEffect - временный процентный бонус от свитка.
type BuffEffect struct {
	Stat       string  `json:"stat" yaml:"stat"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
	DurationMs int64   `json:"duration" yaml:"duration"`
}

// ItemEffects - эффект расходника или свитка.
type ItemEffects struct {
	Replenish string      `json:"replenish,omitempty" yaml:"replenish,omitempty"` // hp, mp, stamina
	Value     float64     `json:"value,omitempty" yaml:"value,omitempty"`         // процент от максимума
	Buff      *BuffEffect `json:"buff,omitempty" yaml:"buff,omitempty"`
}

// Item - предмет в инвентаре, хранилище или экипировке.
type Item struct {
	Name             string       `json:"name" yaml:"name"`
	Type             string       `json:"type" yaml:"type"`
	Slot             string       `json:"slot,omitempty" yaml:"slot,omitempty"`
	Stats            StatMods     `json:"stats,omitempty" yaml:"stats,omitempty"`
	Effects          *ItemEffects `json:"effects,omitempty" yaml:"effects,omitempty"`
	Level            int          `json:"level" yaml:"level"`
	Quality          string       `json:"quality" yaml:"quality"`
	Quantity         int          `json:"quantity" yaml:"quantity"`
	EnhancementSlots int          `json:"enhancementSlots,omitempty" yaml:"enhancementSlots,omitempty"`
	Enchantments     []string     `json:"enchantments,omitempty" yaml:"enchantments,omitempty"`
	Description      string       `json:"description,omitempty" yaml:"description,omitempty"`
}

// Clone возвращает глубокую копию предмета.
func (it *Item) Clone() *Item {
	c := *it
	if it.Stats != nil {
		c.Stats = make(StatMods, len(it.Stats))
		for k, v := range it.Stats {
			c.Stats[k] = v
		}
	}
	if it.Effects != nil {
		e := *it.Effects
		if it.Effects.Buff != nil {
			b := *it.Effects.Buff
			e.Buff = &b
		}
		c.Effects = &e
	}
	if it.Enchantments != nil {
		c.Enchantments = append([]string(nil), it.Enchantments...)
	}
	return &c
}

// IsEquipment - уникальный предмет, не складывается в стопки.
func (it *Item) IsEquipment() bool {
	return it.Type == ItemEquipment
}

// SameStack - ключ стопки: имя, тип, уровень, качество.
func (it *Item) SameStack(other *Item) bool {
	return it.Name == other.Name && it.Type == other.Type &&
		it.Level == other.Level && it.Quality == other.Quality
}

// Inventory - упорядоченный список предметов.
type Inventory []*Item

// Count возвращает суммарное количество предметов с именем name.
func (inv Inventory) Count(name string) int {
	total := 0
	for _, it := range inv {
		if it.Name == name {
			total += it.Quantity
		}
	}
	return total
}

// At возвращает предмет по индексу или nil.
func (inv Inventory) At(idx int) *Item {
	if idx < 0 || idx >= len(inv) {
		return nil
	}
	return inv[idx]
}

// RemoveAt удаляет предмет по индексу, сохраняя порядок.
func (inv *Inventory) RemoveAt(idx int) {
	s := *inv
	*inv = append(s[:idx], s[idx+1:]...)
}

// Take списывает qty штук предмета по индексу, удаляя пустую стопку.
func (inv *Inventory) Take(idx, qty int) {
	it := (*inv)[idx]
	it.Quantity -= qty
	if it.Quantity <= 0 {
		inv.RemoveAt(idx)
	}
}

// Consume списывает qty штук по имени из первых подходящих стопок.
// Вызывающий обязан заранее проверить Count.
func (inv *Inventory) Consume(name string, qty int) {
	for i := 0; i < len(*inv) && qty > 0; {
		it := (*inv)[i]
		if it.Name != name {
			i++
			continue
		}
		n := min(qty, it.Quantity)
		qty -= n
		it.Quantity -= n
		if it.Quantity <= 0 {
			inv.RemoveAt(i)
			continue
		}
		i++
	}
}

// AddByName кладет предмет, объединяя со стопкой того же имени (снаряжение всегда отдельно).
func (inv *Inventory) AddByName(item *Item) {
	if !item.IsEquipment() {
		for _, it := range *inv {
			if it.Name == item.Name && !it.IsEquipment() {
				it.Quantity += item.Quantity
				return
			}
		}
	}
	*inv = append(*inv, item)
}

// AddStack кладет предмет, объединяя по полному ключу стопки (снаряжение всегда отдельно).
func (inv *Inventory) AddStack(item *Item) {
	if i := inv.FindStack(item); i >= 0 {
		(*inv)[i].Quantity += item.Quantity
		return
	}
	*inv = append(*inv, item)
}

// FindStack возвращает индекс стопки с тем же ключом или -1.
func (inv Inventory) FindStack(item *Item) int {
	if item.IsEquipment() {
		return -1
	}
	for i, it := range inv {
		if it.SameStack(item) {
			return i
		}
	}
	return -1
}
