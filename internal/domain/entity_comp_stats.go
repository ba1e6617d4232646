package domain

// Имена характеристик, используемые в предметах, рунах и баффах.
const (
	StatHP         = "hp"
	StatMaxHP      = "maxHp"
	StatMP         = "mp"
	StatMaxMP      = "maxMp"
	StatStamina    = "stamina"
	StatMaxStamina = "maxStamina"
	StatDmg        = "dmg"
	StatSpeed      = "speed"
	StatCritical   = "critical"
	StatDodge      = "dodge"
	StatAccuracy   = "accuracy"
	StatDef        = "def"
)

// Stats - характеристики и ресурсы. Значения дробные: урон после защиты и бонусов не целый.
type Stats struct {
	HP         float64 `json:"hp" yaml:"hp"`
	MaxHP      float64 `json:"maxHp" yaml:"maxHp"`
	MP         float64 `json:"mp" yaml:"mp"`
	MaxMP      float64 `json:"maxMp" yaml:"maxMp"`
	Stamina    float64 `json:"stamina" yaml:"stamina"`
	MaxStamina float64 `json:"maxStamina" yaml:"maxStamina"`
	Dmg        float64 `json:"dmg" yaml:"dmg"`
	Speed      float64 `json:"speed" yaml:"speed"`
	Critical   float64 `json:"critical" yaml:"critical"`
	Dodge      float64 `json:"dodge" yaml:"dodge"`
	Accuracy   float64 `json:"accuracy" yaml:"accuracy"`
	Def        float64 `json:"def" yaml:"def"`
}

// StatMods - набор прибавок к характеристикам (предметы, руны).
type StatMods map[string]float64

// field возвращает указатель на характеристику по имени или nil.
func (s *Stats) field(name string) *float64 {
	switch name {
	case StatHP:
		return &s.HP
	case StatMaxHP:
		return &s.MaxHP
	case StatMP:
		return &s.MP
	case StatMaxMP:
		return &s.MaxMP
	case StatStamina:
		return &s.Stamina
	case StatMaxStamina:
		return &s.MaxStamina
	case StatDmg:
		return &s.Dmg
	case StatSpeed:
		return &s.Speed
	case StatCritical:
		return &s.Critical
	case StatDodge:
		return &s.Dodge
	case StatAccuracy:
		return &s.Accuracy
	case StatDef:
		return &s.Def
	}
	return nil
}

// Get возвращает характеристику по имени. Неизвестное имя дает 0.
func (s *Stats) Get(name string) float64 {
	if f := s.field(name); f != nil {
		return *f
	}
	return 0
}

// Set устанавливает характеристику по имени. Возвращает false для неизвестного имени.
func (s *Stats) Set(name string, v float64) bool {
	f := s.field(name)
	if f == nil {
		return false
	}
	*f = v
	return true
}

// Apply прибавляет набор модификаторов.
func (s *Stats) Apply(mods StatMods) {
	for name, v := range mods {
		if f := s.field(name); f != nil {
			*f += v
		}
	}
}

// IsKnownStat проверяет имя характеристики.
func IsKnownStat(name string) bool {
	var s Stats
	return s.field(name) != nil
}

// MaxFor возвращает имя максимума для восполняемого ресурса ("hp" -> "maxHp").
func MaxFor(name string) (string, bool) {
	switch name {
	case StatHP:
		return StatMaxHP, true
	case StatMP:
		return StatMaxMP, true
	case StatStamina:
		return StatMaxStamina, true
	}
	return "", false
}

// TakeDamage наносит урон. Возвращает true, если здоровье дошло до нуля.
func (s *Stats) TakeDamage(amount float64) bool {
	if amount < 0 {
		amount = 0
	}
	s.HP -= amount
	if s.HP <= 0 {
		s.HP = 0
		return true
	}
	return false
}

// HasStamina проверяет, хватает ли сил
func (s *Stats) HasStamina(cost float64) bool {
	return s.Stamina >= cost
}

// SpendStamina тратит силы. Возвращает false, если не хватило.
func (s *Stats) SpendStamina(cost float64) bool {
	if s.Stamina < cost {
		return false
	}
	s.Stamina -= cost
	return true
}

// Restore восполняет ресурс на amount, не выше максимума.
func (s *Stats) Restore(name string, amount float64) {
	maxName, ok := MaxFor(name)
	if !ok {
		return
	}
	cur, limit := s.field(name), s.Get(maxName)
	*cur += amount
	if *cur > limit {
		*cur = limit
	}
}

// ClampResources ограничивает текущие ресурсы их максимумами.
func (s *Stats) ClampResources() {
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	if s.MP > s.MaxMP {
		s.MP = s.MaxMP
	}
	if s.Stamina > s.MaxStamina {
		s.Stamina = s.MaxStamina
	}
}
