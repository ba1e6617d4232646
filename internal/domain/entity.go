package domain

// Entity - общий интерфейс всех объектов мира (игрок, моб, площадка, осадная машина).
// Грид и справочник хранят один и тот же указатель, копий не бывает.
type Entity interface {
	GetID() string
	GetName() string
	GetType() string
	GetPos() Position
	SetPos(Position)
	GetStats() *Stats
}

// Base - общие поля сущности.
type Base struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Pos  Position `json:"pos"`
}

func (b *Base) GetID() string { return b.ID }
func (b *Base) GetName() string { return b.Name }
func (b *Base) GetPos() Position { return b.Pos }
func (b *Base) SetPos(p Position) { b.Pos = p }

// Attackers - ограниченный список атакующих без повторов.
type Attackers struct {
	IDs []string `json:"attackers"`
	Max int      `json:"maxAttackers"`
}

func NewAttackers(max int) Attackers {
	return Attackers{IDs: make([]string, 0, max), Max: max}
}

func (a *Attackers) Has(id string) bool {
	for _, v := range a.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// Add добавляет атакующего. Повторное добавление допустимо и ничего не меняет.
// Возвращает false, если список полон.
func (a *Attackers) Add(id string) bool {
	if a.Has(id) {
		return true
	}
	if len(a.IDs) >= a.Max {
		return false
	}
	a.IDs = append(a.IDs, id)
	return true
}

func (a *Attackers) Remove(id string) {
	for i, v := range a.IDs {
		if v == id {
			a.IDs = append(a.IDs[:i], a.IDs[i+1:]...)
			return
		}
	}
}

func (a *Attackers) Len() int { return len(a.IDs) }

// Snapshot возвращает копию списка для безопасного обхода с изменениями.
func (a *Attackers) Snapshot() []string {
	return append([]string(nil), a.IDs...)
}

func (a *Attackers) Clear() { a.IDs = a.IDs[:0] }

// Attackable - цель PvE: моб или строительная площадка.
type Attackable interface {
	Entity
	AttackerList() *Attackers
}
