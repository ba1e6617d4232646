package domain

import (
	"errors"
	"strings"
)

// ErrOutOfBounds - координаты вне карты.
var ErrOutOfBounds = errors.New("out of bounds")

// Cell - содержимое клетки: игроки и прочие объекты (мобы, площадки, осадные машины).
type Cell struct {
	Players []*Player
	Objects []Entity
}

// World - агрегат состояния симуляции. Им владеет одна горутина инстанса.
type World struct {
	Width  int
	Height int
	Rules  Rules

	// Cells - плоский грид, индекс Y*Width+X. Строится один раз и меняется инкрементально.
	Cells []Cell
	// Biomes - биом каждой клетки, тот же индекс.
	Biomes []string

	// Registry - справочник ID -> сущность. Хранит те же указатели, что и грид.
	Registry map[string]Entity

	// Players и Objects - порядок вставки, по нему идут фазы тика.
	Players       []*Player
	Objects       []Entity
	playersByName map[string]*Player

	Teams     map[string]*Team
	TeamOrder []string
	Chat      []ChatMessage

	// destroyed - объекты, помеченные к удалению в текущем тике.
	destroyed map[string]bool
}

// NewWorld создает пустой квадратный мир с командой по умолчанию.
func NewWorld(rules Rules) *World {
	size := rules.MapSize
	w := &World{
		Width:         size,
		Height:        size,
		Rules:         rules,
		Cells:         make([]Cell, size*size),
		Biomes:        make([]string, size*size),
		Registry:      make(map[string]Entity),
		playersByName: make(map[string]*Player),
		Teams:         make(map[string]*Team),
		destroyed:     make(map[string]bool),
	}
	w.AddTeam(NewDefaultTeam())
	return w
}

func (w *World) GetIndex(x, y int) int {
	return y*w.Width + x
}

func (w *World) InBounds(p Position) bool {
	return p.X >= 0 && p.X < w.Width && p.Y >= 0 && p.Y < w.Height
}

// CellAt возвращает клетку или nil за пределами карты.
func (w *World) CellAt(p Position) *Cell {
	if !w.InBounds(p) {
		return nil
	}
	return &w.Cells[w.GetIndex(p.X, p.Y)]
}

func (w *World) BiomeAt(p Position) string {
	if !w.InBounds(p) {
		return ""
	}
	return w.Biomes[w.GetIndex(p.X, p.Y)]
}

// GetEntity - O(1) поиск. nil означает "цели больше нет", это не ошибка.
func (w *World) GetEntity(id string) Entity {
	if id == "" {
		return nil
	}
	return w.Registry[id]
}

func (w *World) Player(id string) *Player {
	p, _ := w.GetEntity(id).(*Player)
	return p
}

func (w *World) Mob(id string) *Mob {
	m, _ := w.GetEntity(id).(*Mob)
	return m
}

func (w *World) Site(id string) *ConstructionSite {
	s, _ := w.GetEntity(id).(*ConstructionSite)
	return s
}

func (w *World) PlayerByName(name string) *Player {
	return w.playersByName[strings.ToLower(name)]
}

// AddPlayer регистрирует игрока и ставит его в клетку.
func (w *World) AddPlayer(p *Player) {
	w.Registry[p.ID] = p
	w.playersByName[strings.ToLower(p.Name)] = p
	w.Players = append(w.Players, p)
	w.addToCell(p)
}

// AddObject регистрирует моба, площадку или осадную машину и ставит в клетку.
func (w *World) AddObject(e Entity) {
	w.Registry[e.GetID()] = e
	w.Objects = append(w.Objects, e)
	w.addToCell(e)
}

// RemovePlayer убирает игрока из справочника, клетки и команды. Используется для ботов.
func (w *World) RemovePlayer(id string) bool {
	p := w.Player(id)
	if p == nil {
		return false
	}
	w.removeFromCell(p)
	delete(w.Registry, id)
	delete(w.playersByName, strings.ToLower(p.Name))
	for i, v := range w.Players {
		if v == p {
			w.Players = append(w.Players[:i], w.Players[i+1:]...)
			break
		}
	}
	if t := w.Team(p.Team); t != nil {
		t.RemoveMember(id)
	}
	return true
}

// UpdateEntityPos перемещает сущность: удалить из старой клетки, затем вставить в новую.
func (w *World) UpdateEntityPos(e Entity, to Position) error {
	if !w.InBounds(to) {
		return ErrOutOfBounds
	}
	w.removeFromCell(e)
	e.SetPos(to)
	w.addToCell(e)
	return nil
}

// RemoveObjects удаляет набор объектов из справочника, клеток и списка за один проход.
func (w *World) RemoveObjects(ids map[string]bool) {
	if len(ids) == 0 {
		return
	}
	kept := w.Objects[:0]
	for _, e := range w.Objects {
		if ids[e.GetID()] {
			w.removeFromCell(e)
			delete(w.Registry, e.GetID())
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(w.Objects); i++ {
		w.Objects[i] = nil
	}
	w.Objects = kept
}

// MarkDestroyed помечает объект к удалению. Повторная пометка ничего не меняет.
func (w *World) MarkDestroyed(id string) {
	if _, ok := w.Registry[id]; ok {
		w.destroyed[id] = true
	}
}

func (w *World) IsDestroyed(id string) bool {
	return w.destroyed[id]
}

// LiveEntity - как GetEntity, но помеченные к удалению объекты считаются отсутствующими.
func (w *World) LiveEntity(id string) Entity {
	if w.destroyed[id] {
		return nil
	}
	return w.GetEntity(id)
}

// FlushDestroyed удаляет все помеченные объекты ровно один раз и возвращает их число.
func (w *World) FlushDestroyed() int {
	n := len(w.destroyed)
	if n == 0 {
		return 0
	}
	w.RemoveObjects(w.destroyed)
	w.destroyed = make(map[string]bool)
	return n
}

func (w *World) addToCell(e Entity) {
	c := w.CellAt(e.GetPos())
	if c == nil {
		return
	}
	if p, ok := e.(*Player); ok {
		c.Players = append(c.Players, p)
		return
	}
	c.Objects = append(c.Objects, e)
}

func (w *World) removeFromCell(e Entity) {
	c := w.CellAt(e.GetPos())
	if c == nil {
		return
	}
	if p, ok := e.(*Player); ok {
		for i, v := range c.Players {
			if v == p {
				c.Players = append(c.Players[:i], c.Players[i+1:]...)
				return
			}
		}
		return
	}
	for i, v := range c.Objects {
		if v == e {
			c.Objects = append(c.Objects[:i], c.Objects[i+1:]...)
			return
		}
	}
}

// SiteAt возвращает площадку команды team в клетке или nil.
func (w *World) SiteAt(p Position, team string) *ConstructionSite {
	for _, s := range w.SitesAt(p) {
		if s.Team == team {
			return s
		}
	}
	return nil
}

func (w *World) SitesAt(p Position) []*ConstructionSite {
	c := w.CellAt(p)
	if c == nil {
		return nil
	}
	var out []*ConstructionSite
	for _, e := range c.Objects {
		if s, ok := e.(*ConstructionSite); ok {
			out = append(out, s)
		}
	}
	return out
}

// SiegesTargeting возвращает осадные машины, нацеленные на площадку.
func (w *World) SiegesTargeting(siteID string) []*SiegeMachine {
	var out []*SiegeMachine
	for _, e := range w.Objects {
		if s, ok := e.(*SiegeMachine); ok && s.TargetID == siteID {
			out = append(out, s)
		}
	}
	return out
}

// Mobs возвращает всех мобов в порядке вставки.
func (w *World) Mobs() []*Mob {
	var out []*Mob
	for _, e := range w.Objects {
		if m, ok := e.(*Mob); ok {
			out = append(out, m)
		}
	}
	return out
}

// --- Команды ---

func (w *World) Team(id string) *Team {
	return w.Teams[id]
}

func (w *World) AddTeam(t *Team) {
	if _, exists := w.Teams[t.ID]; !exists {
		w.TeamOrder = append(w.TeamOrder, t.ID)
	}
	w.Teams[t.ID] = t
}

func (w *World) RemoveTeam(id string) {
	delete(w.Teams, id)
	w.TeamOrder = removeString(w.TeamOrder, id)
}

// TeamByName - поиск без учета регистра.
func (w *World) TeamByName(name string) *Team {
	for _, id := range w.TeamOrder {
		if t := w.Teams[id]; strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

// AppendChat добавляет сообщение, храня не больше ChatBacklog последних.
func (w *World) AppendChat(msg ChatMessage) {
	w.Chat = append(w.Chat, msg)
	if limit := w.Rules.ChatBacklog; limit > 0 && len(w.Chat) > limit {
		w.Chat = append(w.Chat[:0:0], w.Chat[len(w.Chat)-limit:]...)
	}
}
