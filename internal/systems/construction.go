package systems

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
	"github.com/uhaszYsz/mmomicro/pkg/utils"
)

// Прирост слотов здания при повышении до уровня level.
func slotGrowth(kind string, level int) int {
	switch kind {
	case domain.BuildingPersonalStorage:
		return 10 * (level - 1)
	case domain.BuildingStorage:
		return 25 * (level - 1)
	case domain.BuildingCrafting:
		return 3 * level
	}
	return 0
}

func requireAlive(p *domain.Player) error {
	if p.IsDead {
		return domain.Precondition("Вы мертвы.")
	}
	return nil
}

// ownSite возвращает площадку команды игрока в его клетке.
func ownSite(w *domain.World, p *domain.Player) (*domain.ConstructionSite, error) {
	site := w.SiteAt(p.Pos, p.Team)
	if site == nil || w.IsDestroyed(site.ID) {
		return nil, domain.Precondition("Здесь нет площадки вашей команды.")
	}
	return site, nil
}

// BuildSite закладывает площадку команды игрока в его клетке.
func BuildSite(env *Env, p *domain.Player) (string, error) {
	w := env.World
	if err := requireAlive(p); err != nil {
		return "", err
	}
	if p.Team == "" || p.Team == domain.DefaultTeamID {
		return "", domain.Precondition("Команда %s не может строить. Создайте свою команду.", domain.DefaultTeamName)
	}
	for _, s := range w.SitesAt(p.Pos) {
		if !w.IsDestroyed(s.ID) {
			return "", domain.Precondition("В этой клетке уже есть площадка.")
		}
	}

	site := domain.NewConstructionSite(p.Team, p.Pos, w.Rules)
	if w.GetEntity(site.ID) != nil {
		return "", domain.Precondition("Площадка еще не убрана, попробуйте позже.")
	}
	w.AddObject(site)

	logger.Log.WithFields(logrus.Fields{
		"component": "construction_system",
		"site_id":   site.ID,
		"team":      p.Team,
	}).Info("Construction site created.")
	env.Broadcast(LogInfo, "%s закладывает площадку в %s.", p.Name, p.Pos)
	return "", nil
}

// BuildBuilding возводит здание по шаблону на площадке своей команды за кирпичи.
func BuildBuilding(env *Env, p *domain.Player, name string) (string, error) {
	w := env.World
	if err := requireAlive(p); err != nil {
		return "", err
	}
	site, err := ownSite(w, p)
	if err != nil {
		return "", err
	}
	tmpl, ok := env.Content.Building(name)
	if !ok {
		return "", domain.NotFound("Здания %q не существует.", name)
	}
	brick := w.Rules.BrickItemName
	if p.Bricks(brick) < tmpl.Bricks {
		return "", domain.Precondition("Нужно %d кирпичей, чтобы построить %s.", tmpl.Bricks, name)
	}

	p.Inventory.Consume(brick, tmpl.Bricks)
	b := &domain.Building{
		Name:  tmpl.Name,
		Type:  tmpl.Type,
		Level: 1,
		Slots: tmpl.BaseSlots,
	}
	switch b.Type {
	case domain.BuildingCrafting:
		b.RecipeIDs = append([]int(nil), tmpl.RecipeIDs...)
	case domain.BuildingPersonalStorage:
		b.PersonalStorage = make(map[string]domain.Inventory)
	}
	b.SetNextTier(env.Content.NextTier(tmpl.Name, b.Level))
	site.Buildings = append(site.Buildings, b)

	env.Broadcast(LogInfo, "%s строит %s на площадке %s.", p.Name, name, site.ID)
	return "", nil
}

// DonateToSite вносит кирпичи в улучшение площадки, не больше оставшейся потребности.
// Когда порог достигнут, к таймеру завершения добавляется required*timePerBrick.
func DonateToSite(env *Env, p *domain.Player) (string, error) {
	w := env.World
	if err := requireAlive(p); err != nil {
		return "", err
	}
	site, err := ownSite(w, p)
	if err != nil {
		return "", err
	}
	brick := w.Rules.BrickItemName
	have := p.Bricks(brick)
	if have <= 0 {
		return "", domain.Precondition("У вас нет кирпичей.")
	}
	needed := site.RequiredBricks - site.Bricks
	if needed <= 0 {
		return "", domain.Precondition("Площадке не нужны кирпичи для текущего улучшения.")
	}

	toDonate := min(have, needed)
	p.Inventory.Consume(brick, toDonate)
	site.Bricks += toDonate
	env.Broadcast(LogInfo, "%s вносит %d кирпичей в %s.", p.Name, toDonate, site.ID)

	if site.Bricks >= site.RequiredBricks {
		start := env.Now
		if site.CompleteAt.After(start) {
			start = site.CompleteAt
		}
		site.CompleteAt = start.Add(w.Rules.SiteTimePerBrick * time.Duration(site.RequiredBricks))
		env.Broadcast(LogInfo, "Улучшение %s началось, осталось %s.", site.ID, site.CompleteAt.Sub(env.Now).Round(time.Second))
	}
	return fmt.Sprintf("Вы внесли %d кирпичей.", toDonate), nil
}

// DonateToBuilding вносит предмет в активное требование здания.
// При выполнении всех требований здание повышает уровень, растут слоты, требование сменяется следующим.
func DonateToBuilding(env *Env, p *domain.Player, buildingIndex, itemIndex, quantity int) (string, error) {
	w := env.World
	if err := requireAlive(p); err != nil {
		return "", err
	}
	site, err := ownSite(w, p)
	if err != nil {
		return "", err
	}
	b := site.BuildingAt(buildingIndex)
	if b == nil {
		return "", domain.NotFound("Здание не найдено.")
	}
	item := p.Inventory.At(itemIndex)
	if item == nil || quantity <= 0 || item.Quantity < quantity {
		return "", domain.Validation("Неверный предмет или количество.")
	}
	required, ok := b.Required(item.Name)
	if !ok {
		return "", domain.Precondition("%s не нужен для текущего улучшения.", item.Name)
	}
	needed := required - b.Donations[item.Name]
	amount := min(quantity, needed)
	if amount <= 0 {
		return "", domain.Precondition("Больше %s не требуется.", item.Name)
	}

	name := item.Name
	p.Inventory.Take(itemIndex, amount)
	b.Donations[name] += amount
	env.Broadcast(LogInfo, "%s вносит %d %s в %s.", p.Name, amount, name, b.Name)

	if b.RequirementsMet() {
		b.Level++
		b.Slots += slotGrowth(b.Type, b.Level)
		b.SetNextTier(env.Content.NextTier(b.Name, b.Level))
		if team := w.Team(site.Team); team != nil {
			for _, id := range team.Members {
				env.Tell(id, LogInfo, "%s вашей команды улучшено до уровня %d, слотов: %d.", b.Name, b.Level, b.Slots)
			}
		}
		logger.Log.WithFields(logrus.Fields{
			"component": "construction_system",
			"site_id":   site.ID,
			"building":  b.Name,
			"level":     b.Level,
		}).Info("Building upgraded.")
	}
	return "", nil
}

// DeploySiege ставит осадную машину против вражеской площадки в клетке игрока.
// Нельзя, пока в клетке есть живые защитники в сети.
func DeploySiege(env *Env, p *domain.Player) (string, error) {
	w := env.World
	if err := requireAlive(p); err != nil {
		return "", err
	}
	if p.Team == "" || p.Team == domain.DefaultTeamID {
		return "", domain.Precondition("Нужно состоять в команде, чтобы применять осадные машины.")
	}
	var target *domain.ConstructionSite
	for _, s := range w.SitesAt(p.Pos) {
		if s.Team != p.Team && !w.IsDestroyed(s.ID) {
			target = s
			break
		}
	}
	if target == nil {
		return "", domain.Precondition("Здесь нет вражеской площадки.")
	}
	for _, other := range w.CellAt(p.Pos).Players {
		if other.Team == target.Team && other.IsOnline && !other.IsDead {
			return "", domain.Precondition("Нельзя ставить осадную машину, пока здесь есть защитники.")
		}
	}
	brick := w.Rules.BrickItemName
	if p.Bricks(brick) < w.Rules.SiegeCost {
		return "", domain.Precondition("Нужно %d кирпичей для осадной машины.", w.Rules.SiegeCost)
	}

	p.Inventory.Consume(brick, w.Rules.SiegeCost)
	id := fmt.Sprintf("siege_%s_%d_%s", p.Team, env.Now.UnixMilli(), utils.GenerateShortID())
	siege := domain.NewSiegeMachine(id, p.Team, target.ID, p.Pos, w.Rules, env.Now)
	w.AddObject(siege)

	env.Broadcast(LogInfo, "%s ставит осадную машину против %s!", p.Name, target.ID)
	return "", nil
}

// CompleteConstruction завершает улучшение площадки, если таймер истек.
func CompleteConstruction(env *Env, s *domain.ConstructionSite) bool {
	if !s.IsUpgrading() || env.Now.Before(s.CompleteAt) {
		return false
	}
	rules := env.Rules()
	s.CompleteAt = time.Time{}
	s.Level++
	s.Bricks = 0
	s.RequiredBricks = rules.RequiredBricks(s.Level)
	s.Stats.MaxHP = rules.SiteMaxHP(s.Level)
	s.Stats.HP = s.Stats.MaxHP
	env.Broadcast(LogInfo, "Площадка %s улучшена до уровня %d!", s.ID, s.Level)
	return true
}
