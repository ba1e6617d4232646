package dungeon

import (
	"fmt"
	"strings"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/content"
	"github.com/uhaszYsz/mmomicro/pkg/utils"
)

// CreatePlayer создает нового персонажа со стартовым снаряжением из контента.
// Игрок появляется в (0,0) в команде по умолчанию.
func CreatePlayer(id, name, passwordHash string, snap *content.Snapshot) *domain.Player {
	p := domain.NewPlayer(id, name, snap.Player.BaseStats)
	p.PasswordHash = passwordHash
	p.Inventory = snap.StartingInventory()
	p.Skills = snap.StartingSkills()
	return p
}

// SpawnMob создает моба из шаблона на позиции pos с уровнем level.
func SpawnMob(tmpl *content.EnemyTemplate, pos domain.Position, level int, biome string, rules domain.Rules) *domain.Mob {
	id := fmt.Sprintf("%s_%d_%d_%s", strings.ReplaceAll(tmpl.Name, " ", ""), pos.X, pos.Y, utils.GenerateShortID())
	m := &domain.Mob{
		Base:       domain.Base{ID: id, Name: tmpl.Name, Pos: pos},
		Template:   tmpl.Name,
		Biome:      biome,
		IsBoss:     tmpl.IsBoss,
		Level:      level,
		BaseStats:  tmpl.BaseStats,
		Weakness:   tmpl.Weakness,
		WeaknessXP: tmpl.WeaknessXP,
		Drops:      append([]domain.Drop(nil), tmpl.Drops...),
		Attackers:  domain.NewAttackers(rules.MaxAttackers),
	}
	m.Rescale(rules.MobScalingPerLevel, rules.MobDefaultAccuracy)
	return m
}

// SpawnBoss создает босса: здоровье и урон умножаются на множители из правил.
func SpawnBoss(tmpl *content.EnemyTemplate, pos domain.Position, level int, biome string, rules domain.Rules) *domain.Mob {
	m := SpawnMob(tmpl, pos, level, biome, rules)
	m.IsBoss = true
	m.BaseStats.HP *= rules.BossHPMultiplier
	m.BaseStats.Dmg *= rules.BossDmgMultiplier
	m.Rescale(rules.MobScalingPerLevel, rules.MobDefaultAccuracy)
	return m
}
