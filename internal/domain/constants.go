package domain

import "time"

// Типы сущностей
const (
	EntityTypePlayer = "PLAYER"
	EntityTypeMob    = "MOB"
	EntityTypeSite   = "CONSTRUCTION_SITE"
	EntityTypeSiege  = "SIEGE_MACHINE"
)

// Команда по умолчанию, в которую попадают новые игроки.
const (
	DefaultTeamID    = "team_noobs"
	DefaultTeamName  = "Noobs"
	DefaultTeamColor = "#808080"
)

// Политики вступления в команду
const (
	JoinPolicyOpen    = "OPEN"
	JoinPolicyRequest = "REQUEST"
	JoinPolicyClosed  = "CLOSED"
)

// Каналы чата
const (
	ChatGlobal = "global"
	ChatTeam   = "team"
)

// Rules - игровые константы. Значения по умолчанию совпадают с балансом живого сервера.
type Rules struct {
	MapSize int `mapstructure:"map_size"`

	MaxAttackers         int           `mapstructure:"max_attackers"`
	StaminaCostPerAttack float64       `mapstructure:"stamina_cost_per_attack"`
	CriticalMultiplier   float64       `mapstructure:"critical_multiplier"`
	DefenseCap           float64       `mapstructure:"defense_cap"`
	SkillBonusPerLevel   float64       `mapstructure:"skill_bonus_per_level"`
	MobRespawnDelay      time.Duration `mapstructure:"mob_respawn_delay"`
	MobScalingPerLevel   float64       `mapstructure:"mob_scaling_per_level"`
	MobDefaultAccuracy   float64       `mapstructure:"mob_default_accuracy"`
	BossHPMultiplier     float64       `mapstructure:"boss_hp_multiplier"`
	BossDmgMultiplier    float64       `mapstructure:"boss_dmg_multiplier"`

	SiteBaseHP       float64       `mapstructure:"site_base_hp"`
	SiteBaseBricks   int           `mapstructure:"site_base_bricks"`
	SiteTimePerBrick time.Duration `mapstructure:"site_time_per_brick"`
	BrickItemName    string        `mapstructure:"brick_item_name"`

	SiegeCost       int           `mapstructure:"siege_cost"`
	SiegeHP         float64       `mapstructure:"siege_hp"`
	SiegeDamage     float64       `mapstructure:"siege_damage"`
	SiegeSelfDamage float64       `mapstructure:"siege_self_damage"`
	SiegeInterval   time.Duration `mapstructure:"siege_interval"`

	ChatBacklog   int `mapstructure:"chat_backlog"`
	ChatMaxLength int `mapstructure:"chat_max_length"`
	TeamNameMin   int `mapstructure:"team_name_min"`
	TeamNameMax   int `mapstructure:"team_name_max"`
	TeamDescMax   int `mapstructure:"team_desc_max"`
	PlayerNameMin int `mapstructure:"player_name_min"`
	PlayerNameMax int `mapstructure:"player_name_max"`
}

func DefaultRules() Rules {
	return Rules{
		MapSize: 20,

		MaxAttackers:         5,
		StaminaCostPerAttack: 1,
		CriticalMultiplier:   2,
		DefenseCap:           60,
		SkillBonusPerLevel:   0.01,
		MobRespawnDelay:      5 * time.Second,
		MobScalingPerLevel:   0.10,
		MobDefaultAccuracy:   100,
		BossHPMultiplier:     3,
		BossDmgMultiplier:    2,

		SiteBaseHP:       500,
		SiteBaseBricks:   10,
		SiteTimePerBrick: 10 * time.Second,
		BrickItemName:    "🧱 Brick",

		SiegeCost:       10,
		SiegeHP:         300,
		SiegeDamage:     10,
		SiegeSelfDamage: 10,
		SiegeInterval:   time.Second,

		ChatBacklog:   500,
		ChatMaxLength: 200,
		TeamNameMin:   3,
		TeamNameMax:   15,
		TeamDescMax:   100,
		PlayerNameMin: 3,
		PlayerNameMax: 15,
	}
}

// RequiredBricks - кирпичи для улучшения площадки с уровня level.
func (r Rules) RequiredBricks(level int) int {
	return r.SiteBaseBricks * level
}

// SiteMaxHP - прочность площадки на уровне level.
func (r Rules) SiteMaxHP(level int) float64 {
	return r.SiteBaseHP * float64(level)
}

// AttackCooldown - интервал между атаками при скорости speed. Нулевая скорость считается за 1.
func AttackCooldown(speed float64) time.Duration {
	if speed <= 0 {
		speed = 1
	}
	return time.Duration(float64(time.Second) / speed)
}
