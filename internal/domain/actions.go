package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionAttack
	ActionStopCombat
	ActionCraft
	ActionDonateSite
	ActionDonateBuilding
	ActionBuildSite
	ActionBuildBuilding
	ActionDeploySiege
	ActionEquip
	ActionUnequip
	ActionUse
	ActionDeposit
	ActionWithdraw
	ActionEnchant
	ActionChat
	ActionRespawn
	ActionCreateTeam
	ActionJoinTeam
	ActionLeaveTeam
	ActionTeamSettings
	ActionRequestJoin
	ActionResolveJoin
	ActionExamine
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":            ActionInit,
	"MOVE":            ActionMove,
	"ATTACK":          ActionAttack,
	"STOP_COMBAT":     ActionStopCombat,
	"CRAFT":           ActionCraft,
	"DONATE_SITE":     ActionDonateSite,
	"DONATE_BUILDING": ActionDonateBuilding,
	"BUILD_SITE":      ActionBuildSite,
	"BUILD_BUILDING":  ActionBuildBuilding,
	"DEPLOY_SIEGE":    ActionDeploySiege,
	"EQUIP":           ActionEquip,
	"UNEQUIP":         ActionUnequip,
	"USE":             ActionUse,
	"DEPOSIT":         ActionDeposit,
	"WITHDRAW":        ActionWithdraw,
	"ENCHANT":         ActionEnchant,
	"CHAT":            ActionChat,
	"RESPAWN":         ActionRespawn,
	"CREATE_TEAM":     ActionCreateTeam,
	"JOIN_TEAM":       ActionJoinTeam,
	"LEAVE_TEAM":      ActionLeaveTeam,
	"TEAM_SETTINGS":   ActionTeamSettings,
	"REQUEST_JOIN":    ActionRequestJoin,
	"RESOLVE_JOIN":    ActionResolveJoin,
	"EXAMINE":         ActionExamine,
}

// Маппинг для логов Domain -> String
var actionCmdToString = func() map[ActionType]string {
	m := make(map[ActionType]string, len(actionStringToCmd))
	for s, a := range actionStringToCmd {
		m[a] = s
	}
	return m
}()

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
