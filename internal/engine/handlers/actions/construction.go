package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

func HandleBuildSite(ctx handlers.Context) (handlers.Result, error) {
	msg, err := systems.BuildSite(ctx.Env, ctx.Actor)
	return handlers.Reply(msg, err, systems.LogInfo)
}

// HandleDonateSite отдает кирпичи на улучшение площадки, не больше оставшейся потребности.
func HandleDonateSite(ctx handlers.Context) (handlers.Result, error) {
	msg, err := systems.DonateToSite(ctx.Env, ctx.Actor)
	return handlers.Reply(msg, err, systems.LogInfo)
}

func HandleBuildBuilding(ctx handlers.Context, p api.BuildingPayload) (handlers.Result, error) {
	msg, err := systems.BuildBuilding(ctx.Env, ctx.Actor, p.Name)
	return handlers.Reply(msg, err, systems.LogInfo)
}

func HandleDonateBuilding(ctx handlers.Context, p api.DonateBuildingPayload) (handlers.Result, error) {
	msg, err := systems.DonateToBuilding(ctx.Env, ctx.Actor, p.BuildingIndex, p.ItemIndex, p.Quantity)
	return handlers.Reply(msg, err, systems.LogInfo)
}

// HandleDeploySiege ставит осадную машину против чужой площадки в клетке.
func HandleDeploySiege(ctx handlers.Context) (handlers.Result, error) {
	msg, err := systems.DeploySiege(ctx.Env, ctx.Actor)
	return handlers.Reply(msg, err, systems.LogCombat)
}
