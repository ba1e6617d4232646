package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

// teamReply - как Reply, но успешное изменение команд рассылает статические данные.
func teamReply(msg string, err error) (handlers.Result, error) {
	res, err := handlers.Reply(msg, err, systems.LogInfo)
	if err == nil && res.Failure == nil {
		res.Event = domain.EventTeamsChanged
	}
	return res, err
}

func HandleCreateTeam(ctx handlers.Context, p api.TeamNamePayload) (handlers.Result, error) {
	return teamReply(systems.CreateTeam(ctx.Env, ctx.Actor, p.Name))
}

func HandleJoinTeam(ctx handlers.Context, p api.TeamPayload) (handlers.Result, error) {
	return teamReply(systems.JoinTeam(ctx.Env, ctx.Actor, p.TeamID))
}

func HandleLeaveTeam(ctx handlers.Context) (handlers.Result, error) {
	return teamReply(systems.LeaveTeam(ctx.Env, ctx.Actor))
}

func HandleTeamSettings(ctx handlers.Context, p api.TeamSettingsPayload) (handlers.Result, error) {
	settings := systems.TeamSettings{Description: p.Description, JoinPolicy: p.JoinPolicy, Color: p.Color}
	return teamReply(systems.UpdateTeamSettings(ctx.Env, ctx.Actor, p.TeamID, settings))
}

func HandleRequestJoin(ctx handlers.Context, p api.TeamPayload) (handlers.Result, error) {
	return teamReply(systems.RequestJoin(ctx.Env, ctx.Actor, p.TeamID))
}

func HandleResolveJoin(ctx handlers.Context, p api.ResolveJoinPayload) (handlers.Result, error) {
	return teamReply(systems.ResolveJoin(ctx.Env, ctx.Actor, p.TeamID, p.PlayerID, p.Accept))
}
