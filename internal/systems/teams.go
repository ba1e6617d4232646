package systems

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/utils"
)

// EnrollDefault ставит игрока в команду по умолчанию, если он ни в какой команде не числится.
func EnrollDefault(w *domain.World, p *domain.Player) {
	if t := w.Team(p.Team); t != nil {
		t.AddMember(p.ID)
		return
	}
	p.Team = domain.DefaultTeamID
	w.Team(domain.DefaultTeamID).AddMember(p.ID)
}

func validTeamName(rules domain.Rules, name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= rules.TeamNameMin && n <= rules.TeamNameMax
}

// CreateTeam основывает команду. Создатель становится ее администратором и участником.
func CreateTeam(env *Env, p *domain.Player, name string) (string, error) {
	w := env.World
	name = strings.TrimSpace(name)
	if !validTeamName(w.Rules, name) {
		return "", domain.Validation("Название команды должно быть от %d до %d символов.", w.Rules.TeamNameMin, w.Rules.TeamNameMax)
	}
	if w.TeamByName(name) != nil {
		return "", domain.Precondition("Команда %q уже существует.", name)
	}

	team := &domain.Team{
		ID:         "team_" + utils.GenerateShortID(),
		Name:       name,
		Color:      domain.DefaultTeamColor,
		AdminID:    p.ID,
		JoinPolicy: domain.JoinPolicyOpen,
	}
	w.AddTeam(team)
	env.Broadcast(LogInfo, "%s основывает команду %q!", p.Name, name)
	moveToTeam(env, p, team)
	return "", nil
}

// JoinTeam вступление в открытую команду.
func JoinTeam(env *Env, p *domain.Player, teamID string) (string, error) {
	team := env.World.Team(teamID)
	if team == nil {
		return "", domain.NotFound("Команда не найдена.")
	}
	if team.IsDefault {
		return "", domain.Precondition("В команду %s нельзя вступить напрямую.", team.Name)
	}
	if team.HasMember(p.ID) {
		return "", domain.Precondition("Вы уже состоите в %s.", team.Name)
	}
	if team.JoinPolicy != domain.JoinPolicyOpen {
		return "", domain.Precondition("В эту команду вступают по заявке.")
	}
	moveToTeam(env, p, team)
	return "", nil
}

// LeaveTeam возвращает игрока в команду по умолчанию.
func LeaveTeam(env *Env, p *domain.Player) (string, error) {
	w := env.World
	if p.Team == domain.DefaultTeamID {
		return "", domain.Precondition("Из этой команды нельзя выйти.")
	}
	moveToTeam(env, p, w.Team(domain.DefaultTeamID))
	return "", nil
}

// moveToTeam переводит игрока: выход из прежней команды (пустая распускается,
// уход администратора оставляет ее без лидера), вступление в новую.
func moveToTeam(env *Env, p *domain.Player, to *domain.Team) {
	w := env.World
	if old := w.Team(p.Team); old != nil {
		old.RemoveMember(p.ID)
		switch {
		case len(old.Members) == 0 && !old.IsDefault:
			w.RemoveTeam(old.ID)
			env.Broadcast(LogInfo, "Команда %q распущена.", old.Name)
		case old.AdminID == p.ID:
			old.AdminID = ""
			env.Broadcast(LogInfo, "%s покидает команду %q, она осталась без лидера.", p.Name, old.Name)
		}
	}
	StopCombat(w, p)
	to.RemoveRequest(p.ID)
	to.AddMember(p.ID)
	p.Team = to.ID
	env.Broadcast(LogInfo, "%s вступает в команду %q.", p.Name, to.Name)
}

// TeamSettings - изменяемые администратором поля команды.
type TeamSettings struct {
	Description string
	JoinPolicy  string
	Color       string
}

// UpdateTeamSettings доступно только администратору команды.
func UpdateTeamSettings(env *Env, p *domain.Player, teamID string, s TeamSettings) (string, error) {
	team := env.World.Team(teamID)
	if team == nil {
		return "", domain.NotFound("Команда не найдена.")
	}
	if team.AdminID != p.ID {
		return "", domain.Precondition("Вы не администратор этой команды.")
	}
	if s.Color != "" && !validColor(s.Color) {
		return "", domain.Validation("Цвет должен быть в формате #RRGGBB.")
	}

	desc := s.Description
	if limit := env.Rules().TeamDescMax; utf8.RuneCountInString(desc) > limit {
		desc = string([]rune(desc)[:limit])
	}
	team.Description = desc
	team.JoinPolicy = domain.JoinPolicyOpen
	if s.JoinPolicy == domain.JoinPolicyRequest {
		team.JoinPolicy = domain.JoinPolicyRequest
	}
	if s.Color != "" {
		team.Color = s.Color
	}
	return fmt.Sprintf("Настройки команды %q обновлены.", team.Name), nil
}

func validColor(c string) bool {
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	for _, r := range c[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// RequestJoin оставляет заявку на вступление.
func RequestJoin(env *Env, p *domain.Player, teamID string) (string, error) {
	team := env.World.Team(teamID)
	if team == nil {
		return "", domain.NotFound("Команда не найдена.")
	}
	if team.IsDefault {
		return "", domain.Precondition("В команду %s нельзя вступить напрямую.", team.Name)
	}
	if team.HasRequest(p.ID) || team.HasMember(p.ID) {
		return "", domain.Precondition("Вы уже подали заявку или состоите в команде.")
	}
	team.Requests = append(team.Requests, p.ID)
	if team.AdminID != "" {
		env.Tell(team.AdminID, LogInfo, "%s просит о вступлении в %q.", p.Name, team.Name)
	}
	return fmt.Sprintf("Заявка в %q отправлена.", team.Name), nil
}

// ResolveJoin - решение администратора по заявке.
func ResolveJoin(env *Env, admin *domain.Player, teamID, requesterID string, accept bool) (string, error) {
	w := env.World
	team := w.Team(teamID)
	if team == nil {
		return "", domain.NotFound("Команда не найдена.")
	}
	if team.AdminID != admin.ID {
		return "", domain.Precondition("Вы не администратор этой команды.")
	}
	if !team.HasRequest(requesterID) {
		return "", domain.NotFound("Заявка не найдена.")
	}
	requester := w.Player(requesterID)
	if requester == nil {
		return "", domain.NotFound("Игрок не найден.")
	}
	team.RemoveRequest(requesterID)

	if !accept {
		env.Tell(requester.ID, LogInfo, "Заявка в %q отклонена.", team.Name)
		return "", nil
	}
	env.Tell(requester.ID, LogInfo, "Заявка в %q принята.", team.Name)
	moveToTeam(env, requester, team)
	return "", nil
}
