package systems

import (
	"errors"
	"strings"
	"testing"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

func TestCreateTeam(t *testing.T) {
	env := newTestEnv(t)
	p := addPlayer(env, "founder", domain.Position{})
	other := addPlayer(env, "other", domain.Position{})

	tests := []struct {
		name    string
		team    string
		wantErr error
	}{
		{"too short", "ab", domain.ErrValidation},
		{"too long", strings.Repeat("x", 16), domain.ErrValidation},
		{"blank", "   ", domain.ErrValidation},
		{"ok", "  Iron Fist ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateTeam(env, p, tt.team)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	team := env.World.TeamByName("Iron Fist")
	if team == nil {
		t.Fatal("team not created")
	}
	if p.Team != team.ID || team.AdminID != p.ID || !team.HasMember(p.ID) {
		t.Errorf("founder not admin member: team=%q admin=%q", p.Team, team.AdminID)
	}
	if env.World.Team(domain.DefaultTeamID).HasMember(p.ID) {
		t.Error("founder still listed in the default team")
	}
	if _, err := CreateTeam(env, other, "iron fist"); !errors.Is(err, domain.ErrPrecondition) {
		t.Errorf("duplicate name: err = %v, want precondition", err)
	}
}

func TestJoinLeaveTeam(t *testing.T) {
	env := newTestEnv(t)
	pos := domain.Position{X: 1, Y: 1}
	admin := addPlayer(env, "admin", pos)
	member := addPlayer(env, "member", pos)
	if _, err := CreateTeam(env, admin, "Wolves"); err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	team := env.World.TeamByName("Wolves")

	mob := addMob(env, "m", pos, 50)
	if _, err := StartCombat(env, member, mob.ID); err != nil {
		t.Fatalf("StartCombat: %v", err)
	}
	if _, err := JoinTeam(env, member, team.ID); err != nil {
		t.Fatalf("JoinTeam: %v", err)
	}
	if member.InCombat() || mob.Attackers.Has(member.ID) {
		t.Error("team change did not stop combat")
	}
	if _, err := JoinTeam(env, member, team.ID); !errors.Is(err, domain.ErrPrecondition) {
		t.Errorf("second join: err = %v, want precondition", err)
	}
	if _, err := JoinTeam(env, member, domain.DefaultTeamID); !errors.Is(err, domain.ErrPrecondition) {
		t.Errorf("join default team: err = %v, want precondition", err)
	}

	// Уход администратора оставляет команду без лидера.
	if _, err := LeaveTeam(env, admin); err != nil {
		t.Fatalf("LeaveTeam admin: %v", err)
	}
	if team.AdminID != "" || env.World.Team(team.ID) == nil {
		t.Errorf("after admin leaves: admin=%q exists=%v", team.AdminID, env.World.Team(team.ID) != nil)
	}
	// Уход последнего участника распускает команду.
	if _, err := LeaveTeam(env, member); err != nil {
		t.Fatalf("LeaveTeam member: %v", err)
	}
	if env.World.Team(team.ID) != nil {
		t.Error("empty team not disbanded")
	}
	if member.Team != domain.DefaultTeamID {
		t.Errorf("member team = %q, want default", member.Team)
	}
	if _, err := LeaveTeam(env, member); !errors.Is(err, domain.ErrPrecondition) {
		t.Errorf("leave default team: err = %v, want precondition", err)
	}
}

func TestTeamRequests(t *testing.T) {
	env := newTestEnv(t)
	admin := addPlayer(env, "admin", domain.Position{})
	applicant := addPlayer(env, "applicant", domain.Position{})
	stranger := addPlayer(env, "stranger", domain.Position{})
	if _, err := CreateTeam(env, admin, "Guild"); err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	team := env.World.TeamByName("Guild")

	if _, err := UpdateTeamSettings(env, stranger, team.ID, TeamSettings{JoinPolicy: domain.JoinPolicyRequest}); !errors.Is(err, domain.ErrPrecondition) {
		t.Errorf("non-admin settings: err = %v, want precondition", err)
	}
	if _, err := UpdateTeamSettings(env, admin, team.ID, TeamSettings{Color: "red"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad color: err = %v, want validation", err)
	}
	settings := TeamSettings{Description: strings.Repeat("д", 150), JoinPolicy: domain.JoinPolicyRequest, Color: "#12abEF"}
	if _, err := UpdateTeamSettings(env, admin, team.ID, settings); err != nil {
		t.Fatalf("UpdateTeamSettings: %v", err)
	}
	if len([]rune(team.Description)) != 100 || team.Color != "#12abEF" || team.JoinPolicy != domain.JoinPolicyRequest {
		t.Errorf("settings not applied: %+v", team)
	}

	if _, err := JoinTeam(env, applicant, team.ID); !errors.Is(err, domain.ErrPrecondition) {
		t.Errorf("direct join of request team: err = %v, want precondition", err)
	}
	env.TakeNotices()
	if _, err := RequestJoin(env, applicant, team.ID); err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}
	notices := env.TakeNotices()
	if len(notices) != 1 || notices[0].PlayerID != admin.ID {
		t.Errorf("admin notices = %+v", notices)
	}
	if _, err := RequestJoin(env, applicant, team.ID); !errors.Is(err, domain.ErrPrecondition) {
		t.Errorf("duplicate request: err = %v, want precondition", err)
	}

	if _, err := ResolveJoin(env, stranger, team.ID, applicant.ID, true); !errors.Is(err, domain.ErrPrecondition) {
		t.Errorf("non-admin resolve: err = %v, want precondition", err)
	}
	if !team.HasRequest(applicant.ID) {
		t.Fatal("failed resolve removed the request")
	}
	if _, err := ResolveJoin(env, admin, team.ID, applicant.ID, true); err != nil {
		t.Fatalf("ResolveJoin: %v", err)
	}
	if applicant.Team != team.ID || team.HasRequest(applicant.ID) {
		t.Errorf("applicant team=%q pending=%v", applicant.Team, team.HasRequest(applicant.ID))
	}

	if _, err := RequestJoin(env, stranger, team.ID); err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}
	if _, err := ResolveJoin(env, admin, team.ID, stranger.ID, false); err != nil {
		t.Fatalf("ResolveJoin reject: %v", err)
	}
	if stranger.Team != domain.DefaultTeamID || team.HasRequest(stranger.ID) {
		t.Error("rejected applicant joined or request kept")
	}

	if _, err := UpdateTeamSettings(env, admin, team.ID, TeamSettings{JoinPolicy: "whatever"}); err != nil {
		t.Fatalf("UpdateTeamSettings: %v", err)
	}
	if team.JoinPolicy != domain.JoinPolicyOpen {
		t.Errorf("unknown policy = %q, want OPEN", team.JoinPolicy)
	}
}
