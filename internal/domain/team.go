package domain

import "time"

// Team - команда игроков.
type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Members     []string `json:"members"`
	Color       string   `json:"color"`
	AdminID     string   `json:"admin,omitempty"`
	Description string   `json:"description"`
	JoinPolicy  string   `json:"joinPolicy"`
	Requests    []string `json:"requests,omitempty"`
	IsDefault   bool     `json:"isDefault,omitempty"`
}

func NewDefaultTeam() *Team {
	return &Team{
		ID:         DefaultTeamID,
		Name:       DefaultTeamName,
		Color:      DefaultTeamColor,
		JoinPolicy: JoinPolicyClosed,
		IsDefault:  true,
	}
}

func (t *Team) HasMember(id string) bool {
	return indexOf(t.Members, id) >= 0
}

func (t *Team) AddMember(id string) {
	if !t.HasMember(id) {
		t.Members = append(t.Members, id)
	}
}

func (t *Team) RemoveMember(id string) {
	t.Members = removeString(t.Members, id)
}

func (t *Team) HasRequest(id string) bool {
	return indexOf(t.Requests, id) >= 0
}

func (t *Team) RemoveRequest(id string) {
	t.Requests = removeString(t.Requests, id)
}

// ChatMessage - сообщение чата.
type ChatMessage struct {
	ID        string    `json:"id"`
	Channel   string    `json:"channel"`
	SenderID  string    `json:"senderId"`
	Sender    string    `json:"sender"`
	Team      string    `json:"team"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Location  Position  `json:"location"`
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

func removeString(list []string, v string) []string {
	if i := indexOf(list, v); i >= 0 {
		return append(list[:i], list[i+1:]...)
	}
	return list
}
