package api

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload Validator
		wantErr bool
	}{
		{"login ok", LoginPayload{Name: "hero", Password: "secret"}, false},
		{"login blank name", LoginPayload{Name: "  ", Password: "secret"}, true},
		{"login no password", LoginPayload{Name: "hero"}, true},
		{"move negative", PositionPayload{X: -1, Y: 0}, true},
		{"move ok", PositionPayload{X: 3, Y: 4}, false},
		{"attack no target", EntityPayload{}, true},
		{"donate zero", DonateBuildingPayload{Quantity: 0}, true},
		{"donate ok", DonateBuildingPayload{BuildingIndex: 1, ItemIndex: 2, Quantity: 5}, false},
		{"storage default quantity", StoragePayload{Kind: "storage"}, false},
		{"storage negative", StoragePayload{Quantity: -1}, true},
		{"enchant same slot", EnchantPayload{ItemIndex: 2, RuneIndex: 2}, true},
		{"enchant ok", EnchantPayload{ItemIndex: 0, RuneIndex: 1}, false},
		{"chat blank", ChatPayload{Text: " \t"}, true},
		{"unequip no slot", SlotPayload{}, true},
		{"resolve no player", ResolveJoinPayload{TeamID: "team_1"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
