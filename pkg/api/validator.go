package api

import (
	"errors"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p LoginPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if p.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

func (p PositionPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("coordinates must be non-negative")
	}
	return nil
}

func (p EntityPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	return nil
}

func (p CraftPayload) Validate() error {
	if p.BuildingIndex < 0 || p.RecipeID < 0 {
		return errors.New("buildingIndex and recipeId must be non-negative")
	}
	return nil
}

func (p BuildingPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("buildingName is required")
	}
	return nil
}

func (p DonateBuildingPayload) Validate() error {
	if p.BuildingIndex < 0 || p.ItemIndex < 0 {
		return errors.New("indexes must be non-negative")
	}
	if p.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return nil
}

func (p ItemPayload) Validate() error {
	if p.ItemIndex < 0 {
		return errors.New("itemIndex must be non-negative")
	}
	return nil
}

func (p SlotPayload) Validate() error {
	if p.Slot == "" {
		return errors.New("slot is required")
	}
	return nil
}

func (p StoragePayload) Validate() error {
	if p.BuildingIndex < 0 || p.ItemIndex < 0 {
		return errors.New("indexes must be non-negative")
	}
	if p.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	return nil
}

func (p EnchantPayload) Validate() error {
	if p.ItemIndex < 0 || p.RuneIndex < 0 {
		return errors.New("indexes must be non-negative")
	}
	if p.ItemIndex == p.RuneIndex {
		return errors.New("item and rune must differ")
	}
	return nil
}

func (p ChatPayload) Validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return errors.New("text is required")
	}
	return nil
}

func (p TeamNamePayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("teamName is required")
	}
	return nil
}

func (p TeamPayload) Validate() error {
	if p.TeamID == "" {
		return errors.New("teamId is required")
	}
	return nil
}

func (p TeamSettingsPayload) Validate() error {
	if p.TeamID == "" {
		return errors.New("teamId is required")
	}
	return nil
}

func (p ResolveJoinPayload) Validate() error {
	if p.TeamID == "" || p.PlayerID == "" {
		return errors.New("teamId and playerId are required")
	}
	return nil
}
