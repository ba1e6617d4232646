package content

import (
	"fmt"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

// Правки админки. Каждая возвращает новый снапшот, исходный не меняется.

// UpdateEnemyStats заменяет базовые характеристики шаблона.
func (s *Snapshot) UpdateEnemyStats(name string, stats domain.MobBaseStats) (*Snapshot, error) {
	return s.edit(func(t *Tables) error {
		e := findEnemy(t, name)
		if e == nil {
			return domain.NotFound("Шаблон моба %q не найден.", name)
		}
		e.BaseStats = stats
		return nil
	})
}

// AddEnemyDrop добавляет строку добычи (или заменяет строку с тем же именем).
func (s *Snapshot) AddEnemyDrop(name string, drop domain.Drop) (*Snapshot, error) {
	if drop.Name == "" || drop.Chance < 0 || drop.MinQuantity < 1 || drop.MaxQuantity < drop.MinQuantity {
		return nil, domain.Validation("Некорректная строка добычи.")
	}
	return s.edit(func(t *Tables) error {
		e := findEnemy(t, name)
		if e == nil {
			return domain.NotFound("Шаблон моба %q не найден.", name)
		}
		for i := range e.Drops {
			if e.Drops[i].Name == drop.Name {
				e.Drops[i] = drop
				return nil
			}
		}
		e.Drops = append(e.Drops, drop)
		return nil
	})
}

func (s *Snapshot) RemoveEnemyDrop(name, dropName string) (*Snapshot, error) {
	return s.edit(func(t *Tables) error {
		e := findEnemy(t, name)
		if e == nil {
			return domain.NotFound("Шаблон моба %q не найден.", name)
		}
		for i := range e.Drops {
			if e.Drops[i].Name == dropName {
				e.Drops = append(e.Drops[:i], e.Drops[i+1:]...)
				return nil
			}
		}
		return domain.NotFound("Добыча %q не найдена.", dropName)
	})
}

// SaveRecipe создает (ID < 0) или заменяет рецепт. Возвращает снапшот и итоговый ID.
func (s *Snapshot) SaveRecipe(r Recipe) (*Snapshot, int, error) {
	if r.Name == "" || r.Result.Name == "" || r.CraftingTimeMs <= 0 {
		return nil, 0, domain.Validation("Некорректный рецепт.")
	}
	next, err := s.edit(func(t *Tables) error {
		if r.ID < 0 {
			maxID := -1
			for _, existing := range t.Recipes {
				maxID = max(maxID, existing.ID)
			}
			r.ID = maxID + 1
			t.Recipes = append(t.Recipes, r)
			return nil
		}
		for i := range t.Recipes {
			if t.Recipes[i].ID == r.ID {
				t.Recipes[i] = r
				return nil
			}
		}
		t.Recipes = append(t.Recipes, r)
		return nil
	})
	return next, r.ID, err
}

// DeleteRecipe удаляет рецепт и убирает его из шаблонов зданий.
func (s *Snapshot) DeleteRecipe(id int) (*Snapshot, error) {
	return s.edit(func(t *Tables) error {
		idx := -1
		for i := range t.Recipes {
			if t.Recipes[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.NotFound("Рецепт %d не найден.", id)
		}
		t.Recipes = append(t.Recipes[:idx], t.Recipes[idx+1:]...)
		for i := range t.Buildings {
			ids := t.Buildings[i].RecipeIDs[:0]
			for _, rid := range t.Buildings[i].RecipeIDs {
				if rid != id {
					ids = append(ids, rid)
				}
			}
			t.Buildings[i].RecipeIDs = ids
		}
		return nil
	})
}

// SaveBuilding создает или заменяет шаблон здания.
func (s *Snapshot) SaveBuilding(b BuildingTemplate) (*Snapshot, error) {
	if b.Name == "" || b.Bricks < 0 {
		return nil, domain.Validation("Некорректный шаблон здания.")
	}
	return s.edit(func(t *Tables) error {
		for i := range t.Buildings {
			if t.Buildings[i].Name == b.Name {
				t.Buildings[i] = b
				return nil
			}
		}
		t.Buildings = append(t.Buildings, b)
		return nil
	})
}

// EnemiesDiffer сообщает, отличаются ли таблицы мобов (нужен ли сброс мира).
func EnemiesDiffer(a, b *Snapshot) bool {
	if len(a.Enemies) != len(b.Enemies) {
		return true
	}
	for i := range a.Enemies {
		ea, eb := &a.Enemies[i], &b.Enemies[i]
		if ea.Name != eb.Name || ea.Biome != eb.Biome || ea.IsBoss != eb.IsBoss || ea.BaseStats != eb.BaseStats {
			return true
		}
	}
	return false
}

func (s *Snapshot) edit(fn func(t *Tables) error) (*Snapshot, error) {
	t, err := s.CloneTables()
	if err != nil {
		return nil, fmt.Errorf("clone content: %w", err)
	}
	if err := fn(&t); err != nil {
		return nil, err
	}
	return New(t)
}

func findEnemy(t *Tables, name string) *EnemyTemplate {
	for i := range t.Enemies {
		if t.Enemies[i].Name == name {
			return &t.Enemies[i]
		}
	}
	return nil
}
