package admin

import (
	"errors"
	"fmt"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/pkg/content"
)

// Правки контента не меняют мир сами: они возвращают новый снапшот в Result.Content,
// подмену и сброс мобов выполняет инстанс.

// EnemyStatsPayload: { "name": "Goblin", "stats": { "hp": 40, "dmg": 6, "speed": 1 } }
type EnemyStatsPayload struct {
	Name  string              `json:"name"`
	Stats domain.MobBaseStats `json:"stats"`
}

func (p EnemyStatsPayload) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Stats.HP <= 0 || p.Stats.Dmg < 0 || p.Stats.Speed < 0 {
		return errors.New("hp must be positive, dmg and speed non-negative")
	}
	return nil
}

func HandleUpdateEnemyStats(ctx handlers.Context, p EnemyStatsPayload) (handlers.Result, error) {
	next, err := ctx.Env.Content.UpdateEnemyStats(p.Name, p.Stats)
	return swap(next, err, fmt.Sprintf("Характеристики %s обновлены", p.Name))
}

// EnemyDropPayload: { "name": "Goblin", "drop": { ... } }
type EnemyDropPayload struct {
	Name string      `json:"name"`
	Drop domain.Drop `json:"drop"`
}

func (p EnemyDropPayload) Validate() error {
	if p.Name == "" || p.Drop.Name == "" {
		return errors.New("name and drop.name are required")
	}
	return nil
}

func HandleAddEnemyDrop(ctx handlers.Context, p EnemyDropPayload) (handlers.Result, error) {
	next, err := ctx.Env.Content.AddEnemyDrop(p.Name, p.Drop)
	return swap(next, err, fmt.Sprintf("Добыча %s добавлена к %s", p.Drop.Name, p.Name))
}

// RemoveDropPayload: { "name": "Goblin", "dropName": "Oak Wood" }
type RemoveDropPayload struct {
	Name     string `json:"name"`
	DropName string `json:"dropName"`
}

func (p RemoveDropPayload) Validate() error {
	if p.Name == "" || p.DropName == "" {
		return errors.New("name and dropName are required")
	}
	return nil
}

func HandleRemoveEnemyDrop(ctx handlers.Context, p RemoveDropPayload) (handlers.Result, error) {
	next, err := ctx.Env.Content.RemoveEnemyDrop(p.Name, p.DropName)
	return swap(next, err, fmt.Sprintf("Добыча %s убрана у %s", p.DropName, p.Name))
}

// RecipePayload: { "create": true, "recipe": { ... } }. При create ID назначается автоматически.
type RecipePayload struct {
	Create bool           `json:"create"`
	Recipe content.Recipe `json:"recipe"`
}

func HandleSaveRecipe(ctx handlers.Context, p RecipePayload) (handlers.Result, error) {
	r := p.Recipe
	if p.Create {
		r.ID = -1
	}
	next, id, err := ctx.Env.Content.SaveRecipe(r)
	res, err := swap(next, err, fmt.Sprintf("Рецепт %d сохранен", id))
	if res.Failure == nil && err == nil {
		res.Data = map[string]any{"id": id, "version": next.Version}
	}
	return res, err
}

// RecipeIDPayload: { "id": 3 }
type RecipeIDPayload struct {
	ID int `json:"id"`
}

func HandleDeleteRecipe(ctx handlers.Context, p RecipeIDPayload) (handlers.Result, error) {
	next, err := ctx.Env.Content.DeleteRecipe(p.ID)
	return swap(next, err, fmt.Sprintf("Рецепт %d удален", p.ID))
}

func HandleSaveBuilding(ctx handlers.Context, p content.BuildingTemplate) (handlers.Result, error) {
	next, err := ctx.Env.Content.SaveBuilding(p)
	return swap(next, err, fmt.Sprintf("Шаблон %s сохранен", p.Name))
}

// LoadContentPayload: { "yaml": "..." } - полная замена таблиц.
type LoadContentPayload struct {
	YAML string `json:"yaml"`
}

func (p LoadContentPayload) Validate() error {
	if p.YAML == "" {
		return errors.New("yaml is required")
	}
	return nil
}

func HandleLoadContent(ctx handlers.Context, p LoadContentPayload) (handlers.Result, error) {
	next, err := content.Parse([]byte(p.YAML))
	return swap(next, err, "Контент загружен")
}

// HandleExportContent возвращает текущие таблицы в YAML.
func HandleExportContent(ctx handlers.Context) (handlers.Result, error) {
	raw, err := ctx.Env.Content.Marshal()
	if err != nil {
		return handlers.Result{}, fmt.Errorf("export content: %w", err)
	}
	return handlers.Result{Data: map[string]string{"version": ctx.Env.Content.Version, "yaml": string(raw)}}, nil
}

// swap оформляет результат правки. Ошибки проверки таблиц (content.New) - отказ админу.
func swap(next *content.Snapshot, err error, msg string) (handlers.Result, error) {
	var gameErr *domain.GameError
	if err != nil && !errors.As(err, &gameErr) {
		err = domain.Validation("Некорректный контент: %v", err)
	}
	res, err := handlers.Reply(msg, err, "")
	if err != nil || res.Failure != nil {
		return res, err
	}
	res.Content = next
	res.Event = domain.EventContentChanged
	res.Data = map[string]string{"version": next.Version}
	return res, nil
}
