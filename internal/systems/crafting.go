package systems

import (
	"fmt"
	"strings"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/utils"
)

// EnqueueCraft ставит рецепт в очередь здания крафта. Материалы списываются сразу.
// Таймер получает только голова очереди: задача в пустой очереди стартует немедленно,
// остальные ждут завершения предыдущих.
func EnqueueCraft(env *Env, p *domain.Player, buildingIndex, recipeID int) (string, error) {
	w := env.World
	if err := requireAlive(p); err != nil {
		return "", err
	}
	site, err := ownSite(w, p)
	if err != nil {
		return "", err
	}
	b := site.BuildingAt(buildingIndex)
	if b == nil {
		return "", domain.NotFound("Здание не найдено.")
	}
	if b.Type != domain.BuildingCrafting {
		return "", domain.Precondition("В этом здании нельзя ничего изготовить.")
	}
	recipe, ok := env.Content.Recipe(recipeID)
	if !ok {
		return "", domain.NotFound("Рецепт не найден.")
	}
	if !b.HasRecipe(recipeID) {
		return "", domain.Precondition("%s не умеет изготавливать %s.", b.Name, recipe.Name)
	}

	var missing []string
	for _, m := range recipe.Materials {
		if p.Inventory.Count(m.Name) < m.Quantity {
			missing = append(missing, fmt.Sprintf("%dx %s", m.Quantity, m.Name))
		}
	}
	if len(missing) > 0 {
		return "", domain.Precondition("Не хватает материалов: %s", strings.Join(missing, ", "))
	}
	if len(b.Queue) >= b.Slots {
		return "", domain.Precondition("Очередь крафта заполнена.")
	}

	for _, m := range recipe.Materials {
		p.Inventory.Consume(m.Name, m.Quantity)
	}
	result := recipe.Result.Clone()
	result.Quantity = 1
	task := &domain.CraftTask{
		ID:         "craft_" + utils.GenerateShortID(),
		PlayerID:   p.ID,
		PlayerName: p.Name,
		RecipeID:   recipe.ID,
		RecipeName: recipe.Name,
		Duration:   recipe.CraftingTime(),
		EnqueuedAt: env.Now,
		Result:     result,
	}
	if len(b.Queue) == 0 {
		startTask(task, env)
	}
	b.Queue = append(b.Queue, task)

	return fmt.Sprintf("%s ставит в очередь %s.", p.Name, recipe.Name), nil
}

func startTask(t *domain.CraftTask, env *Env) {
	t.StartedAt = env.Now
	t.CompletesAt = env.Now.Add(t.Duration)
}

// ProcessQueue проверяет только голову очереди. Готовый предмет попадает
// в инвентарь заказчика, следующая задача стартует от текущего момента.
func ProcessQueue(env *Env, b *domain.Building) bool {
	if len(b.Queue) == 0 {
		return false
	}
	head := b.Queue[0]
	if !head.Started() {
		startTask(head, env)
		return true
	}
	if env.Now.Before(head.CompletesAt) {
		return false
	}

	if p := env.World.Player(head.PlayerID); p != nil && head.Result != nil {
		item := head.Result.Clone()
		if item.IsEquipment() {
			item.EnhancementSlots = RollEnhancementSlots(env.Rng)
			item.Enchantments = nil
		}
		p.Inventory.AddStack(item)
		env.Tell(p.ID, LogInfo, "%s: изготовлено %s!", head.PlayerName, head.RecipeName)
	}

	b.Queue[0] = nil
	b.Queue = b.Queue[1:]
	if len(b.Queue) > 0 {
		next := b.Queue[0]
		startTask(next, env)
		env.Tell(next.PlayerID, LogInfo, "%s: начато изготовление %s.", next.PlayerName, next.RecipeName)
	}
	return true
}
