package systems

import (
	"fmt"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

var storageNames = map[string]string{
	domain.BuildingStorage:         "хранилище команды",
	domain.BuildingPersonalStorage: "личное хранилище",
}

// storageAt находит хранилище вида kind на площадке команды игрока и возвращает
// инвентарь, с которым работает игрок (общий или его личный).
func storageAt(env *Env, p *domain.Player, buildingIndex int, kind string) (*domain.Building, *domain.Inventory, error) {
	if _, ok := storageNames[kind]; !ok {
		return nil, nil, domain.Validation("Неизвестный вид хранилища %q.", kind)
	}
	if err := requireAlive(p); err != nil {
		return nil, nil, err
	}
	site, err := ownSite(env.World, p)
	if err != nil {
		return nil, nil, err
	}
	b := site.BuildingAt(buildingIndex)
	if b == nil {
		return nil, nil, domain.NotFound("Здание не найдено.")
	}
	if b.Type != kind {
		return nil, nil, domain.Precondition("%s не является хранилищем этого вида.", b.Name)
	}
	if kind == domain.BuildingStorage {
		return b, &b.Storage, nil
	}
	if b.PersonalStorage == nil {
		b.PersonalStorage = make(map[string]domain.Inventory)
	}
	inv := b.PersonalStorage[p.ID]
	return b, &inv, nil
}

// commit сохраняет личный инвентарь обратно в карту (срез мог быть переразмещен).
func commit(b *domain.Building, p *domain.Player, kind string, inv *domain.Inventory) {
	if kind == domain.BuildingPersonalStorage {
		b.PersonalStorage[p.ID] = *inv
	}
}

// Deposit перекладывает quantity штук предмета из инвентаря в хранилище.
// Стопки объединяются по ключу (имя, тип, уровень, качество); лимит слотов
// действует только на новые стопки.
func Deposit(env *Env, p *domain.Player, buildingIndex, itemIndex int, kind string, quantity int) (string, error) {
	b, store, err := storageAt(env, p, buildingIndex, kind)
	if err != nil {
		return "", err
	}
	item := p.Inventory.At(itemIndex)
	if item == nil {
		return "", domain.NotFound("Предмет не найден.")
	}
	if quantity <= 0 || quantity > item.Quantity {
		return "", domain.Validation("Неверное количество. У вас %d %s.", item.Quantity, item.Name)
	}
	if store.FindStack(item) < 0 && len(*store) >= b.Slots {
		return "", domain.Precondition("Хранилище заполнено.")
	}

	moved := item.Clone()
	moved.Quantity = quantity
	store.AddStack(moved)
	p.Inventory.Take(itemIndex, quantity)
	commit(b, p, kind, store)

	return fmt.Sprintf("%s кладет %dx %s в %s.", p.Name, quantity, item.Name, storageNames[kind]), nil
}

// Withdraw забирает quantity штук из хранилища обратно в инвентарь.
func Withdraw(env *Env, p *domain.Player, buildingIndex, itemIndex int, kind string, quantity int) (string, error) {
	b, store, err := storageAt(env, p, buildingIndex, kind)
	if err != nil {
		return "", err
	}
	item := store.At(itemIndex)
	if item == nil {
		return "", domain.NotFound("Предмет не найден в хранилище.")
	}
	if quantity <= 0 || quantity > item.Quantity {
		return "", domain.Validation("Неверное количество. В хранилище %d %s.", item.Quantity, item.Name)
	}

	moved := item.Clone()
	moved.Quantity = quantity
	p.Inventory.AddStack(moved)
	store.Take(itemIndex, quantity)
	commit(b, p, kind, store)

	return fmt.Sprintf("%s забирает %dx %s из хранилища.", p.Name, quantity, item.Name), nil
}
