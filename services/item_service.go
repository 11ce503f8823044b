package services

import (
	"context"
	"errors"

	apperrors "hunter-system/errors"
	"hunter-system/models"
	"hunter-system/store"
)

// ItemStats counts the inventory per rarity and type.
type ItemStats struct {
	Total    int                     `json:"total"`
	ByRarity map[models.Rarity]int   `json:"by_rarity"`
	ByType   map[models.ItemType]int `json:"by_type"`
}

func itemStats(ctx context.Context, st store.Store) (ItemStats, error) {
	items, err := st.ListItems(ctx, store.ItemFilter{})
	if err != nil {
		return ItemStats{}, err
	}
	stats := ItemStats{
		Total:    len(items),
		ByRarity: make(map[models.Rarity]int, len(models.Rarities)),
		ByType:   make(map[models.ItemType]int, len(models.ItemTypes)),
	}
	for _, r := range models.Rarities {
		stats.ByRarity[r] = 0
	}
	for _, t := range models.ItemTypes {
		stats.ByType[t] = 0
	}
	for _, item := range items {
		stats.ByRarity[item.Rarity]++
		stats.ByType[item.Type]++
	}
	return stats, nil
}

// ItemListFilter is the raw query of an inventory listing.
type ItemListFilter struct {
	Rarity string
	Type   string
}

type ItemService struct {
	store store.Store
}

func NewItemService(st store.Store) *ItemService {
	return &ItemService{store: st}
}

func (s *ItemService) ListItems(ctx context.Context, f ItemListFilter) ([]models.Item, error) {
	filter := store.ItemFilter{}
	if f.Rarity != "" {
		r := models.Rarity(f.Rarity)
		if !r.IsValid() {
			return nil, apperrors.ErrValidation("rarity", "unknown rarity "+f.Rarity)
		}
		filter.Rarities = []models.Rarity{r}
	}
	if f.Type != "" {
		t := models.ItemType(f.Type)
		if !t.IsValid() {
			return nil, apperrors.ErrValidation("type", "unknown item type "+f.Type)
		}
		filter.Type = t
	}
	items, err := s.store.ListItems(ctx, filter)
	if err != nil {
		return nil, apperrors.ErrStoreFailure("list items", err)
	}
	return items, nil
}

func (s *ItemService) GetItem(ctx context.Context, id string) (models.Item, error) {
	item, err := s.store.GetItem(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Item{}, apperrors.ErrItemNotFound(id)
	}
	if err != nil {
		return models.Item{}, apperrors.ErrStoreFailure("get item", err)
	}
	return item, nil
}

// DeleteItem discards an item from the inventory.
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	n, err := s.store.DeleteItems(ctx, store.ItemFilter{ID: id})
	if err != nil {
		return apperrors.ErrStoreFailure("delete item", err)
	}
	if n == 0 {
		return apperrors.ErrItemNotFound(id)
	}
	return nil
}

func (s *ItemService) Stats(ctx context.Context) (ItemStats, error) {
	stats, err := itemStats(ctx, s.store)
	if err != nil {
		return ItemStats{}, apperrors.ErrStoreFailure("item stats", err)
	}
	return stats, nil
}
