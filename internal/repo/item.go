package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"StockKeeper/internal/model"
)

// ItemRepository определяет контракт доступа к Item для слоя сервиса.
// Проверка владельца выполняется выше, в сервисе.
type ItemRepository interface {
	// ListAll возвращает все позиции с предзагруженным владельцем.
	ListAll(ctx context.Context) ([]model.Item, error)

	// ListByUser возвращает позиции одного владельца.
	ListByUser(ctx context.Context, userID int64) ([]model.Item, error)

	// GetByID ищет позицию по id с владельцем.
	// Возвращает gorm.ErrRecordNotFound, если позиции нет.
	GetByID(ctx context.Context, id int64) (*model.Item, error)

	// Create вставляет новую позицию.
	Create(ctx context.Context, item *model.Item) error

	// Update сохраняет изменённую позицию целиком.
	Update(ctx context.Context, item *model.Item) error

	// Delete удаляет позицию по id.
	Delete(ctx context.Context, id int64) error
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) ListAll(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).Preload("User").Order("id").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) ListByUser(ctx context.Context, userID int64) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	if err := r.db.WithContext(ctx).Preload("User").First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *itemRepo) Update(ctx context.Context, item *model.Item) error {
	// Omit: предзагруженный владелец не должен пересохраняться вместе с позицией
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *itemRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Item{}, id).Error
}
