package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"StockKeeper/internal/model"
	"StockKeeper/internal/repo"
)

var (
	// ErrItemNotFound — позиция с таким id отсутствует.
	ErrItemNotFound = errors.New("item not found")
	// ErrNotOwner — позиция принадлежит другому пользователю.
	ErrNotOwner = errors.New("item belongs to another user")
)

// ItemUpdate — частичное обновление позиции; nil-поля не трогаются.
type ItemUpdate struct {
	ItemName    *string
	Description *string
	Quantity    *int
}

// ItemService инкапсулирует бизнес-логику работы с Item,
// включая проверку владельца на мутирующих операциях.
type ItemService struct {
	repo   repo.ItemRepository
	logger *zap.SugaredLogger
}

func NewItemService(r repo.ItemRepository, logger *zap.SugaredLogger) *ItemService {
	return &ItemService{repo: r, logger: logger}
}

// ListAll возвращает все позиции; пустой результат — забота вызывающего.
func (s *ItemService) ListAll(ctx context.Context) ([]model.Item, error) {
	return s.repo.ListAll(ctx)
}

// ListByOwner возвращает позиции одного владельца.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	return s.repo.ListByUser(ctx, ownerID)
}

// Get ищет позицию по id.
func (s *ItemService) Get(ctx context.Context, id int64) (*model.Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Create создаёт позицию; владельцем становится ownerID.
func (s *ItemService) Create(ctx context.Context, ownerID int64, itemName, description string, quantity int) (*model.Item, error) {
	it := &model.Item{
		UserID:      ownerID,
		ItemName:    itemName,
		Description: description,
		Quantity:    quantity,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	s.logger.Infow("item created", "item", it.ItemName, "user_id", ownerID)
	return it, nil
}

// Update применяет частичное обновление после проверки владельца.
func (s *ItemService) Update(ctx context.Context, id, ownerID int64, patch ItemUpdate) (*model.Item, error) {
	it, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.UserID != ownerID {
		return nil, ErrNotOwner
	}

	if patch.ItemName != nil {
		it.ItemName = *patch.ItemName
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Quantity != nil {
		it.Quantity = *patch.Quantity
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Delete удаляет позицию после проверки владельца.
func (s *ItemService) Delete(ctx context.Context, id, ownerID int64) error {
	it, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if it.UserID != ownerID {
		return ErrNotOwner
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("item deleted", "item", it.ItemName, "user_id", ownerID)
	return nil
}
