package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stockroom/internal/models"
)

var ErrNotFound = errors.New("not found")

type InventoryStore struct{ db *gorm.DB }

func NewInventoryStore(db *gorm.DB) *InventoryStore { return &InventoryStore{db: db} }

// InventoryFields — полный набор изменяемых полей. Update перезаписывает
// все поля целиком, частичного patch нет.
type InventoryFields struct {
	CategoryID  uint
	SKU         string
	Name        string
	Description string
}

// List возвращает все не удалённые позиции вместе с категорией.
func (s *InventoryStore) List(ctx context.Context) ([]models.Inventory, error) {
	var rows []models.Inventory
	err := s.db.WithContext(ctx).Preload("Category").Find(&rows).Error
	return rows, err
}

// Get ищет позицию по id с категорией. Мягко удалённые записи
// отфильтровываются самим gorm по deleted_at.
func (s *InventoryStore) Get(ctx context.Context, id string) (*models.Inventory, error) {
	var inv models.Inventory
	err := s.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create вставляет новую позицию в одной транзакции. UUID выдаётся здесь.
func (s *InventoryStore) Create(ctx context.Context, f InventoryFields) (*models.Inventory, error) {
	inv := models.Inventory{
		ID:          uuid.NewString(),
		CategoryID:  f.CategoryID,
		SKU:         f.SKU,
		Name:        f.Name,
		Description: f.Description,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&inv).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Update перезаписывает поля существующей позиции. Поиск — до транзакции
// (absent → ErrNotFound), сама запись — внутри неё.
func (s *InventoryStore) Update(ctx context.Context, id string, f InventoryFields) (*models.Inventory, error) {
	var inv models.Inventory
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	inv.SKU = f.SKU
	inv.Name = f.Name
	inv.CategoryID = f.CategoryID
	inv.Description = f.Description

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(&inv).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Delete помечает позицию удалённой (deleted_at). Повторный вызов по тому же
// id возвращает ErrNotFound: запись уже вне обычных выборок.
func (s *InventoryStore) Delete(ctx context.Context, id string) error {
	var inv models.Inventory
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&inv).Error
	})
}
