package models

import (
	"time"

	"gorm.io/gorm"
)

// Category — только цель для FK, отдельного CRUD у категорий нет.
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `gorm:"size:191;not null" json:"name"`
}

// Inventory — позиция склада. Первичный ключ — UUID, выдаётся при создании.
// DeletedAt помечает мягкое удаление: запись исчезает из обычных выборок,
// но физически остаётся до отдельной чистки.
type Inventory struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CategoryID  uint      `gorm:"index;not null" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SKU         string    `gorm:"size:100;not null" json:"sku"`
	Name        string    `gorm:"size:191;not null" json:"name"`
	Description string    `gorm:"size:1024;not null" json:"description"`
}
