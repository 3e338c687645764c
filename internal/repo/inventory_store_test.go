package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"stockroom/internal/models"
	"stockroom/internal/repo"
)

func memdb(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Category{}, &models.Inventory{}, &models.AuditEntry{}); err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.Category{ID: 1, Name: "Gadgets"}).Error; err != nil {
		t.Fatal(err)
	}
	return db
}

func widget() repo.InventoryFields {
	return repo.InventoryFields{CategoryID: 1, SKU: "W-1", Name: "Widget", Description: "d"}
}

func TestCreateGeneratesUUID(t *testing.T) {
	s := repo.NewInventoryStore(memdb(t))

	inv, err := s.Create(context.Background(), widget())
	if err != nil {
		t.Fatal(err)
	}
	if len(inv.ID) != 36 {
		t.Fatalf("expected uuid id, got %q", inv.ID)
	}
	if inv.SKU != "W-1" {
		t.Fatalf("fields not persisted: %+v", inv)
	}
}

func TestGetPreloadsCategory(t *testing.T) {
	s := repo.NewInventoryStore(memdb(t))
	created, err := s.Create(context.Background(), widget())
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Category == nil || got.Category.Name != "Gadgets" {
		t.Fatalf("category not eagerly loaded: %+v", got.Category)
	}
}

func TestGetUnknownID(t *testing.T) {
	s := repo.NewInventoryStore(memdb(t))
	if _, err := s.Get(context.Background(), "00000000-0000-0000-0000-000000000000"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateOverwritesAllFields(t *testing.T) {
	s := repo.NewInventoryStore(memdb(t))
	created, err := s.Create(context.Background(), widget())
	if err != nil {
		t.Fatal(err)
	}

	updated, err := s.Update(context.Background(), created.ID, repo.InventoryFields{
		CategoryID: 1, SKU: "W-2", Name: "Widget v2", Description: "d2",
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.SKU != "W-2" || updated.Name != "Widget v2" || updated.Description != "d2" {
		t.Fatalf("update did not overwrite: %+v", updated)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s := repo.NewInventoryStore(memdb(t))
	if _, err := s.Update(context.Background(), "missing", widget()); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSoftDeleteHidesButKeepsRow(t *testing.T) {
	db := memdb(t)
	s := repo.NewInventoryStore(db)
	created, err := s.Create(context.Background(), widget())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(context.Background(), created.ID); err != nil {
		t.Fatal(err)
	}

	// из обычных выборок запись исчезла
	if _, err := s.Get(context.Background(), created.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	rows, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("soft-deleted row still listed: %+v", rows)
	}

	// физически строка на месте, deleted_at выставлен
	var raw models.Inventory
	if err := db.Unscoped().Where("id = ?", created.ID).First(&raw).Error; err != nil {
		t.Fatalf("row physically removed: %v", err)
	}
	if !raw.DeletedAt.Valid {
		t.Fatal("deleted_at not set")
	}
}

func TestDeleteTwice(t *testing.T) {
	s := repo.NewInventoryStore(memdb(t))
	created, err := s.Create(context.Background(), widget())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(context.Background(), created.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(context.Background(), created.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("second delete expected ErrNotFound, got %v", err)
	}
}

func TestCreatePropagatesStorageError(t *testing.T) {
	db := memdb(t)
	s := repo.NewInventoryStore(db)
	if err := db.Migrator().DropTable(&models.Inventory{}); err != nil {
		t.Fatal(err)
	}

	inv, err := s.Create(context.Background(), widget())
	if err == nil {
		t.Fatal("expected storage error, got none")
	}
	if errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("storage failure must not masquerade as not-found: %v", err)
	}
	if inv != nil {
		t.Fatalf("failed create must not return a record: %+v", inv)
	}
}

func TestListExcludesDeleted(t *testing.T) {
	s := repo.NewInventoryStore(memdb(t))
	keep, err := s.Create(context.Background(), widget())
	if err != nil {
		t.Fatal(err)
	}
	gone, err := s.Create(context.Background(), repo.InventoryFields{
		CategoryID: 1, SKU: "W-9", Name: "Old widget", Description: "d",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(context.Background(), gone.ID); err != nil {
		t.Fatal(err)
	}

	rows, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].ID != keep.ID {
		t.Fatalf("expected only the live row, got %+v", rows)
	}
	if rows[0].Category == nil {
		t.Fatal("list must preload category")
	}
}
