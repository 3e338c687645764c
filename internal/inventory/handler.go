package inventory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"stockroom/internal/auth"
	"stockroom/internal/logs"
	"stockroom/internal/models"
	"stockroom/internal/repo"
)

func NewHandler(store *repo.InventoryStore, audit *repo.AuditStore) *Handler {
	return &Handler{store: store, audit: audit}
}

type Handler struct {
	store *repo.InventoryStore
	audit *repo.AuditStore
}

type inventoryRequest struct {
	CategoryID  uint   `json:"category_id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// validate — только required, без форматных правил.
// Проверяется до открытия какой-либо транзакции.
func (in inventoryRequest) validate() map[string][]string {
	errs := map[string][]string{}
	if in.CategoryID == 0 {
		errs["category_id"] = []string{"The category_id field is required."}
	}
	if in.Name == "" {
		errs["name"] = []string{"The name field is required."}
	}
	if in.SKU == "" {
		errs["sku"] = []string{"The sku field is required."}
	}
	if in.Description == "" {
		errs["description"] = []string{"The description field is required."}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (in inventoryRequest) fields() repo.InventoryFields {
	return repo.InventoryFields{
		CategoryID:  in.CategoryID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
	}
}

// List: GET /admin/inventories — все не удалённые позиции с категориями.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.List(r.Context())
	if err != nil {
		models.Failure(err.Error()).Code(http.StatusInternalServerError).Write(w)
		return
	}
	if rows == nil {
		rows = []models.Inventory{}
	}
	models.Success(rows).Write(w)
}

// Get: GET /admin/inventory/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.store.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, repo.ErrNotFound) {
		models.Failure("Inventory not found").Code(http.StatusNotFound).Write(w)
		return
	}
	if err != nil {
		models.Failure(err.Error()).Code(http.StatusInternalServerError).Write(w)
		return
	}
	models.Success(inv).Write(w)
}

// Create: POST /admin/inventory.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.Failure(err.Error()).Code(http.StatusBadRequest).Write(w)
		return
	}
	if errs := req.validate(); errs != nil {
		models.Failure(errs).Code(http.StatusBadRequest).Write(w)
		return
	}
	inv, err := h.store.Create(r.Context(), req.fields())
	if err != nil {
		models.Failure(err.Error()).Code(http.StatusInternalServerError).Write(w)
		return
	}
	h.recordAudit(r, "inventory.create", inv.ID, req)
	models.Success(inv).Code(http.StatusCreated).Write(w)
}

// Update: PUT /admin/inventory/{id} — полная перезапись полей.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req inventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.Failure(err.Error()).Code(http.StatusBadRequest).Write(w)
		return
	}
	if errs := req.validate(); errs != nil {
		models.Failure(errs).Code(http.StatusBadRequest).Write(w)
		return
	}
	inv, err := h.store.Update(r.Context(), id, req.fields())
	if errors.Is(err, repo.ErrNotFound) {
		models.Failure("Inventory not found").Code(http.StatusNotFound).Write(w)
		return
	}
	if err != nil {
		models.Failure(err.Error()).Code(http.StatusInternalServerError).Write(w)
		return
	}
	h.recordAudit(r, "inventory.update", inv.ID, req)
	models.Success(inv).Write(w)
}

// Delete: DELETE /admin/inventory/{id} — мягкое удаление.
// Повторный вызов по тому же id — уже 404.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		models.Failure("Inventory not found").Code(http.StatusNotFound).Write(w)
		return
	}
	if err != nil {
		models.Failure(err.Error()).Code(http.StatusInternalServerError).Write(w)
		return
	}
	h.recordAudit(r, "inventory.delete", id, nil)
	models.Success(nil).Write(w)
}

func (h *Handler) recordAudit(r *http.Request, action, entityID string, details any) {
	if h.audit == nil {
		return
	}
	var actorID uint
	if u := auth.UserFrom(r); u != nil {
		actorID = u.ID
	}
	if err := h.audit.Record(r.Context(), actorID, action, "inventory", entityID, details); err != nil {
		logs.Logger.Warnf("audit record failed: %v action=%s entity_id=%s", err, action, entityID)
	}
}
