package transactions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	categoriesdomain "budgetbuddy-go/internal/domain/categories"
	commonhandler "budgetbuddy-go/internal/transport/httpserver/handler/common"
	"budgetbuddy-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createCategoryRequest struct {
	Name  string  `json:"name"`
	Icon  string  `json:"icon"`
	Color *string `json:"color"`
}

// updateCategoryRequest is a partial update; omitted fields are kept.
type updateCategoryRequest struct {
	Name  *string                `json:"name"`
	Icon  *string                `json:"icon"`
	Color optionalNullableString `json:"color"`
}

type optionalNullableString struct {
	Set   bool
	Value *string
}

func (o *optionalNullableString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	o.Value = &value
	return nil
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     *string   `json:"color"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	categories, err := h.Categories.ListCategories(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("categories.list: list categories failed", err, "user_id", user.ID)
		writeInternal(w)
		return
	}

	response := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	created, err := h.Categories.CreateCategory(r.Context(), categoriesdomain.CreateCategoryInput{
		UserID: user.ID,
		Name:   req.Name,
		Icon:   req.Icon,
		Color:  req.Color,
	})
	if err != nil {
		if writeCategoryError(w, err) {
			h.log.BusinessError("categories.create: rejected", err, "user_id", user.ID)
			return
		}
		h.log.InternalError("categories.create: create category failed", err, "user_id", user.ID)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(*created))
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(chi.URLParam(r, "id"))
	if !commonhandler.ValidID(categoryID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "id must be a uuid")
		return
	}

	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Name == nil && req.Icon == nil && !req.Color.Set {
		writeError(w, http.StatusBadRequest, "invalid_request", "nothing to update")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	updated, err := h.Categories.UpdateCategory(r.Context(), categoriesdomain.UpdateCategoryInput{
		UserID:     user.ID,
		CategoryID: categoryID,
		Name:       req.Name,
		Icon:       req.Icon,
		Color: categoriesdomain.OptionalNullableString{
			Set:   req.Color.Set,
			Value: req.Color.Value,
		},
	})
	if err != nil {
		if writeCategoryError(w, err) {
			h.log.BusinessError("categories.update: rejected", err, "user_id", user.ID, "category_id", categoryID)
			return
		}
		h.log.InternalError("categories.update: update category failed", err, "user_id", user.ID, "category_id", categoryID)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(*updated))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(chi.URLParam(r, "id"))
	if !commonhandler.ValidID(categoryID) {
		writeError(w, http.StatusBadRequest, "invalid_request", "id must be a uuid")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	if err := h.Categories.DeleteCategory(r.Context(), user.ID, categoryID); err != nil {
		if writeCategoryError(w, err) {
			h.log.BusinessError("categories.delete: rejected", err, "user_id", user.ID, "category_id", categoryID)
			return
		}
		h.log.InternalError("categories.delete: delete category failed", err, "user_id", user.ID, "category_id", categoryID)
		writeInternal(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeCategoryError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, categoriesdomain.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, "category_not_found", "category not found")
	case errors.Is(err, categoriesdomain.ErrCategoryNameTaken):
		writeError(w, http.StatusConflict, "category_name_taken", "Category name already exists")
	case errors.Is(err, categoriesdomain.ErrCategoryIsDefault):
		writeError(w, http.StatusConflict, "category_is_default", "Default categories cannot be deleted")
	case errors.Is(err, categoriesdomain.ErrInvalidCategoryName):
		writeError(w, http.StatusBadRequest, "invalid_request", "name must be 1 to 50 characters")
	case errors.Is(err, categoriesdomain.ErrInvalidCategoryColor):
		writeError(w, http.StatusBadRequest, "invalid_request", "color must be null or #RRGGBB")
	default:
		return false
	}
	return true
}

func toCategoryResponse(category categoriesdomain.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Icon:      category.Icon,
		Color:     category.Color,
		IsDefault: category.IsDefault,
		CreatedAt: category.CreatedAt,
	}
}
