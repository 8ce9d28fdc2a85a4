package handlers

import (
	"net/http"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/services"
)

func (h *HandlerManager) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.ListCategories(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, categories)
}

func (h *HandlerManager) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	category, err := h.Catalog.GetCategory(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, category)
}

func (h *HandlerManager) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, err)
		return
	}
	category, err := h.Catalog.CreateCategory(r.Context(), in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, category)
}

func (h *HandlerManager) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	var in services.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, err)
		return
	}
	category, err := h.Catalog.UpdateCategory(r.Context(), id, in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, category)
}

func (h *HandlerManager) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := h.Catalog.DeleteCategory(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HandlerManager) ListHouses(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryID(r, "category")
	if err != nil {
		WriteError(w, err)
		return
	}
	houses, err := h.Catalog.ListHouses(r.Context(), categoryID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, houses)
}

func (h *HandlerManager) MyHouses(w http.ResponseWriter, r *http.Request) {
	houses, err := h.Catalog.MyHouses(r.Context(), policy.FromContext(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, houses)
}

func (h *HandlerManager) GetHouse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	house, err := h.Catalog.GetHouse(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, house)
}

func (h *HandlerManager) CreateHouse(w http.ResponseWriter, r *http.Request) {
	var in services.HouseInput
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, err)
		return
	}
	house, err := h.Catalog.CreateHouse(r.Context(), policy.FromContext(r.Context()), in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, house)
}

// UpdateHouse serves both PUT and PATCH. Absent fields keep their values.
func (h *HandlerManager) UpdateHouse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	var in services.HouseInput
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, err)
		return
	}
	house, err := h.Catalog.UpdateHouse(r.Context(), policy.FromContext(r.Context()), id, in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, house)
}

func (h *HandlerManager) DeleteHouse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := h.Catalog.DeleteHouse(r.Context(), policy.FromContext(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
