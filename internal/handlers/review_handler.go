package handlers

import (
	"net/http"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/services"
)

func (h *HandlerManager) ListReviews(w http.ResponseWriter, r *http.Request) {
	adID, err := queryID(r, "advertisement")
	if err != nil {
		WriteError(w, err)
		return
	}
	reviews, err := h.Reviews.List(r.Context(), adID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, reviews)
}

func (h *HandlerManager) GetReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	review, err := h.Reviews.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, review)
}

func (h *HandlerManager) CreateReview(w http.ResponseWriter, r *http.Request) {
	var in services.ReviewInput
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, err)
		return
	}

	review, err := h.Reviews.Create(r.Context(), policy.FromContext(r.Context()), in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Review added successfully.",
		"review_id": review.ID,
	})
}

func (h *HandlerManager) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	var in services.ReviewUpdateInput
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, err)
		return
	}

	review, err := h.Reviews.Update(r.Context(), policy.FromContext(r.Context()), id, in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, review)
}

func (h *HandlerManager) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := h.Reviews.Delete(r.Context(), policy.FromContext(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
