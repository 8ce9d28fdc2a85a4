package handlers

import (
	"net/http"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/services"
)

func (h *HandlerManager) RequestRent(w http.ResponseWriter, r *http.Request) {
	var in services.RentRequestInput
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.Rents.RequestRent(r.Context(), policy.FromContext(r.Context()), in); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, messageBody{Message: "Rent request sent successfully."})
}

func (h *HandlerManager) AcceptRentRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.Rents.Accept(r.Context(), policy.FromContext(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, messageBody{
		Message: "Rent request accepted successfully. Other pending requests have been rejected.",
	})
}

func (h *HandlerManager) ListRentRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Rents.ListForOwner(r.Context(), policy.FromContext(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, requests)
}

func (h *HandlerManager) GetRentRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	request, err := h.Rents.GetForOwner(r.Context(), policy.FromContext(r.Context()), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, request)
}
