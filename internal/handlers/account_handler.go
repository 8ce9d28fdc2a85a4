package handlers

import (
	"net/http"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/services"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/gorilla/mux"
)

func (h *HandlerManager) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.Accounts.Register(r.Context(), in); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, messageBody{Message: "Check Your Mail"})
}

func (h *HandlerManager) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Accounts.Confirm(r.Context(), vars["uid"], vars["token"]); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, messageBody{Message: "Email verified successfully."})
}

func (h *HandlerManager) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.Accounts.Login(r.Context(), in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

func (h *HandlerManager) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Accounts.Logout(r.Context(), policy.FromContext(r.Context())); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"detail": "Successfully logged out."})
}

func (h *HandlerManager) Profile(w http.ResponseWriter, r *http.Request) {
	account, err := h.Accounts.Profile(r.Context(), policy.FromContext(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, account)
}

func (h *HandlerManager) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in services.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, err)
		return
	}

	if err := h.Accounts.UpdateProfile(r.Context(), policy.FromContext(r.Context()), in); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, messageBody{Message: "Profile updated successfully"})
}

func (h *HandlerManager) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var in services.ChangePasswordInput
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, err)
		return
	}

	if err := h.Accounts.ChangePassword(r.Context(), policy.FromContext(r.Context()), in); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, messageBody{Message: "Password changed successfully."})
}

func (h *HandlerManager) AddFavorite(w http.ResponseWriter, r *http.Request) {
	adID, err := pathID(r, "adId")
	if err != nil {
		WriteError(w, err)
		return
	}

	added, err := h.Favorites.Add(r.Context(), policy.FromContext(r.Context()), adID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !added {
		WriteJSON(w, http.StatusAlreadyReported, messageBody{Message: "Advertisement Already in Favorites."})
		return
	}
	WriteJSON(w, http.StatusOK, messageBody{Message: "Advertisement added to favorites."})
}

func (h *HandlerManager) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	adID, err := pathID(r, "adId")
	if err != nil {
		WriteError(w, err)
		return
	}

	err = h.Favorites.Remove(r.Context(), policy.FromContext(r.Context()), adID)
	if errors.Is(err, errors.ErrCodeBadRequest) {
		appErr, _ := errors.As(err)
		WriteJSON(w, http.StatusBadRequest, messageBody{Message: appErr.Message})
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, messageBody{Message: "Advertisement removed from favorites."})
}
