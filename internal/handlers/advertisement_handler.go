package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/reports"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/services"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
)

func (h *HandlerManager) ListAdvertisements(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryID(r, "category")
	if err != nil {
		WriteError(w, err)
		return
	}
	ads, err := h.Ads.ListApproved(r.Context(), categoryID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, ads)
}

func (h *HandlerManager) GetAdvertisement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	ad, err := h.Ads.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, ad)
}

func (h *HandlerManager) FavoriteAdvertisements(w http.ResponseWriter, r *http.Request) {
	ads, err := h.Favorites.List(r.Context(), policy.FromContext(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, ads)
}

func (h *HandlerManager) CreateAdvertisement(w http.ResponseWriter, r *http.Request) {
	var in services.AdvertisementInput
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, err)
		return
	}
	if err := in.Validate(); err != nil {
		WriteError(w, err)
		return
	}

	ad, err := h.Ads.Create(r.Context(), policy.FromContext(r.Context()), in.HouseID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":          "Advertisement created successfully.",
		"advertisement_id": ad.ID,
	})
}

func (h *HandlerManager) ApproveAdvertisement(w http.ResponseWriter, r *http.Request) {
	var in services.AdvertisementInput
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, err)
		return
	}
	if err := in.Validate(); err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.Ads.Approve(r.Context(), policy.FromContext(r.Context()), in.HouseID); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, messageBody{Message: "Advertisement Approved."})
}

func (h *HandlerManager) AdminAdvertisements(w http.ResponseWriter, r *http.Request) {
	ads, err := h.Ads.ListAll(r.Context(), policy.FromContext(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, ads)
}

// ExportAdvertisements streams every advertisement as an XLSX workbook.
func (h *HandlerManager) ExportAdvertisements(w http.ResponseWriter, r *http.Request) {
	ads, err := h.Ads.ListAll(r.Context(), policy.FromContext(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteAdvertisements(&buf, ads); err != nil {
		WriteError(w, errors.Wrap(err, errors.ErrCodeInternalError, "Export failed."))
		return
	}

	filename := fmt.Sprintf("advertisements-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", reports.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
