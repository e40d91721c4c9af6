package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/application/vendor"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http/middleware"
)

type VendorsHandler struct {
	create       *vendor.CreateVendor
	update       *vendor.UpdateVendor
	deleteVendor *vendor.DeleteVendor
	vendors      ports.VendorRepository
	validate     *validator.Validate
	log          zerolog.Logger
}

func NewVendorsHandler(create *vendor.CreateVendor, update *vendor.UpdateVendor, deleteVendor *vendor.DeleteVendor, vendors ports.VendorRepository, log zerolog.Logger) *VendorsHandler {
	return &VendorsHandler{
		create:       create,
		update:       update,
		deleteVendor: deleteVendor,
		vendors:      vendors,
		validate:     validator.New(),
		log:          log,
	}
}

type vendorResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Website   string `json:"website,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func toVendorResponse(v *domain.Vendor) vendorResponse {
	return vendorResponse{
		ID:        v.ID.String(),
		Name:      v.Name,
		Website:   v.Website,
		Status:    string(v.Status),
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
	}
}

// List handles GET /vendors.
func (h *VendorsHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	vendors, err := h.vendors.List(r.Context(), scope.OrganizationID)
	if err != nil {
		h.log.Error().Err(err).Msg("vendor listing failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	out := make([]vendorResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, toVendorResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /vendors.
func (h *VendorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	var body struct {
		Name    string `json:"name" validate:"required,max=200"`
		Website string `json:"website" validate:"max=500"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "vendor name is required")
		return
	}
	status := domain.VendorStatus(body.Status)
	if body.Status != "" && !status.Valid() {
		writeErr(w, http.StatusBadRequest, "", "invalid status value provided")
		return
	}
	created, err := h.create.Execute(r.Context(), vendor.CreateVendorInput{
		Scope:   scope,
		Name:    SanitizeName(body.Name),
		Website: body.Website,
		Status:  status,
	})
	if err != nil {
		if err == domerrors.ErrDuplicateName {
			writeErr(w, http.StatusConflict, ErrCodeConflict, "a vendor with this name already exists")
			return
		}
		h.log.Error().Err(err).Msg("vendor create failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, toVendorResponse(created))
}

// Get handles GET /vendors/{vendorID}.
func (h *VendorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	vendorID, ok := parseVendorID(w, r)
	if !ok {
		return
	}
	v, err := h.vendors.GetByID(r.Context(), scope.OrganizationID, vendorID)
	if err != nil {
		h.log.Error().Err(err).Msg("vendor lookup failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if v == nil {
		writeErr(w, http.StatusNotFound, "", "vendor not found")
		return
	}
	writeJSON(w, http.StatusOK, toVendorResponse(v))
}

// Update handles PATCH /vendors/{vendorID}.
func (h *VendorsHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	vendorID, ok := parseVendorID(w, r)
	if !ok {
		return
	}
	var body struct {
		Name    *string `json:"name"`
		Website *string `json:"website"`
		Status  *string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	input := vendor.UpdateVendorInput{
		Scope:    scope,
		VendorID: vendorID,
		Name:     body.Name,
		Website:  body.Website,
	}
	if body.Status != nil {
		status := domain.VendorStatus(*body.Status)
		if !status.Valid() {
			writeErr(w, http.StatusBadRequest, "", "invalid status value provided")
			return
		}
		input.Status = &status
	}
	updated, err := h.update.Execute(r.Context(), input)
	if err != nil {
		switch err {
		case domerrors.ErrNotFound, domerrors.ErrDuplicateName:
			writeDomainErr(w, err)
		default:
			h.log.Error().Err(err).Msg("vendor update failed")
			writeErr(w, http.StatusInternalServerError, "", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, toVendorResponse(updated))
}

// Delete handles DELETE /vendors/{vendorID}. Vendors still referenced by
// assets are protected and return a conflict.
func (h *VendorsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	vendorID, ok := parseVendorID(w, r)
	if !ok {
		return
	}
	if err := h.deleteVendor.Execute(r.Context(), vendor.DeleteVendorInput{Scope: scope, VendorID: vendorID}); err != nil {
		switch err {
		case domerrors.ErrNotFound:
			writeDomainErr(w, err)
		case domerrors.ErrVendorInUse:
			writeErr(w, http.StatusConflict, ErrCodeConflict, "vendor is still linked to one or more assets")
		default:
			h.log.Error().Err(err).Msg("vendor delete failed")
			writeErr(w, http.StatusInternalServerError, "", "internal error")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseVendorID(w http.ResponseWriter, r *http.Request) (domain.VendorID, bool) {
	raw := chi.URLParam(r, "vendorID")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid vendor id")
		return domain.VendorID{}, false
	}
	return domain.NewVendorID(id), true
}
