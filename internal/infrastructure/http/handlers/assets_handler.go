package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/application/assessment"
	"github.com/NarenDawar/ai-governance-hub/internal/application/asset"
	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http/middleware"
)

type AssetsHandler struct {
	register    *asset.RegisterAsset
	update      *asset.UpdateAsset
	deleteAsset *asset.DeleteAsset
	sync        *asset.SyncDiscovered
	createAsmt  *assessment.CreateFromTemplate
	assets      ports.AssetRepository
	assessments ports.AssessmentRepository
	auditLogs   ports.AuditLogRepository
	validate    *validator.Validate
	log         zerolog.Logger
}

func NewAssetsHandler(
	register *asset.RegisterAsset,
	update *asset.UpdateAsset,
	deleteAsset *asset.DeleteAsset,
	sync *asset.SyncDiscovered,
	createAsmt *assessment.CreateFromTemplate,
	assets ports.AssetRepository,
	assessments ports.AssessmentRepository,
	auditLogs ports.AuditLogRepository,
	log zerolog.Logger,
) *AssetsHandler {
	return &AssetsHandler{
		register:    register,
		update:      update,
		deleteAsset: deleteAsset,
		sync:        sync,
		createAsmt:  createAsmt,
		assets:      assets,
		assessments: assessments,
		auditLogs:   auditLogs,
		validate:    validator.New(),
		log:         log,
	}
}

type assetResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Owner              string  `json:"owner"`
	BusinessPurpose    string  `json:"businessPurpose"`
	Status             string  `json:"status"`
	RiskClassification string  `json:"riskClassification"`
	VendorID           *string `json:"vendorId"`
	DiscoveredID       string  `json:"discoveredId,omitempty"`
	DateRegistered     string  `json:"dateRegistered"`
}

func toAssetResponse(a *domain.Asset) assetResponse {
	var vendorID *string
	if a.VendorID != nil {
		s := a.VendorID.String()
		vendorID = &s
	}
	return assetResponse{
		ID:                 a.ID.String(),
		Name:               a.Name,
		Owner:              a.Owner,
		BusinessPurpose:    a.BusinessPurpose,
		Status:             string(a.Status),
		RiskClassification: string(a.RiskClassification),
		VendorID:           vendorID,
		DiscoveredID:       a.DiscoveredID,
		DateRegistered:     a.DateRegistered.Format(time.RFC3339),
	}
}

// List handles GET /assets, newest registrations first.
func (h *AssetsHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	assets, err := h.assets.List(r.Context(), scope.OrganizationID)
	if err != nil {
		h.log.Error().Err(err).Msg("asset listing failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	out := make([]assetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, toAssetResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /assets.
func (h *AssetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	var body struct {
		Name               string  `json:"name" validate:"required,max=200"`
		Owner              string  `json:"owner" validate:"required,max=200"`
		BusinessPurpose    string  `json:"businessPurpose" validate:"required,max=2000"`
		RiskClassification string  `json:"riskClassification" validate:"required"`
		VendorID           *string `json:"vendorId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "missing required fields")
		return
	}
	risk := domain.RiskLevel(body.RiskClassification)
	if !risk.Valid() {
		writeErr(w, http.StatusBadRequest, "", "invalid risk value provided")
		return
	}
	input := asset.RegisterAssetInput{
		Scope:              scope,
		Name:               SanitizeName(body.Name),
		Owner:              body.Owner,
		BusinessPurpose:    body.BusinessPurpose,
		RiskClassification: risk,
	}
	if body.VendorID != nil && *body.VendorID != "" {
		vid, err := uuid.Parse(*body.VendorID)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "", "invalid vendor id")
			return
		}
		v := domain.NewVendorID(vid)
		input.VendorID = &v
	}
	created, err := h.register.Execute(r.Context(), input)
	if err != nil {
		if err == domerrors.ErrNotFound {
			writeErr(w, http.StatusBadRequest, "", "unknown vendor")
			return
		}
		h.log.Error().Err(err).Msg("asset create failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, toAssetResponse(created))
}

// Get handles GET /assets/{assetID}.
func (h *AssetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	assetID, ok := parseAssetID(w, r)
	if !ok {
		return
	}
	a, err := h.assets.GetByID(r.Context(), scope.OrganizationID, assetID)
	if err != nil {
		h.log.Error().Err(err).Msg("asset lookup failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if a == nil {
		writeErr(w, http.StatusNotFound, "", "asset not found")
		return
	}
	writeJSON(w, http.StatusOK, toAssetResponse(a))
}

// Update handles PATCH /assets/{assetID}.
func (h *AssetsHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	assetID, ok := parseAssetID(w, r)
	if !ok {
		return
	}
	var body struct {
		Name               *string `json:"name"`
		Owner              *string `json:"owner"`
		BusinessPurpose    *string `json:"businessPurpose"`
		Status             *string `json:"status"`
		RiskClassification *string `json:"riskClassification"`
		VendorID           *string `json:"vendorId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	input := asset.UpdateAssetInput{
		Scope:           scope,
		AssetID:         assetID,
		Name:            body.Name,
		Owner:           body.Owner,
		BusinessPurpose: body.BusinessPurpose,
	}
	if body.Status != nil {
		status := domain.AssetStatus(*body.Status)
		if !status.Valid() {
			writeErr(w, http.StatusBadRequest, "", "invalid status or risk value provided")
			return
		}
		input.Status = &status
	}
	if body.RiskClassification != nil {
		risk := domain.RiskLevel(*body.RiskClassification)
		if !risk.Valid() {
			writeErr(w, http.StatusBadRequest, "", "invalid status or risk value provided")
			return
		}
		input.RiskClassification = &risk
	}
	if body.VendorID != nil {
		if *body.VendorID == "" {
			input.ClearVendor = true
		} else {
			vid, err := uuid.Parse(*body.VendorID)
			if err != nil {
				writeErr(w, http.StatusBadRequest, "", "invalid vendor id")
				return
			}
			v := domain.NewVendorID(vid)
			input.VendorID = &v
		}
	}
	updated, err := h.update.Execute(r.Context(), input)
	if err != nil {
		if err == domerrors.ErrNotFound {
			writeDomainErr(w, err)
			return
		}
		h.log.Error().Err(err).Msg("asset update failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toAssetResponse(updated))
}

// Delete handles DELETE /assets/{assetID}.
func (h *AssetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	assetID, ok := parseAssetID(w, r)
	if !ok {
		return
	}
	if err := h.deleteAsset.Execute(r.Context(), asset.DeleteAssetInput{Scope: scope, AssetID: assetID}); err != nil {
		if err == domerrors.ErrNotFound {
			writeDomainErr(w, err)
			return
		}
		h.log.Error().Err(err).Msg("asset delete failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Sync handles POST /assets/sync.
func (h *AssetsHandler) Sync(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	result, err := h.sync.Execute(r.Context(), asset.SyncDiscoveredInput{Scope: scope})
	if err != nil {
		h.log.Error().Err(err).Msg("asset sync failed")
		writeErr(w, http.StatusInternalServerError, "", "unable to sync assets")
		return
	}
	middleware.RecordDiscoveredAssets(result.NewAssetCount)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       fmt.Sprintf("Sync complete. %d new assets were discovered and added.", result.NewAssetCount),
		"newAssetCount": result.NewAssetCount,
	})
}

// ListAssessments handles GET /assets/{assetID}/assessments.
func (h *AssetsHandler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	assetID, ok := parseAssetID(w, r)
	if !ok {
		return
	}
	a, err := h.assets.GetByID(r.Context(), scope.OrganizationID, assetID)
	if err != nil {
		h.log.Error().Err(err).Msg("asset lookup failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if a == nil {
		writeErr(w, http.StatusNotFound, "", "asset not found")
		return
	}
	list, err := h.assessments.ListByAsset(r.Context(), scope.OrganizationID, assetID)
	if err != nil {
		h.log.Error().Err(err).Msg("assessment listing failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	out := make([]assessmentResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toAssessmentResponse(item))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateAssessment handles POST /assets/{assetID}/assessments.
func (h *AssetsHandler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	assetID, ok := parseAssetID(w, r)
	if !ok {
		return
	}
	var body struct {
		TemplateID string `json:"templateId" validate:"required,uuid"`
		Name       string `json:"name" validate:"max=200"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "template id is required")
		return
	}
	tid, err := uuid.Parse(body.TemplateID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid template id")
		return
	}
	created, err := h.createAsmt.Execute(r.Context(), assessment.CreateFromTemplateInput{
		Scope:      scope,
		AssetID:    assetID,
		TemplateID: domain.NewTemplateID(tid),
		Name:       body.Name,
	})
	if err != nil {
		if err == domerrors.ErrNotFound {
			writeDomainErr(w, err)
			return
		}
		h.log.Error().Err(err).Msg("assessment create failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, toAssessmentResponse(created))
}

// AuditLog handles GET /assets/{assetID}/auditlog, newest first.
func (h *AssetsHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	assetID, ok := parseAssetID(w, r)
	if !ok {
		return
	}
	entries, err := h.auditLogs.ListByAsset(r.Context(), scope.OrganizationID, assetID)
	if err != nil {
		h.log.Error().Err(err).Msg("audit log listing failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	type auditEntryResponse struct {
		ID        string `json:"id"`
		Action    string `json:"action"`
		Details   string `json:"details"`
		CreatedAt string `json:"createdAt"`
		User      struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	out := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := auditEntryResponse{
			ID:        e.ID.String(),
			Action:    string(e.Action),
			Details:   e.Details,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
		resp.User.Name = e.UserName
		resp.User.Email = e.UserEmail
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func parseAssetID(w http.ResponseWriter, r *http.Request) (domain.AssetID, bool) {
	raw := chi.URLParam(r, "assetID")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid asset id")
		return domain.AssetID{}, false
	}
	return domain.NewAssetID(id), true
}
