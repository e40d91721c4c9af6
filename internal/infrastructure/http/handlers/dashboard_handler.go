package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http/middleware"
)

type DashboardHandler struct {
	assets      ports.AssetRepository
	assessments ports.AssessmentRepository
	log         zerolog.Logger
}

func NewDashboardHandler(assets ports.AssetRepository, assessments ports.AssessmentRepository, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{assets: assets, assessments: assessments, log: log}
}

type dashboardStatsResponse struct {
	AssetsByRisk        map[string]int `json:"assetsByRisk"`
	AssetsByStatus      map[string]int `json:"assetsByStatus"`
	AssessmentsByStatus map[string]int `json:"assessmentsByStatus"`
	TotalAssets         int            `json:"totalAssets"`
	TotalAssessments    int            `json:"totalAssessments"`
}

// Stats handles GET /dashboard/stats. Every enum value is present in each
// breakdown, zero-filled, so clients never branch on missing keys.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	ctx := r.Context()

	byRisk, err := h.assets.CountByRisk(ctx, scope.OrganizationID)
	if err != nil {
		h.log.Error().Err(err).Msg("risk breakdown failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	byStatus, err := h.assets.CountByStatus(ctx, scope.OrganizationID)
	if err != nil {
		h.log.Error().Err(err).Msg("status breakdown failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	byAssessmentStatus, err := h.assessments.CountByStatus(ctx, scope.OrganizationID)
	if err != nil {
		h.log.Error().Err(err).Msg("assessment breakdown failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}

	resp := dashboardStatsResponse{
		AssetsByRisk:        map[string]int{},
		AssetsByStatus:      map[string]int{},
		AssessmentsByStatus: map[string]int{},
	}
	for _, level := range []domain.RiskLevel{domain.RiskLow, domain.RiskMedium, domain.RiskHigh, domain.RiskSevere} {
		resp.AssetsByRisk[string(level)] = byRisk[level]
		resp.TotalAssets += byRisk[level]
	}
	for _, status := range []domain.AssetStatus{domain.AssetProposed, domain.AssetInReview, domain.AssetActive, domain.AssetRetired} {
		resp.AssetsByStatus[string(status)] = byStatus[status]
	}
	for _, status := range []domain.AssessmentStatus{domain.AssessmentNotStarted, domain.AssessmentInProgress, domain.AssessmentCompleted, domain.AssessmentArchived} {
		resp.AssessmentsByStatus[string(status)] = byAssessmentStatus[status]
		resp.TotalAssessments += byAssessmentStatus[status]
	}
	writeJSON(w, http.StatusOK, resp)
}
