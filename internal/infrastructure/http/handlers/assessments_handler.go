package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/application/assessment"
	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http/middleware"
)

type AssessmentsHandler struct {
	update      *assessment.UpdateAssessment
	assessments ports.AssessmentRepository
	log         zerolog.Logger
}

func NewAssessmentsHandler(update *assessment.UpdateAssessment, assessments ports.AssessmentRepository, log zerolog.Logger) *AssessmentsHandler {
	return &AssessmentsHandler{update: update, assessments: assessments, log: log}
}

type assessmentResponse struct {
	ID                  string               `json:"id"`
	AssetID             string               `json:"assetId"`
	Name                string               `json:"name"`
	Status              string               `json:"status"`
	Questionnaire       domain.Questionnaire `json:"questionnaire"`
	CalculatedRiskScore *int                 `json:"calculatedRiskScore"`
	CreatedAt           string               `json:"createdAt"`
}

func toAssessmentResponse(a *domain.Assessment) assessmentResponse {
	return assessmentResponse{
		ID:                  a.ID.String(),
		AssetID:             a.AssetID.String(),
		Name:                a.Name,
		Status:              string(a.Status),
		Questionnaire:       a.Questionnaire,
		CalculatedRiskScore: a.CalculatedRiskScore,
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
	}
}

// Get handles GET /assessments/{assessmentID}.
func (h *AssessmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	assessmentID, ok := parseAssessmentID(w, r)
	if !ok {
		return
	}
	a, err := h.assessments.GetByID(r.Context(), scope.OrganizationID, assessmentID)
	if err != nil {
		h.log.Error().Err(err).Msg("assessment lookup failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if a == nil {
		writeErr(w, http.StatusNotFound, "", "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, toAssessmentResponse(a))
}

// Update handles PATCH /assessments/{assessmentID}. When a questionnaire is
// submitted the status is derived from the answers and a completed assessment
// with a score can reclassify the owning asset's risk tier.
func (h *AssessmentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	assessmentID, ok := parseAssessmentID(w, r)
	if !ok {
		return
	}
	var body struct {
		Name                *string               `json:"name"`
		Status              *string               `json:"status"`
		Questionnaire       *domain.Questionnaire `json:"questionnaire"`
		CalculatedRiskScore *int                  `json:"calculatedRiskScore"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	input := assessment.UpdateAssessmentInput{
		Scope:         scope,
		AssessmentID:  assessmentID,
		Name:          body.Name,
		Questionnaire: body.Questionnaire,
		Score:         body.CalculatedRiskScore,
	}
	if body.Status != nil {
		status := domain.AssessmentStatus(*body.Status)
		if !status.Valid() {
			writeErr(w, http.StatusBadRequest, "", "invalid status value provided")
			return
		}
		input.Status = &status
	}
	result, err := h.update.Execute(r.Context(), input)
	if err != nil {
		if err == domerrors.ErrNotFound {
			writeDomainErr(w, err)
			return
		}
		h.log.Error().Err(err).Msg("assessment update failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if result.Assessment.Status == domain.AssessmentCompleted {
		middleware.RecordAssessmentCompleted()
	}
	if result.RiskChanged {
		middleware.RecordRiskReclassification(string(result.NewRiskLevel))
	}
	writeJSON(w, http.StatusOK, toAssessmentResponse(result.Assessment))
}

func parseAssessmentID(w http.ResponseWriter, r *http.Request) (domain.AssessmentID, bool) {
	raw := chi.URLParam(r, "assessmentID")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid assessment id")
		return domain.AssessmentID{}, false
	}
	return domain.NewAssessmentID(id), true
}
