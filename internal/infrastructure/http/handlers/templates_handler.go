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
	"github.com/NarenDawar/ai-governance-hub/internal/application/template"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http/middleware"
)

type TemplatesHandler struct {
	create         *template.CreateTemplate
	update         *template.UpdateTemplate
	deleteTemplate *template.DeleteTemplate
	templates      ports.TemplateRepository
	validate       *validator.Validate
	log            zerolog.Logger
}

func NewTemplatesHandler(create *template.CreateTemplate, update *template.UpdateTemplate, deleteTemplate *template.DeleteTemplate, templates ports.TemplateRepository, log zerolog.Logger) *TemplatesHandler {
	return &TemplatesHandler{
		create:         create,
		update:         update,
		deleteTemplate: deleteTemplate,
		templates:      templates,
		validate:       validator.New(),
		log:            log,
	}
}

type templateResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description,omitempty"`
	Questionnaire domain.Questionnaire `json:"questionnaire"`
	CreatedAt     string               `json:"createdAt"`
	UpdatedAt     string               `json:"updatedAt"`
}

func toTemplateResponse(t *domain.AssessmentTemplate) templateResponse {
	return templateResponse{
		ID:            t.ID.String(),
		Name:          t.Name,
		Description:   t.Description,
		Questionnaire: t.Questionnaire,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
}

// List handles GET /assessment-templates.
func (h *TemplatesHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	templates, err := h.templates.List(r.Context(), scope.OrganizationID)
	if err != nil {
		h.log.Error().Err(err).Msg("template listing failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	out := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, toTemplateResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /assessment-templates.
func (h *TemplatesHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	var body struct {
		Name          string               `json:"name" validate:"required,max=200"`
		Description   string               `json:"description" validate:"max=2000"`
		Questionnaire domain.Questionnaire `json:"questionnaire"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "template name is required")
		return
	}
	created, err := h.create.Execute(r.Context(), template.CreateTemplateInput{
		Scope:         scope,
		Name:          SanitizeName(body.Name),
		Description:   body.Description,
		Questionnaire: body.Questionnaire,
	})
	if err != nil {
		if err == domerrors.ErrDuplicateName {
			writeErr(w, http.StatusConflict, ErrCodeConflict, "a template with this name already exists")
			return
		}
		h.log.Error().Err(err).Msg("template create failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, toTemplateResponse(created))
}

// Get handles GET /assessment-templates/{templateID}.
func (h *TemplatesHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	templateID, ok := parseTemplateID(w, r)
	if !ok {
		return
	}
	t, err := h.templates.GetByID(r.Context(), scope.OrganizationID, templateID)
	if err != nil {
		h.log.Error().Err(err).Msg("template lookup failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if t == nil {
		writeErr(w, http.StatusNotFound, "", "template not found")
		return
	}
	writeJSON(w, http.StatusOK, toTemplateResponse(t))
}

// Update handles PUT /assessment-templates/{templateID}. The questionnaire is
// replaced wholesale; assessments already instantiated keep their copies.
func (h *TemplatesHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	templateID, ok := parseTemplateID(w, r)
	if !ok {
		return
	}
	var body struct {
		Name          string               `json:"name" validate:"required,max=200"`
		Description   string               `json:"description" validate:"max=2000"`
		Questionnaire domain.Questionnaire `json:"questionnaire"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "template name is required")
		return
	}
	updated, err := h.update.Execute(r.Context(), template.UpdateTemplateInput{
		Scope:         scope,
		TemplateID:    templateID,
		Name:          SanitizeName(body.Name),
		Description:   body.Description,
		Questionnaire: body.Questionnaire,
	})
	if err != nil {
		switch err {
		case domerrors.ErrNotFound:
			writeDomainErr(w, err)
		case domerrors.ErrDuplicateName:
			writeErr(w, http.StatusConflict, ErrCodeConflict, "a template with this name already exists")
		default:
			h.log.Error().Err(err).Msg("template update failed")
			writeErr(w, http.StatusInternalServerError, "", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, toTemplateResponse(updated))
}

// Delete handles DELETE /assessment-templates/{templateID}.
func (h *TemplatesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	templateID, ok := parseTemplateID(w, r)
	if !ok {
		return
	}
	if err := h.deleteTemplate.Execute(r.Context(), template.DeleteTemplateInput{Scope: scope, TemplateID: templateID}); err != nil {
		if err == domerrors.ErrNotFound {
			writeDomainErr(w, err)
			return
		}
		h.log.Error().Err(err).Msg("template delete failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseTemplateID(w http.ResponseWriter, r *http.Request) (domain.TemplateID, bool) {
	raw := chi.URLParam(r, "templateID")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid template id")
		return domain.TemplateID{}, false
	}
	return domain.NewTemplateID(id), true
}
