// Package assessment contains the assessment lifecycle use-cases, including
// the risk reclassification cascade that runs when an assessment completes.
package assessment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type CreateFromTemplateInput struct {
	Scope      domain.Scope
	AssetID    domain.AssetID
	TemplateID domain.TemplateID
	Name       string
}

type CreateFromTemplate struct {
	assessments ports.AssessmentRepository
	assets      ports.AssetRepository
	templates   ports.TemplateRepository
}

func NewCreateFromTemplate(assessments ports.AssessmentRepository, assets ports.AssetRepository, templates ports.TemplateRepository) *CreateFromTemplate {
	return &CreateFromTemplate{assessments: assessments, assets: assets, templates: templates}
}

// Execute instantiates a template against an asset. The new assessment starts
// with every answer blank regardless of what the template document holds.
func (uc *CreateFromTemplate) Execute(ctx context.Context, input CreateFromTemplateInput) (*domain.Assessment, error) {
	asset, err := uc.assets.GetByID(ctx, input.Scope.OrganizationID, input.AssetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domerrors.ErrNotFound
	}
	tmpl, err := uc.templates.GetByID(ctx, input.Scope.OrganizationID, input.TemplateID)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, domerrors.ErrNotFound
	}

	name := input.Name
	if name == "" {
		name = tmpl.Name
	}
	a := &domain.Assessment{
		ID:            domain.NewAssessmentID(uuid.New()),
		AssetID:       asset.ID,
		Name:          name,
		Status:        domain.AssessmentNotStarted,
		Questionnaire: tmpl.Questionnaire.Instantiate(),
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.assessments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
