// Package template contains the assessment template use-cases. Templates are
// tenant-owned questionnaire definitions; assessments copy the questionnaire
// by value at instantiation, so template edits never rewrite history.
package template

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type CreateTemplateInput struct {
	Scope         domain.Scope
	Name          string
	Description   string
	Questionnaire domain.Questionnaire
}

type CreateTemplate struct {
	templates ports.TemplateRepository
}

func NewCreateTemplate(templates ports.TemplateRepository) *CreateTemplate {
	return &CreateTemplate{templates: templates}
}

func (uc *CreateTemplate) Execute(ctx context.Context, input CreateTemplateInput) (*domain.AssessmentTemplate, error) {
	now := time.Now().UTC()
	t := &domain.AssessmentTemplate{
		ID:             domain.NewTemplateID(uuid.New()),
		OrganizationID: input.Scope.OrganizationID,
		Name:           input.Name,
		Description:    input.Description,
		Questionnaire:  input.Questionnaire.Clone(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

type UpdateTemplateInput struct {
	Scope         domain.Scope
	TemplateID    domain.TemplateID
	Name          string
	Description   string
	Questionnaire domain.Questionnaire
}

type UpdateTemplate struct {
	templates ports.TemplateRepository
}

func NewUpdateTemplate(templates ports.TemplateRepository) *UpdateTemplate {
	return &UpdateTemplate{templates: templates}
}

// Execute replaces the template's name, description and questionnaire.
func (uc *UpdateTemplate) Execute(ctx context.Context, input UpdateTemplateInput) (*domain.AssessmentTemplate, error) {
	t, err := uc.templates.GetByID(ctx, input.Scope.OrganizationID, input.TemplateID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrNotFound
	}
	t.Name = input.Name
	t.Description = input.Description
	t.Questionnaire = input.Questionnaire.Clone()
	t.UpdatedAt = time.Now().UTC()
	if err := uc.templates.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

type DeleteTemplateInput struct {
	Scope      domain.Scope
	TemplateID domain.TemplateID
}

type DeleteTemplate struct {
	templates ports.TemplateRepository
}

func NewDeleteTemplate(templates ports.TemplateRepository) *DeleteTemplate {
	return &DeleteTemplate{templates: templates}
}

// Execute removes a template. Assessments created from it are untouched.
func (uc *DeleteTemplate) Execute(ctx context.Context, input DeleteTemplateInput) error {
	t, err := uc.templates.GetByID(ctx, input.Scope.OrganizationID, input.TemplateID)
	if err != nil {
		return err
	}
	if t == nil {
		return domerrors.ErrNotFound
	}
	return uc.templates.Delete(ctx, input.Scope.OrganizationID, input.TemplateID)
}
