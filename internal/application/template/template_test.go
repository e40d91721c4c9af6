package template

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type fakeTemplateRepo struct {
	ports.TemplateRepository
	byID    map[domain.TemplateID]*domain.AssessmentTemplate
	deleted []domain.TemplateID
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{byID: map[domain.TemplateID]*domain.AssessmentTemplate{}}
}

func (f *fakeTemplateRepo) Create(_ context.Context, t *domain.AssessmentTemplate) error {
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, orgID domain.OrganizationID, id domain.TemplateID) (*domain.AssessmentTemplate, error) {
	t, ok := f.byID[id]
	if !ok || t.OrganizationID != orgID {
		return nil, nil
	}
	return t, nil
}

func (f *fakeTemplateRepo) Update(_ context.Context, t *domain.AssessmentTemplate) error {
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTemplateRepo) Delete(_ context.Context, _ domain.OrganizationID, id domain.TemplateID) error {
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func testScope() domain.Scope {
	return domain.Scope{
		UserID:         domain.NewUserID(uuid.New()),
		OrganizationID: domain.NewOrganizationID(uuid.New()),
		Role:           domain.RoleAdmin,
	}
}

func sampleQuestionnaire() domain.Questionnaire {
	return domain.Questionnaire{
		Title: "Data Handling Review",
		Sections: []domain.Section{{
			ID:    "s1",
			Title: "Data",
			Questions: []domain.Question{
				{ID: "q1", Text: "Does the system process personal data?", RiskWeight: 40},
			},
		}},
	}
}

func TestUpdateTemplateDoesNotAliasQuestionnaire(t *testing.T) {
	repo := newFakeTemplateRepo()
	scope := testScope()

	created, err := NewCreateTemplate(repo).Execute(context.Background(), CreateTemplateInput{
		Scope:         scope,
		Name:          "Baseline",
		Questionnaire: sampleQuestionnaire(),
	})
	require.NoError(t, err)

	q := sampleQuestionnaire()
	_, err = NewUpdateTemplate(repo).Execute(context.Background(), UpdateTemplateInput{
		Scope:         scope,
		TemplateID:    created.ID,
		Name:          "Baseline v2",
		Questionnaire: q,
	})
	require.NoError(t, err)

	// Callers mutating their copy after the update must not leak into the
	// stored template.
	q.Sections[0].Questions[0].Text = "mutated"
	stored := repo.byID[created.ID]
	assert.Equal(t, "Baseline v2", stored.Name)
	assert.Equal(t, "Does the system process personal data?", stored.Questionnaire.Sections[0].Questions[0].Text)
}

func TestUpdateTemplateCrossTenantNotFound(t *testing.T) {
	repo := newFakeTemplateRepo()

	created, err := NewCreateTemplate(repo).Execute(context.Background(), CreateTemplateInput{
		Scope:         testScope(),
		Name:          "Baseline",
		Questionnaire: sampleQuestionnaire(),
	})
	require.NoError(t, err)

	_, err = NewUpdateTemplate(repo).Execute(context.Background(), UpdateTemplateInput{
		Scope:      testScope(),
		TemplateID: created.ID,
		Name:       "hijack",
	})
	assert.ErrorIs(t, err, domerrors.ErrNotFound)
}

func TestDeleteTemplate(t *testing.T) {
	repo := newFakeTemplateRepo()
	scope := testScope()

	created, err := NewCreateTemplate(repo).Execute(context.Background(), CreateTemplateInput{
		Scope:         scope,
		Name:          "Baseline",
		Questionnaire: sampleQuestionnaire(),
	})
	require.NoError(t, err)

	require.NoError(t, NewDeleteTemplate(repo).Execute(context.Background(), DeleteTemplateInput{Scope: scope, TemplateID: created.ID}))
	assert.Len(t, repo.deleted, 1)

	err = NewDeleteTemplate(repo).Execute(context.Background(), DeleteTemplateInput{Scope: scope, TemplateID: created.ID})
	assert.ErrorIs(t, err, domerrors.ErrNotFound)
}
