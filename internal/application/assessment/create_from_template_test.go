package assessment

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
	byID  map[domain.TemplateID]*domain.AssessmentTemplate
	orgID domain.OrganizationID
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, orgID domain.OrganizationID, id domain.TemplateID) (*domain.AssessmentTemplate, error) {
	if orgID != f.orgID {
		return nil, nil
	}
	return f.byID[id], nil
}

type creatingAssessmentRepo struct {
	ports.AssessmentRepository
	created []*domain.Assessment
}

func (f *creatingAssessmentRepo) Create(_ context.Context, a *domain.Assessment) error {
	f.created = append(f.created, a)
	return nil
}

func TestCreateFromTemplateStartsBlank(t *testing.T) {
	orgID := domain.NewOrganizationID(uuid.New())
	asset := &domain.Asset{ID: domain.NewAssetID(uuid.New()), OrganizationID: orgID, Name: "Support Chatbot"}
	tmpl := &domain.AssessmentTemplate{
		ID:             domain.NewTemplateID(uuid.New()),
		OrganizationID: orgID,
		Name:           "Bias Review",
		Questionnaire: domain.Questionnaire{
			Title: "Bias Review",
			Sections: []domain.Section{{
				ID: "s1",
				Questions: []domain.Question{
					{ID: "q1", Text: "Was the model evaluated for bias?", Answer: "stale answer", Completed: true},
				},
			}},
		},
	}

	assessments := &creatingAssessmentRepo{}
	uc := NewCreateFromTemplate(
		assessments,
		&fakeAssetRepo{byID: map[domain.AssetID]*domain.Asset{asset.ID: asset}, orgID: orgID},
		&fakeTemplateRepo{byID: map[domain.TemplateID]*domain.AssessmentTemplate{tmpl.ID: tmpl}, orgID: orgID},
	)

	a, err := uc.Execute(context.Background(), CreateFromTemplateInput{
		Scope:      domain.Scope{UserID: domain.NewUserID(uuid.New()), OrganizationID: orgID, Role: domain.RoleAdmin},
		AssetID:    asset.ID,
		TemplateID: tmpl.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bias Review", a.Name)
	assert.Equal(t, domain.AssessmentNotStarted, a.Status)
	assert.Equal(t, asset.ID, a.AssetID)
	assert.Nil(t, a.CalculatedRiskScore)
	q := a.Questionnaire.Sections[0].Questions[0]
	assert.Empty(t, q.Answer)
	assert.False(t, q.Completed)
	require.Len(t, assessments.created, 1)
}

func TestCreateFromTemplateMissingTemplate(t *testing.T) {
	orgID := domain.NewOrganizationID(uuid.New())
	asset := &domain.Asset{ID: domain.NewAssetID(uuid.New()), OrganizationID: orgID}

	uc := NewCreateFromTemplate(
		&creatingAssessmentRepo{},
		&fakeAssetRepo{byID: map[domain.AssetID]*domain.Asset{asset.ID: asset}, orgID: orgID},
		&fakeTemplateRepo{byID: map[domain.TemplateID]*domain.AssessmentTemplate{}, orgID: orgID},
	)

	_, err := uc.Execute(context.Background(), CreateFromTemplateInput{
		Scope:      domain.Scope{UserID: domain.NewUserID(uuid.New()), OrganizationID: orgID},
		AssetID:    asset.ID,
		TemplateID: domain.NewTemplateID(uuid.New()),
	})
	assert.ErrorIs(t, err, domerrors.ErrNotFound)
}
