package assessment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NarenDawar/ai-governance-hub/internal/application/audit"
	"github.com/NarenDawar/ai-governance-hub/internal/application/notify"
	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

// Fakes embed the port interface so only the methods a test exercises need
// implementing; an unexpected call panics.

type fakeAssessmentRepo struct {
	ports.AssessmentRepository
	byID    map[domain.AssessmentID]*domain.Assessment
	orgID   domain.OrganizationID
	updated []*domain.Assessment
}

func (f *fakeAssessmentRepo) GetByID(_ context.Context, orgID domain.OrganizationID, id domain.AssessmentID) (*domain.Assessment, error) {
	if orgID != f.orgID {
		return nil, nil
	}
	return f.byID[id], nil
}

func (f *fakeAssessmentRepo) Update(_ context.Context, a *domain.Assessment) error {
	f.updated = append(f.updated, a)
	return nil
}

type fakeAssetRepo struct {
	ports.AssetRepository
	byID          map[domain.AssetID]*domain.Asset
	orgID         domain.OrganizationID
	reclassified  []domain.RiskLevel
	reclassifyIDs []domain.AssetID
}

func (f *fakeAssetRepo) GetByID(_ context.Context, orgID domain.OrganizationID, id domain.AssetID) (*domain.Asset, error) {
	if orgID != f.orgID {
		return nil, nil
	}
	return f.byID[id], nil
}

func (f *fakeAssetRepo) UpdateRiskClassification(_ context.Context, _ domain.OrganizationID, id domain.AssetID, level domain.RiskLevel) error {
	f.reclassified = append(f.reclassified, level)
	f.reclassifyIDs = append(f.reclassifyIDs, id)
	return nil
}

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAuditRepo struct {
	ports.AuditLogRepository
	entries []*domain.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, e *domain.AuditLog) error {
	f.entries = append(f.entries, e)
	return nil
}

type fakeUserRepo struct {
	ports.UserRepository
	admins []*domain.User
}

func (f *fakeUserRepo) ListAdmins(_ context.Context, _ domain.OrganizationID) ([]*domain.User, error) {
	return f.admins, nil
}

type fakeNotificationRepo struct {
	ports.NotificationRepository
	created []*domain.Notification
}

func (f *fakeNotificationRepo) CreateBatch(_ context.Context, ns []*domain.Notification) error {
	f.created = append(f.created, ns...)
	return nil
}

type fakeEnqueuer struct {
	alerts []ports.RiskAlert
}

func (f *fakeEnqueuer) EnqueueRiskAlert(_ context.Context, a ports.RiskAlert) error {
	f.alerts = append(f.alerts, a)
	return nil
}

type cascadeFixture struct {
	uc            *UpdateAssessment
	assessments   *fakeAssessmentRepo
	assets        *fakeAssetRepo
	auditRepo     *fakeAuditRepo
	notifications *fakeNotificationRepo
	enqueuer      *fakeEnqueuer
	scope         domain.Scope
	assessment    *domain.Assessment
	asset         *domain.Asset
}

func newCascadeFixture(t *testing.T, adminCount int) *cascadeFixture {
	t.Helper()
	orgID := domain.NewOrganizationID(uuid.New())
	actor := domain.NewUserID(uuid.New())
	asset := &domain.Asset{
		ID:                 domain.NewAssetID(uuid.New()),
		OrganizationID:     orgID,
		Name:               "Churn Predictor",
		Status:             domain.AssetActive,
		RiskClassification: domain.RiskMedium,
	}
	assessment := &domain.Assessment{
		ID:      domain.NewAssessmentID(uuid.New()),
		AssetID: asset.ID,
		Name:    "EU AI Act Readiness",
		Status:  domain.AssessmentInProgress,
		Questionnaire: domain.Questionnaire{
			Title: "EU AI Act Readiness",
			Sections: []domain.Section{{
				ID:    "s1",
				Title: "Data Governance",
				Questions: []domain.Question{
					{ID: "q1", Text: "Is training data documented?", RiskWeight: 40},
					{ID: "q2", Text: "Is there human oversight?", RiskWeight: 40},
				},
			}},
		},
		CreatedAt: time.Now().UTC(),
	}

	admins := make([]*domain.User, 0, adminCount)
	for i := 0; i < adminCount; i++ {
		admins = append(admins, &domain.User{ID: domain.NewUserID(uuid.New()), Role: domain.RoleAdmin})
	}

	assessments := &fakeAssessmentRepo{
		byID:  map[domain.AssessmentID]*domain.Assessment{assessment.ID: assessment},
		orgID: orgID,
	}
	assets := &fakeAssetRepo{
		byID:  map[domain.AssetID]*domain.Asset{asset.ID: asset},
		orgID: orgID,
	}
	auditRepo := &fakeAuditRepo{}
	notifications := &fakeNotificationRepo{}
	enqueuer := &fakeEnqueuer{}
	log := zerolog.Nop()

	uc := NewUpdateAssessment(
		assessments,
		assets,
		fakeTx{},
		audit.NewRecorder(auditRepo, log),
		notify.NewAdminFanout(&fakeUserRepo{admins: admins}, notifications, log),
		enqueuer,
		log,
	)
	return &cascadeFixture{
		uc:            uc,
		assessments:   assessments,
		assets:        assets,
		auditRepo:     auditRepo,
		notifications: notifications,
		enqueuer:      enqueuer,
		scope:         domain.Scope{UserID: actor, OrganizationID: orgID, Role: domain.RoleAdmin},
		assessment:    assessment,
		asset:         asset,
	}
}

func answered(q domain.Questionnaire, answers ...string) *domain.Questionnaire {
	out := q.Clone()
	i := 0
	for si := range out.Sections {
		for qi := range out.Sections[si].Questions {
			if i < len(answers) {
				out.Sections[si].Questions[qi].Answer = answers[i]
			}
			i++
		}
	}
	return &out
}

func TestUpdateAssessmentCompletionReclassifiesAsset(t *testing.T) {
	fx := newCascadeFixture(t, 2)
	score := 80

	res, err := fx.uc.Execute(context.Background(), UpdateAssessmentInput{
		Scope:         fx.scope,
		AssessmentID:  fx.assessment.ID,
		Questionnaire: answered(fx.assessment.Questionnaire, "Yes, in the model card.", "Yes"),
		Score:         &score,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AssessmentCompleted, res.Assessment.Status)
	assert.True(t, res.RiskChanged)
	assert.Equal(t, domain.RiskSevere, res.NewRiskLevel)

	require.Len(t, fx.assets.reclassified, 1)
	assert.Equal(t, domain.RiskSevere, fx.assets.reclassified[0])
	assert.Equal(t, fx.asset.ID, fx.assets.reclassifyIDs[0])

	require.Len(t, fx.auditRepo.entries, 2)
	assert.Equal(t, domain.ActionAssessmentCompleted, fx.auditRepo.entries[0].Action)
	assert.Equal(t, `Assessment status for "EU AI Act Readiness" changed to Completed.`, fx.auditRepo.entries[0].Details)
	assert.Equal(t, domain.ActionAssetUpdated, fx.auditRepo.entries[1].Action)
	assert.Equal(t, "Asset risk level automatically updated to Severe based on completed assessment score of 80.", fx.auditRepo.entries[1].Details)
	assert.Equal(t, fx.scope.UserID, fx.auditRepo.entries[1].UserID)

	require.Len(t, fx.notifications.created, 2)
	for _, n := range fx.notifications.created {
		assert.Equal(t, `Risk level for "Churn Predictor" has changed to Severe.`, n.Message)
		assert.False(t, n.IsRead)
		require.NotNil(t, n.AssetID)
		assert.Equal(t, fx.asset.ID, *n.AssetID)
	}

	require.Len(t, fx.enqueuer.alerts, 1)
	assert.Equal(t, fx.asset.ID.String(), fx.enqueuer.alerts[0].AssetID)
	assert.Equal(t, "Severe", fx.enqueuer.alerts[0].RiskLevel)
	assert.Equal(t, 80, fx.enqueuer.alerts[0].Score)
}

func TestUpdateAssessmentUnchangedTierSkipsCascade(t *testing.T) {
	fx := newCascadeFixture(t, 2)
	score := 49 // still Medium

	res, err := fx.uc.Execute(context.Background(), UpdateAssessmentInput{
		Scope:         fx.scope,
		AssessmentID:  fx.assessment.ID,
		Questionnaire: answered(fx.assessment.Questionnaire, "Yes", "Partially"),
		Score:         &score,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AssessmentCompleted, res.Assessment.Status)
	assert.False(t, res.RiskChanged)
	assert.Empty(t, fx.assets.reclassified)

	require.Len(t, fx.auditRepo.entries, 1)
	assert.Equal(t, domain.ActionAssessmentCompleted, fx.auditRepo.entries[0].Action)
	assert.Empty(t, fx.notifications.created)
	assert.Empty(t, fx.enqueuer.alerts)
}

func TestUpdateAssessmentStatusDerivedFromAnswers(t *testing.T) {
	fx := newCascadeFixture(t, 1)
	submitted := domain.AssessmentCompleted

	res, err := fx.uc.Execute(context.Background(), UpdateAssessmentInput{
		Scope:         fx.scope,
		AssessmentID:  fx.assessment.ID,
		Status:        &submitted, // ignored: the questionnaire decides
		Questionnaire: answered(fx.assessment.Questionnaire, "Yes"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AssessmentInProgress, res.Assessment.Status)
	assert.False(t, res.RiskChanged)
	require.Len(t, fx.auditRepo.entries, 1)
	assert.Equal(t, domain.ActionAssessmentUpdated, fx.auditRepo.entries[0].Action)
	assert.Equal(t, `Assessment status for "EU AI Act Readiness" changed to InProgress.`, fx.auditRepo.entries[0].Details)
}

func TestUpdateAssessmentArchiveWithoutQuestionnaire(t *testing.T) {
	fx := newCascadeFixture(t, 1)
	archived := domain.AssessmentArchived

	res, err := fx.uc.Execute(context.Background(), UpdateAssessmentInput{
		Scope:        fx.scope,
		AssessmentID: fx.assessment.ID,
		Status:       &archived,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AssessmentArchived, res.Assessment.Status)
	assert.False(t, res.RiskChanged)
	require.Len(t, fx.auditRepo.entries, 1)
	assert.Equal(t, domain.ActionAssessmentUpdated, fx.auditRepo.entries[0].Action)
}

func TestUpdateAssessmentRenameAfterCompletionLeavesRiskAlone(t *testing.T) {
	fx := newCascadeFixture(t, 2)

	// Completed earlier with a Severe score; an admin has since dialed the
	// asset back down to Medium by hand.
	stored := 80
	fx.assessment.Status = domain.AssessmentCompleted
	fx.assessment.CalculatedRiskScore = &stored

	name := "EU AI Act Readiness (2026)"
	res, err := fx.uc.Execute(context.Background(), UpdateAssessmentInput{
		Scope:        fx.scope,
		AssessmentID: fx.assessment.ID,
		Name:         &name,
	})
	require.NoError(t, err)

	assert.Equal(t, name, res.Assessment.Name)
	assert.False(t, res.RiskChanged)
	assert.Equal(t, domain.RiskMedium, res.NewRiskLevel)
	assert.Empty(t, fx.assets.reclassified)
	assert.Empty(t, fx.auditRepo.entries)
	assert.Empty(t, fx.notifications.created)
	assert.Empty(t, fx.enqueuer.alerts)

	// Resubmitting a score still reclassifies.
	rescored := 80
	res, err = fx.uc.Execute(context.Background(), UpdateAssessmentInput{
		Scope:        fx.scope,
		AssessmentID: fx.assessment.ID,
		Score:        &rescored,
	})
	require.NoError(t, err)
	assert.True(t, res.RiskChanged)
	assert.Equal(t, domain.RiskSevere, res.NewRiskLevel)
}

func TestUpdateAssessmentCrossTenantNotFound(t *testing.T) {
	fx := newCascadeFixture(t, 1)
	otherOrg := domain.Scope{
		UserID:         domain.NewUserID(uuid.New()),
		OrganizationID: domain.NewOrganizationID(uuid.New()),
		Role:           domain.RoleAdmin,
	}
	name := "renamed"

	_, err := fx.uc.Execute(context.Background(), UpdateAssessmentInput{
		Scope:        otherOrg,
		AssessmentID: fx.assessment.ID,
		Name:         &name,
	})
	assert.ErrorIs(t, err, domerrors.ErrNotFound)
	assert.Empty(t, fx.assessments.updated)
	assert.Empty(t, fx.auditRepo.entries)
}

func TestUpdateAssessmentNoStatusChangeNoAudit(t *testing.T) {
	fx := newCascadeFixture(t, 1)
	name := "Q3 Review"

	res, err := fx.uc.Execute(context.Background(), UpdateAssessmentInput{
		Scope:        fx.scope,
		AssessmentID: fx.assessment.ID,
		Name:         &name,
	})
	require.NoError(t, err)

	assert.Equal(t, "Q3 Review", res.Assessment.Name)
	assert.Equal(t, domain.AssessmentInProgress, res.Assessment.Status)
	assert.Empty(t, fx.auditRepo.entries)
	require.Len(t, fx.assessments.updated, 1)
}
