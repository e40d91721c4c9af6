package assessment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/application/audit"
	"github.com/NarenDawar/ai-governance-hub/internal/application/notify"
	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

// UpdateAssessmentInput carries the fields of a partial update. Nil pointers
// leave the stored value untouched.
type UpdateAssessmentInput struct {
	Scope         domain.Scope
	AssessmentID  domain.AssessmentID
	Name          *string
	Status        *domain.AssessmentStatus
	Questionnaire *domain.Questionnaire
	Score         *int
}

type UpdateAssessmentResult struct {
	Assessment   *domain.Assessment
	RiskChanged  bool
	NewRiskLevel domain.RiskLevel
}

// UpdateAssessment applies a partial update to an assessment and, when the
// update completes it with a score, reclassifies the owning asset's risk
// level. The assessment and asset writes share one transaction; the audit
// trail, admin notifications and alert enqueue happen after commit and never
// fail the request.
type UpdateAssessment struct {
	assessments ports.AssessmentRepository
	assets      ports.AssetRepository
	tx          ports.TxManager
	recorder    *audit.Recorder
	fanout      *notify.AdminFanout
	enqueuer    ports.TaskEnqueuer
	log         zerolog.Logger
}

func NewUpdateAssessment(
	assessments ports.AssessmentRepository,
	assets ports.AssetRepository,
	tx ports.TxManager,
	recorder *audit.Recorder,
	fanout *notify.AdminFanout,
	enqueuer ports.TaskEnqueuer,
	log zerolog.Logger,
) *UpdateAssessment {
	return &UpdateAssessment{
		assessments: assessments,
		assets:      assets,
		tx:          tx,
		recorder:    recorder,
		fanout:      fanout,
		enqueuer:    enqueuer,
		log:         log,
	}
}

func (uc *UpdateAssessment) Execute(ctx context.Context, input UpdateAssessmentInput) (*UpdateAssessmentResult, error) {
	a, err := uc.assessments.GetByID(ctx, input.Scope.OrganizationID, input.AssessmentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domerrors.ErrNotFound
	}
	asset, err := uc.assets.GetByID(ctx, input.Scope.OrganizationID, a.AssetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domerrors.ErrNotFound
	}

	prevStatus := a.Status

	if input.Name != nil {
		a.Name = *input.Name
	}
	if input.Questionnaire != nil {
		q := input.Questionnaire.Clone()
		q.Normalize()
		a.Questionnaire = q
		// the answers decide the status, not the client
		a.Status = q.DeriveStatus()
	} else if input.Status != nil {
		a.Status = *input.Status
	}
	if input.Score != nil {
		score := *input.Score
		a.CalculatedRiskScore = &score
	}

	// Only this update completing the assessment, or carrying a fresh score,
	// may reclassify the asset. A cosmetic edit of an assessment that
	// completed earlier must not overwrite a manually adjusted risk level.
	completedNow := a.Status == domain.AssessmentCompleted &&
		(prevStatus != domain.AssessmentCompleted || input.Score != nil)

	newLevel := asset.RiskClassification
	riskChanged := false
	if completedNow && a.CalculatedRiskScore != nil {
		newLevel = domain.ClassifyRiskScore(*a.CalculatedRiskScore)
		riskChanged = newLevel != asset.RiskClassification
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.assessments.Update(ctx, a); err != nil {
			return err
		}
		if riskChanged {
			return uc.assets.UpdateRiskClassification(ctx, input.Scope.OrganizationID, asset.ID, newLevel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if a.Status != prevStatus {
		action := domain.ActionAssessmentUpdated
		if a.Status == domain.AssessmentCompleted {
			action = domain.ActionAssessmentCompleted
		}
		details := fmt.Sprintf("Assessment status for %q changed to %s.", a.Name, a.Status)
		uc.recorder.Record(ctx, action, details, &asset.ID, input.Scope.UserID)
	}
	if riskChanged {
		details := fmt.Sprintf("Asset risk level automatically updated to %s based on completed assessment score of %d.", newLevel, *a.CalculatedRiskScore)
		uc.recorder.Record(ctx, domain.ActionAssetUpdated, details, &asset.ID, input.Scope.UserID)
		message := fmt.Sprintf("Risk level for %q has changed to %s.", asset.Name, newLevel)
		uc.fanout.NotifyAdmins(ctx, input.Scope.OrganizationID, message, &asset.ID)
		alert := ports.RiskAlert{
			OrganizationID: input.Scope.OrganizationID.String(),
			AssetID:        asset.ID.String(),
			AssetName:      asset.Name,
			RiskLevel:      string(newLevel),
			Score:          *a.CalculatedRiskScore,
		}
		if err := uc.enqueuer.EnqueueRiskAlert(ctx, alert); err != nil {
			uc.log.Error().Err(err).Str("asset_id", asset.ID.String()).Msg("risk alert enqueue failed")
		}
	}

	return &UpdateAssessmentResult{Assessment: a, RiskChanged: riskChanged, NewRiskLevel: newLevel}, nil
}
