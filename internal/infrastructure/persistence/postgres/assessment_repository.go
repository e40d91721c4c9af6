package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
)

// AssessmentRepository scopes every query through the owning asset's
// organization; assessments carry no organization id of their own.
type AssessmentRepository struct {
	store *Store
}

func NewAssessmentRepository(store *Store) *AssessmentRepository {
	return &AssessmentRepository{store: store}
}

const (
	assessmentColumns = `a.id, a.asset_id, a.name, a.status, a.questionnaire, a.calculated_risk_score, a.created_at`

	createAssessmentSQL = `INSERT INTO assessments (id, asset_id, name, status, questionnaire, calculated_risk_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	getAssessmentSQL = `SELECT ` + assessmentColumns + ` FROM assessments a
		JOIN assets s ON s.id = a.asset_id
		WHERE s.organization_id = $1 AND a.id = $2`
	listAssessmentsByAssetSQL = `SELECT ` + assessmentColumns + ` FROM assessments a
		JOIN assets s ON s.id = a.asset_id
		WHERE s.organization_id = $1 AND a.asset_id = $2
		ORDER BY a.created_at DESC`
	updateAssessmentSQL         = `UPDATE assessments SET name = $2, status = $3, questionnaire = $4, calculated_risk_score = $5 WHERE id = $1`
	countAssessmentsByStatusSQL = `SELECT a.status, COUNT(*) FROM assessments a
		JOIN assets s ON s.id = a.asset_id
		WHERE s.organization_id = $1
		GROUP BY a.status`
)

func (r *AssessmentRepository) Create(ctx context.Context, a *domain.Assessment) error {
	doc, err := json.Marshal(a.Questionnaire)
	if err != nil {
		return err
	}
	_, err = r.store.db(ctx).Exec(ctx, createAssessmentSQL,
		a.ID.UUID, a.AssetID.UUID, a.Name, string(a.Status), doc, a.CalculatedRiskScore, a.CreatedAt)
	return err
}

func (r *AssessmentRepository) GetByID(ctx context.Context, orgID domain.OrganizationID, assessmentID domain.AssessmentID) (*domain.Assessment, error) {
	return scanAssessment(r.store.db(ctx).QueryRow(ctx, getAssessmentSQL, orgID.UUID, assessmentID.UUID))
}

func (r *AssessmentRepository) ListByAsset(ctx context.Context, orgID domain.OrganizationID, assetID domain.AssetID) ([]*domain.Assessment, error) {
	rows, err := r.store.db(ctx).Query(ctx, listAssessmentsByAssetSQL, orgID.UUID, assetID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AssessmentRepository) Update(ctx context.Context, a *domain.Assessment) error {
	doc, err := json.Marshal(a.Questionnaire)
	if err != nil {
		return err
	}
	_, err = r.store.db(ctx).Exec(ctx, updateAssessmentSQL,
		a.ID.UUID, a.Name, string(a.Status), doc, a.CalculatedRiskScore)
	return err
}

func (r *AssessmentRepository) CountByStatus(ctx context.Context, orgID domain.OrganizationID) (map[domain.AssessmentStatus]int, error) {
	rows, err := r.store.db(ctx).Query(ctx, countAssessmentsByStatusSQL, orgID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[domain.AssessmentStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[domain.AssessmentStatus(status)] = count
	}
	return out, rows.Err()
}

func scanAssessment(row pgx.Row) (*domain.Assessment, error) {
	var (
		id      uuid.UUID
		assetID uuid.UUID
		status  string
		doc     []byte
		score   *int
		a       domain.Assessment
	)
	err := row.Scan(&id, &assetID, &a.Name, &status, &doc, &score, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(doc, &a.Questionnaire); err != nil {
		return nil, err
	}
	a.ID = domain.NewAssessmentID(id)
	a.AssetID = domain.NewAssetID(assetID)
	a.Status = domain.AssessmentStatus(status)
	a.CalculatedRiskScore = score
	return &a, nil
}

var _ ports.AssessmentRepository = (*AssessmentRepository)(nil)
