package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

// TemplateRepository stores questionnaire documents as jsonb.
type TemplateRepository struct {
	store *Store
}

func NewTemplateRepository(store *Store) *TemplateRepository {
	return &TemplateRepository{store: store}
}

const (
	templateColumns = `id, organization_id, name, description, questionnaire, created_at, updated_at`

	createTemplateSQL = `INSERT INTO assessment_templates (id, organization_id, name, description, questionnaire, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	getTemplateSQL    = `SELECT ` + templateColumns + ` FROM assessment_templates WHERE organization_id = $1 AND id = $2`
	listTemplatesSQL  = `SELECT ` + templateColumns + ` FROM assessment_templates WHERE organization_id = $1 ORDER BY created_at DESC`
	updateTemplateSQL = `UPDATE assessment_templates SET name = $3, description = $4, questionnaire = $5, updated_at = $6
		WHERE organization_id = $1 AND id = $2`
	deleteTemplateSQL = `DELETE FROM assessment_templates WHERE organization_id = $1 AND id = $2`
)

func (r *TemplateRepository) Create(ctx context.Context, tmpl *domain.AssessmentTemplate) error {
	doc, err := json.Marshal(tmpl.Questionnaire)
	if err != nil {
		return err
	}
	_, err = r.store.db(ctx).Exec(ctx, createTemplateSQL,
		tmpl.ID.UUID, tmpl.OrganizationID.UUID, tmpl.Name, tmpl.Description,
		doc, tmpl.CreatedAt, tmpl.UpdatedAt)
	if isUniqueViolation(err) {
		return domerrors.ErrDuplicateName
	}
	return err
}

func (r *TemplateRepository) GetByID(ctx context.Context, orgID domain.OrganizationID, templateID domain.TemplateID) (*domain.AssessmentTemplate, error) {
	return scanTemplate(r.store.db(ctx).QueryRow(ctx, getTemplateSQL, orgID.UUID, templateID.UUID))
}

func (r *TemplateRepository) List(ctx context.Context, orgID domain.OrganizationID) ([]*domain.AssessmentTemplate, error) {
	rows, err := r.store.db(ctx).Query(ctx, listTemplatesSQL, orgID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.AssessmentTemplate
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tmpl)
	}
	return out, rows.Err()
}

func (r *TemplateRepository) Update(ctx context.Context, tmpl *domain.AssessmentTemplate) error {
	doc, err := json.Marshal(tmpl.Questionnaire)
	if err != nil {
		return err
	}
	_, err = r.store.db(ctx).Exec(ctx, updateTemplateSQL,
		tmpl.OrganizationID.UUID, tmpl.ID.UUID,
		tmpl.Name, tmpl.Description, doc, tmpl.UpdatedAt)
	if isUniqueViolation(err) {
		return domerrors.ErrDuplicateName
	}
	return err
}

func (r *TemplateRepository) Delete(ctx context.Context, orgID domain.OrganizationID, templateID domain.TemplateID) error {
	_, err := r.store.db(ctx).Exec(ctx, deleteTemplateSQL, orgID.UUID, templateID.UUID)
	return err
}

func scanTemplate(row pgx.Row) (*domain.AssessmentTemplate, error) {
	var (
		id    uuid.UUID
		orgID uuid.UUID
		doc   []byte
		tmpl  domain.AssessmentTemplate
	)
	err := row.Scan(&id, &orgID, &tmpl.Name, &tmpl.Description, &doc, &tmpl.CreatedAt, &tmpl.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(doc, &tmpl.Questionnaire); err != nil {
		return nil, err
	}
	tmpl.ID = domain.NewTemplateID(id)
	tmpl.OrganizationID = domain.NewOrganizationID(orgID)
	return &tmpl, nil
}

var _ ports.TemplateRepository = (*TemplateRepository)(nil)
