package domain

import "time"

// AssessmentStatus is the lifecycle status of an assessment.
type AssessmentStatus string

const (
	AssessmentNotStarted AssessmentStatus = "NotStarted"
	AssessmentInProgress AssessmentStatus = "InProgress"
	AssessmentCompleted  AssessmentStatus = "Completed"
	AssessmentArchived   AssessmentStatus = "Archived"
)

// Valid reports whether s is one of the known assessment statuses.
func (s AssessmentStatus) Valid() bool {
	switch s {
	case AssessmentNotStarted, AssessmentInProgress, AssessmentCompleted, AssessmentArchived:
		return true
	}
	return false
}

// AssessmentTemplate is a reusable, tenant-owned questionnaire definition.
// Editing a template never changes assessments already instantiated from it;
// the questionnaire is copied by value at instantiation.
type AssessmentTemplate struct {
	ID             TemplateID
	OrganizationID OrganizationID
	Name           string
	Description    string
	Questionnaire  Questionnaire
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Assessment is an instantiated, answerable copy of a template bound to one
// asset. Its organization is determined transitively through the asset; all
// reads and writes are scoped through that chain.
type Assessment struct {
	ID                  AssessmentID
	AssetID             AssetID
	Name                string
	Status              AssessmentStatus
	Questionnaire       Questionnaire
	CalculatedRiskScore *int
	CreatedAt           time.Time
}
