package domain

import "strings"

// Questionnaire is the document shared by templates and assessments. Templates
// carry a risk weight per question; assessments additionally carry the answer
// and completion flag, synthesized at instantiation.
type Questionnaire struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section groups related questions.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Question is a single questionnaire item.
type Question struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Answer     string `json:"answer"`
	Completed  bool   `json:"completed"`
	RiskWeight int    `json:"riskScore,omitempty"`
}

// Clone returns a deep copy. Mutating the copy never touches the receiver.
func (q Questionnaire) Clone() Questionnaire {
	out := Questionnaire{Title: q.Title}
	if q.Sections == nil {
		return out
	}
	out.Sections = make([]Section, len(q.Sections))
	for i, s := range q.Sections {
		cs := Section{ID: s.ID, Title: s.Title}
		if s.Questions != nil {
			cs.Questions = make([]Question, len(s.Questions))
			copy(cs.Questions, s.Questions)
		}
		out.Sections[i] = cs
	}
	return out
}

// Instantiate returns a deep copy prepared for a new assessment: every answer
// reset to empty and every completed flag cleared, risk weights preserved.
func (q Questionnaire) Instantiate() Questionnaire {
	out := q.Clone()
	for i := range out.Sections {
		for j := range out.Sections[i].Questions {
			out.Sections[i].Questions[j].Answer = ""
			out.Sections[i].Questions[j].Completed = false
		}
	}
	return out
}

// Progress returns the answered and total question counts. A question counts
// as answered when its trimmed answer text is non-empty.
func (q Questionnaire) Progress() (answered, total int) {
	for _, s := range q.Sections {
		for _, qu := range s.Questions {
			total++
			if strings.TrimSpace(qu.Answer) != "" {
				answered++
			}
		}
	}
	return answered, total
}

// Normalize recomputes each question's completed flag from its answer text.
// Run at the system boundary so the stored flag can be trusted downstream.
func (q *Questionnaire) Normalize() {
	for i := range q.Sections {
		for j := range q.Sections[i].Questions {
			qu := &q.Sections[i].Questions[j]
			qu.Completed = strings.TrimSpace(qu.Answer) != ""
		}
	}
}

// DeriveStatus computes the assessment status from answer completeness.
func (q Questionnaire) DeriveStatus() AssessmentStatus {
	answered, total := q.Progress()
	switch {
	case answered == 0:
		return AssessmentNotStarted
	case answered < total:
		return AssessmentInProgress
	default:
		return AssessmentCompleted
	}
}
