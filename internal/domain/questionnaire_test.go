package domain

import "testing"

func twoQuestionTemplate() Questionnaire {
	return Questionnaire{
		Title: "Model Governance Review",
		Sections: []Section{
			{
				ID:    "s1",
				Title: "Data Handling",
				Questions: []Question{
					{ID: "q1", Text: "Describe the training data sources.", RiskWeight: 40},
					{ID: "q2", Text: "Is personal data processed?", RiskWeight: 60},
				},
			},
		},
	}
}

func TestInstantiateResetsAnswers(t *testing.T) {
	tmpl := twoQuestionTemplate()
	tmpl.Sections[0].Questions[0].Answer = "leftover"
	tmpl.Sections[0].Questions[0].Completed = true

	inst := tmpl.Instantiate()
	for _, s := range inst.Sections {
		for _, q := range s.Questions {
			if q.Answer != "" || q.Completed {
				t.Errorf("question %s not reset: answer=%q completed=%v", q.ID, q.Answer, q.Completed)
			}
		}
	}
	if inst.Sections[0].Questions[0].RiskWeight != 40 {
		t.Error("risk weight should be preserved")
	}
}

func TestInstantiateIsDeepCopy(t *testing.T) {
	tmpl := twoQuestionTemplate()
	inst := tmpl.Instantiate()

	inst.Sections[0].Title = "changed"
	inst.Sections[0].Questions[0].Answer = "we use synthetic data"

	if tmpl.Sections[0].Title != "Data Handling" {
		t.Error("mutating instance changed the template section")
	}
	if tmpl.Sections[0].Questions[0].Answer == "we use synthetic data" {
		t.Error("mutating instance changed the template question")
	}
}

func TestDeriveStatus(t *testing.T) {
	q := twoQuestionTemplate().Instantiate()
	if got := q.DeriveStatus(); got != AssessmentNotStarted {
		t.Errorf("no answers: got %s, want NotStarted", got)
	}

	q.Sections[0].Questions[0].Answer = "documented in the data catalog"
	if got := q.DeriveStatus(); got != AssessmentInProgress {
		t.Errorf("1 of 2 answered: got %s, want InProgress", got)
	}

	q.Sections[0].Questions[1].Answer = "no"
	if got := q.DeriveStatus(); got != AssessmentCompleted {
		t.Errorf("all answered: got %s, want Completed", got)
	}

	// Idempotent: recomputing from an unchanged questionnaire yields the same status.
	if first, second := q.DeriveStatus(), q.DeriveStatus(); first != second {
		t.Errorf("derivation not idempotent: %s then %s", first, second)
	}
}

func TestDeriveStatusIgnoresWhitespaceAnswers(t *testing.T) {
	q := twoQuestionTemplate().Instantiate()
	q.Sections[0].Questions[0].Answer = "   \t"
	if got := q.DeriveStatus(); got != AssessmentNotStarted {
		t.Errorf("whitespace answer counted as answered: got %s", got)
	}
}

func TestDeriveStatusEmptyQuestionnaire(t *testing.T) {
	q := Questionnaire{Title: "empty"}
	if got := q.DeriveStatus(); got != AssessmentNotStarted {
		t.Errorf("empty questionnaire: got %s, want NotStarted", got)
	}
}

func TestNormalize(t *testing.T) {
	q := twoQuestionTemplate().Instantiate()
	q.Sections[0].Questions[0].Answer = "yes"
	q.Sections[0].Questions[1].Completed = true // stale flag with no answer

	q.Normalize()

	if !q.Sections[0].Questions[0].Completed {
		t.Error("answered question should be completed")
	}
	if q.Sections[0].Questions[1].Completed {
		t.Error("unanswered question should not stay completed")
	}
}

func TestProgress(t *testing.T) {
	q := twoQuestionTemplate().Instantiate()
	q.Sections[0].Questions[0].Answer = "yes"
	answered, total := q.Progress()
	if answered != 1 || total != 2 {
		t.Errorf("got answered=%d total=%d, want 1 and 2", answered, total)
	}
}
