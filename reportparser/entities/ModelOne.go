package entities

import "encoding/json"

// Known model-one section keys. Sections carrying these keys get dedicated
// layouts in the report; anything else falls through to the generic tree
// renderer.
const (
	SectionTPR               = "TPR"
	SectionPhysicalExam      = "PhysicalExamFindings"
	SectionAssessmentAndPlan = "AssessmentAndPlan"
)

// ModelOne is the first medical-note schema the scribe emits. Only the
// sections with structure worth typing are declared; the rest of the
// document is kept raw so new sections still render.
type ModelOne struct {
	TPR                  map[string]Vital         `json:"TPR,omitempty"`
	PhysicalExamFindings map[string][]ExamFinding `json:"PhysicalExamFindings,omitempty"`
	AssessmentAndPlan    []ProblemBlock           `json:"AssessmentAndPlan,omitempty"`

	// Extra holds every top-level key not covered above, in raw form.
	Extra map[string]json.RawMessage `json:"-"`
}

// Vital is a single TPR (temperature/pulse/respiration) style measurement.
// Value is any JSON scalar: exports are inconsistent about quoting numbers.
type Vital struct {
	Value   any    `json:"Value"`
	Unit    string `json:"Unit,omitempty"`
	Comment string `json:"Comment,omitempty"`
}

// ExamFinding is one observation within a body system.
type ExamFinding struct {
	StructureOrCharacteristic string `json:"StructureOrCharacteristic"`
	Finding                   string `json:"Finding"`
}

// ProblemBlock is one assessment-and-plan entry.
type ProblemBlock struct {
	ProblemsOrConcerns []string          `json:"ProblemsOrConcerns,omitempty"`
	Assessment         Assessment        `json:"Assessment,omitempty"`
	Plan               map[string]string `json:"Plan,omitempty"`
}

type Assessment struct {
	Assessment string `json:"Assessment,omitempty"`
}

// UnmarshalJSON decodes the typed sections and stashes every other
// top-level key into Extra.
func (m *ModelOne) UnmarshalJSON(data []byte) error {
	type alias ModelOne
	var typed alias
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	delete(all, SectionTPR)
	delete(all, SectionPhysicalExam)
	delete(all, SectionAssessmentAndPlan)

	*m = ModelOne(typed)
	if len(all) > 0 {
		m.Extra = all
	}
	return nil
}
