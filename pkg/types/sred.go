// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared value types for the SR&ED transcript
// engine: the extraction output model, persisted runs, configuration, and
// the error taxonomy.
package types

// Citation ties a claim to a direct transcript quote and its location
// (speaker name, timestamp, paragraph — whatever the transcript offers).
type Citation struct {
	Quote    string `json:"quote" yaml:"quote"`
	Location string `json:"location" yaml:"location"`
}

// Confidence grades a candidate project grouping by signal strength.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// CandidateProject is a proposed grouping of SR&ED effort, worded in the
// client's own language.
type CandidateProject struct {
	Label       string     `json:"label" yaml:"label"`
	Description string     `json:"description" yaml:"description"`
	Signals     string     `json:"signals" yaml:"signals"`
	Confidence  Confidence `json:"confidence" yaml:"confidence"`
	Citations   []Citation `json:"citations" yaml:"citations"`
}

// BigPictureType categorizes a big-picture item.
type BigPictureType string

const (
	BigPictureGoal        BigPictureType = "goal"
	BigPictureConstraint  BigPictureType = "constraint"
	BigPictureUncertainty BigPictureType = "uncertainty"
)

// BigPictureItem captures why the work existed: a technical goal, a
// constraint, or an uncertainty.
type BigPictureItem struct {
	Content   string         `json:"content" yaml:"content"`
	Type      BigPictureType `json:"type" yaml:"type"`
	Citations []Citation     `json:"citations" yaml:"citations"`
}

// WorkPerformedItem records concrete technical activity on a component,
// module, system, or process area.
type WorkPerformedItem struct {
	Component      string     `json:"component" yaml:"component"`
	Activity       string     `json:"activity" yaml:"activity"`
	IssueAddressed string     `json:"issue_addressed" yaml:"issue_addressed"`
	Citations      []Citation `json:"citations" yaml:"citations"`
}

// IterationStatus marks how an attempt arc ended.
type IterationStatus string

const (
	IterationComplete   IterationStatus = "complete"
	IterationIncomplete IterationStatus = "incomplete"
	IterationUnresolved IterationStatus = "unresolved"
)

// IterationItem is one hypothesis→action→observation→pivot arc. Fields are
// independently optional; rendering treats an empty field as absent.
type IterationItem struct {
	InitialApproach string          `json:"initial_approach" yaml:"initial_approach"`
	WorkDone        string          `json:"work_done" yaml:"work_done"`
	Observations    string          `json:"observations" yaml:"observations"`
	Change          string          `json:"change" yaml:"change"`
	Status          IterationStatus `json:"status" yaml:"status"`
	SequenceCue     string          `json:"sequence_cue" yaml:"sequence_cue"`
	Citations       []Citation      `json:"citations" yaml:"citations"`
}

// BulletStatus marks whether a drafting bullet can be copied forward as-is.
type BulletStatus string

const (
	BulletDraftReady         BulletStatus = "draft-ready"
	BulletNeedsClarification BulletStatus = "needs-clarification"
)

// DraftingBullet is a concise, citation-backed claim intended to be copied
// into a formal claim document. Unlike the other item types it carries
// exactly one citation.
type DraftingBullet struct {
	Bullet              string       `json:"bullet" yaml:"bullet"`
	Status              BulletStatus `json:"status" yaml:"status"`
	ClarificationNeeded string       `json:"clarification_needed,omitempty" yaml:"clarification_needed,omitempty"`
	Citation            Citation     `json:"citation" yaml:"citation"`
}

// DraftingMaterial groups drafting bullets under the four fixed claim-form
// headings. The JSON keys match the form line numbers and are part of the
// model contract.
type DraftingMaterial struct {
	BigPicture232       []DraftingBullet `json:"big_picture_232" yaml:"big_picture_232"`
	WorkPerformed244246 []DraftingBullet `json:"work_performed_244_246" yaml:"work_performed_244_246"`
	IterationsBullets   []DraftingBullet `json:"iterations_bullets" yaml:"iterations_bullets"`
	ResultsOutcomes248  []DraftingBullet `json:"results_outcomes_248" yaml:"results_outcomes_248"`
}

// Sections returns the four bullet sequences in their fixed display order,
// paired with their human-readable headings.
func (m DraftingMaterial) Sections() []DraftingSection {
	return []DraftingSection{
		{Title: "Big Picture (232)", Bullets: m.BigPicture232},
		{Title: "Work Performed (244/246)", Bullets: m.WorkPerformed244246},
		{Title: "Iterations", Bullets: m.IterationsBullets},
		{Title: "Results / Outcomes (248)", Bullets: m.ResultsOutcomes248},
	}
}

// DraftingSection pairs a drafting-material heading with its bullets.
type DraftingSection struct {
	Title   string
	Bullets []DraftingBullet
}

// AllBullets flattens the four sections in order.
func (m DraftingMaterial) AllBullets() []DraftingBullet {
	var all []DraftingBullet
	for _, s := range m.Sections() {
		all = append(all, s.Bullets...)
	}
	return all
}

// Output is the root extraction result: the five fixed buckets. All five
// fields are always present after Normalize; absence is represented by an
// empty slice, never nil.
type Output struct {
	CandidateProjects []CandidateProject  `json:"candidate_projects" yaml:"candidate_projects"`
	BigPicture        []BigPictureItem    `json:"big_picture" yaml:"big_picture"`
	WorkPerformed     []WorkPerformedItem `json:"work_performed" yaml:"work_performed"`
	Iterations        []IterationItem     `json:"iterations" yaml:"iterations"`
	DraftingMaterial  DraftingMaterial    `json:"drafting_material" yaml:"drafting_material"`
}

// Normalize replaces nil bucket slices with empty ones so downstream
// projectors never have to distinguish absent from empty.
func (o *Output) Normalize() {
	if o.CandidateProjects == nil {
		o.CandidateProjects = []CandidateProject{}
	}
	if o.BigPicture == nil {
		o.BigPicture = []BigPictureItem{}
	}
	if o.WorkPerformed == nil {
		o.WorkPerformed = []WorkPerformedItem{}
	}
	if o.Iterations == nil {
		o.Iterations = []IterationItem{}
	}
	m := &o.DraftingMaterial
	if m.BigPicture232 == nil {
		m.BigPicture232 = []DraftingBullet{}
	}
	if m.WorkPerformed244246 == nil {
		m.WorkPerformed244246 = []DraftingBullet{}
	}
	if m.IterationsBullets == nil {
		m.IterationsBullets = []DraftingBullet{}
	}
	if m.ResultsOutcomes248 == nil {
		m.ResultsOutcomes248 = []DraftingBullet{}
	}
}
