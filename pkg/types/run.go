// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ModelKey selects a backing model through the gateway lookup table.
type ModelKey string

const (
	ModelOpenAI ModelKey = "openai"
	ModelClaude ModelKey = "claude"
	ModelGemini ModelKey = "gemini"
)

// Run is one persisted submission: the inputs, the model used, the
// extraction output (or raw text in unstructured mode), and optional human
// evaluation annotations. A Run is immutable after creation except for its
// evaluation fields.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	TranscriptText string `json:"transcript_text" yaml:"transcript_text"`
	ClientName     string `json:"client_name,omitempty" yaml:"client_name,omitempty"`
	FiscalYear     string `json:"fiscal_year,omitempty" yaml:"fiscal_year,omitempty"`
	MeetingType    string `json:"meeting_type,omitempty" yaml:"meeting_type,omitempty"`

	ContextPackText    string `json:"context_pack_text" yaml:"context_pack_text"`
	ContextPackName    string `json:"context_pack_name,omitempty" yaml:"context_pack_name,omitempty"`
	ContextPackVersion string `json:"context_pack_version,omitempty" yaml:"context_pack_version,omitempty"`

	PromptText    string `json:"prompt_text" yaml:"prompt_text"`
	PromptName    string `json:"prompt_name,omitempty" yaml:"prompt_name,omitempty"`
	PromptVersion string `json:"prompt_version,omitempty" yaml:"prompt_version,omitempty"`

	// ModelUsed is the concrete backing model identifier, not the ModelKey.
	ModelUsed string `json:"model_used" yaml:"model_used"`

	// Output holds the structured extraction. Nil when IsStructured is false.
	Output *Output `json:"output,omitempty" yaml:"output,omitempty"`

	// RawOutput preserves the model's reply verbatim in unstructured mode.
	RawOutput    string `json:"raw_output,omitempty" yaml:"raw_output,omitempty"`
	IsStructured bool   `json:"is_structured" yaml:"is_structured"`

	Evaluation Evaluation `json:"evaluation" yaml:"evaluation"`
}

// BucketOutput returns the run's structured output, substituting an empty
// normalized Output when the run was unstructured. Projectors stay total.
func (r *Run) BucketOutput() *Output {
	out := r.Output
	if out == nil {
		out = &Output{}
	}
	out.Normalize()
	return out
}

// Evaluation holds per-bucket human review scores (1-5, zero means unscored)
// and free-form notes. These are the only mutable fields on a Run.
type Evaluation struct {
	CandidateProjects int `json:"candidate_projects,omitempty" yaml:"candidate_projects,omitempty"`
	BigPicture        int `json:"big_picture,omitempty" yaml:"big_picture,omitempty"`
	WorkPerformed     int `json:"work_performed,omitempty" yaml:"work_performed,omitempty"`
	Iterations        int `json:"iterations,omitempty" yaml:"iterations,omitempty"`
	DraftingMaterial  int `json:"drafting_material,omitempty" yaml:"drafting_material,omitempty"`

	NotesCandidateProjects string `json:"notes_candidate_projects,omitempty" yaml:"notes_candidate_projects,omitempty"`
	NotesBigPicture        string `json:"notes_big_picture,omitempty" yaml:"notes_big_picture,omitempty"`
	NotesWorkPerformed     string `json:"notes_work_performed,omitempty" yaml:"notes_work_performed,omitempty"`
	NotesIterations        string `json:"notes_iterations,omitempty" yaml:"notes_iterations,omitempty"`
	NotesDraftingMaterial  string `json:"notes_drafting_material,omitempty" yaml:"notes_drafting_material,omitempty"`
	NotesOverall           string `json:"notes_overall,omitempty" yaml:"notes_overall,omitempty"`
}

// Scores returns the five bucket scores in display order.
func (e Evaluation) Scores() []int {
	return []int{e.CandidateProjects, e.BigPicture, e.WorkPerformed, e.Iterations, e.DraftingMaterial}
}
