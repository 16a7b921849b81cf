// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"time"

	"github.com/pdiddy/sred-engine/internal/process"
	"github.com/pdiddy/sred-engine/internal/runstore"
	"github.com/pdiddy/sred-engine/pkg/types"
)

// processRequest is the JSON body of POST /runs/process.
type processRequest struct {
	Transcript  string `json:"transcript" doc:"Interview transcript text"`
	ContextPack string `json:"contextPack" doc:"Domain context pack steering the extraction"`

	Model        string `json:"model,omitempty" enum:"openai,claude,gemini" doc:"Model key; defaults to gemini"`
	SystemPrompt string `json:"systemPrompt,omitempty" doc:"System prompt; a built-in default is used when empty"`

	DisableStructuredOutput bool `json:"disableStructuredOutput,omitempty" doc:"Return the model reply verbatim instead of parsing JSON"`

	ClientName  string `json:"clientName,omitempty"`
	FiscalYear  string `json:"fiscalYear,omitempty"`
	MeetingType string `json:"meetingType,omitempty"`

	ContextPackName    string `json:"contextPackName,omitempty"`
	ContextPackVersion string `json:"contextPackVersion,omitempty"`
	PromptName         string `json:"promptName,omitempty"`
	PromptVersion      string `json:"promptVersion,omitempty"`
}

func (r processRequest) toProcessRequest() process.Request {
	return process.Request{
		Transcript:         r.Transcript,
		ClientName:         r.ClientName,
		FiscalYear:         r.FiscalYear,
		MeetingType:        r.MeetingType,
		ContextPack:        r.ContextPack,
		ContextPackName:    r.ContextPackName,
		ContextPackVersion: r.ContextPackVersion,
		Model:              types.ModelKey(r.Model),
		SystemPrompt:       r.SystemPrompt,
		PromptName:         r.PromptName,
		PromptVersion:      r.PromptVersion,
		DisableStructured:  r.DisableStructuredOutput,
	}
}

// processResponse is the success envelope: structured output or, in
// unstructured mode, the raw content.
type processResponse struct {
	Body struct {
		Output    *types.Output `json:"output,omitempty"`
		Content   string        `json:"content,omitempty"`
		ModelUsed string        `json:"model_used"`
		RunID     string        `json:"run_id,omitempty"`
		Warning   string        `json:"warning,omitempty"`
	}
}

// runSummary is one row of the history listing.
type runSummary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ClientName   string    `json:"client_name,omitempty"`
	FiscalYear   string    `json:"fiscal_year,omitempty"`
	MeetingType  string    `json:"meeting_type,omitempty"`
	ModelUsed    string    `json:"model_used"`
	IsStructured bool      `json:"is_structured"`
}

func toRunSummary(s runstore.Summary) runSummary {
	return runSummary{
		ID:           s.ID,
		CreatedAt:    s.CreatedAt,
		ClientName:   s.ClientName,
		FiscalYear:   s.FiscalYear,
		MeetingType:  s.MeetingType,
		ModelUsed:    s.ModelUsed,
		IsStructured: s.IsStructured,
	}
}
