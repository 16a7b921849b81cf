// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package process runs one transcript submission end to end: validate
// inputs, build the prompt, call the model gateway under the processing
// bound, normalize the reply, and persist the run best-effort.
package process

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/sred-engine/internal/gateway"
	"github.com/pdiddy/sred-engine/internal/normalize"
	"github.com/pdiddy/sred-engine/internal/prompt"
	"github.com/pdiddy/sred-engine/internal/runstore"
	"github.com/pdiddy/sred-engine/pkg/types"
)

// Request is one submission: the transcript, the context pack, the model
// selection, and optional metadata recorded on the run.
type Request struct {
	Transcript  string
	ClientName  string
	FiscalYear  string
	MeetingType string

	ContextPack        string
	ContextPackName    string
	ContextPackVersion string

	Model types.ModelKey

	SystemPrompt  string
	PromptName    string
	PromptVersion string

	// DisableStructured bypasses JSON normalization; the reply is carried
	// verbatim as free-form content.
	DisableStructured bool
}

// Result is the outcome of a successful submission. PersistWarning is set
// when the run could not be saved; the result is still usable.
type Result struct {
	Run            *types.Run
	ModelUsed      string
	PersistWarning error
}

// Processor wires the pipeline's collaborators. Store may be nil for
// one-shot runs with no history.
type Processor struct {
	Backend gateway.Backend
	Store   *runstore.Store
	Timeout time.Duration
	Logger  *zap.Logger
}

// Validate rejects missing or oversized input before any external call.
func Validate(req Request) error {
	if strings.TrimSpace(req.Transcript) == "" {
		return types.NewError(types.KindValidation, "transcript is required")
	}
	if len(req.Transcript) > types.MaxTranscriptLength {
		return types.NewError(types.KindValidation,
			"transcript exceeds maximum length of %d characters", types.MaxTranscriptLength)
	}
	if strings.TrimSpace(req.ContextPack) == "" {
		return types.NewError(types.KindValidation, "context pack is required")
	}
	if len(req.ContextPack) > types.MaxContextPackLength {
		return types.NewError(types.KindValidation,
			"context pack exceeds maximum length of %d characters", types.MaxContextPackLength)
	}
	if len(req.SystemPrompt) > types.MaxSystemPromptLength {
		return types.NewError(types.KindValidation,
			"system prompt exceeds maximum length of %d characters", types.MaxSystemPromptLength)
	}
	return gateway.ValidateKey(req.Model)
}

// Run executes one submission. The gateway call is bounded by the
// processor's timeout; exceeding it is a timeout outcome distinct from
// other transport failures. A cancelled call's partial response is
// discarded, never persisted.
func (p *Processor) Run(ctx context.Context, req Request) (*Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := Validate(req); err != nil {
		return nil, err
	}

	model, err := gateway.Resolve(req.Model)
	if err != nil {
		return nil, err
	}

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = prompt.FallbackSystemPrompt
	}

	userPrompt, err := prompt.Build(req.ContextPack, req.Transcript)
	if err != nil {
		return nil, types.WrapError(types.KindValidation, err, "building prompt")
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = types.DefaultProcessTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Info("processing transcript",
		zap.String("model", model),
		zap.Int("transcript_chars", len(req.Transcript)),
		zap.Int("context_pack_chars", len(req.ContextPack)),
		zap.Bool("structured", !req.DisableStructured),
	)

	raw, err := p.Backend.Complete(callCtx, gateway.Request{
		Model:        model,
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded && types.KindOf(err) != types.KindTimeout {
			return nil, types.WrapError(types.KindTimeout, err, "processing exceeded %s", timeout)
		}
		return nil, err
	}

	run := &types.Run{
		TranscriptText:     req.Transcript,
		ClientName:         req.ClientName,
		FiscalYear:         req.FiscalYear,
		MeetingType:        req.MeetingType,
		ContextPackText:    req.ContextPack,
		ContextPackName:    req.ContextPackName,
		ContextPackVersion: req.ContextPackVersion,
		PromptText:         systemPrompt,
		PromptName:         req.PromptName,
		PromptVersion:      req.PromptVersion,
		ModelUsed:          model,
	}

	if req.DisableStructured {
		run.RawOutput = raw
		run.IsStructured = false
	} else {
		out, err := normalize.Parse(raw)
		if err != nil {
			return nil, err
		}
		run.Output = out
		run.IsStructured = true
	}

	result := &Result{Run: run, ModelUsed: model}

	// Best-effort persist: a save failure is reported as a warning, the
	// in-memory result is still returned.
	if p.Store != nil {
		if err := p.Store.Insert(ctx, run); err != nil {
			logger.Warn("failed to save run", zap.Error(err))
			result.PersistWarning = types.WrapError(types.KindPersistence, err,
				"results processed but failed to save to history")
		} else {
			logger.Info("run saved", zap.String("run_id", run.ID))
		}
	}

	return result, nil
}
