// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the engine over HTTP: transcript processing, run
// history, evaluation annotations, and file exports.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pdiddy/sred-engine/internal/export"
	"github.com/pdiddy/sred-engine/internal/process"
	"github.com/pdiddy/sred-engine/internal/runstore"
	"github.com/pdiddy/sred-engine/pkg/types"
)

// Config wires the HTTP handler's collaborators.
type Config struct {
	Processor *process.Processor
	Store     *runstore.Store
	BasePath  string
	JWTSecret string
	Logger    *zap.Logger
}

// apiError is the `{error: text}` envelope every failure uses. Parse
// failures additionally carry the model's raw reply for operator
// inspection.
type apiError struct {
	status     int
	Message    string `json:"error"`
	RawContent string `json:"raw_content,omitempty"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Message }

// New returns an HTTP handler exposing the engine API.
func New(cfg Config) (http.Handler, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/v0"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return &apiError{status: status, Message: msg}
	}

	router := chi.NewRouter()
	router.Use(requestLogger(logger))
	router.Use(newAuthMiddleware(basePath, cfg.JWTSecret, logger))

	hcfg := huma.DefaultConfig("SR&ED Transcript Engine API", "0.1.0")
	hcfg.OpenAPIPath = "/openapi"
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, basePath)

	registerHealth(group)
	registerProcess(group, cfg.Processor, logger)
	registerRuns(group, cfg.Store)
	registerEvaluation(group, cfg.Store)
	registerExport(router, cfg.Store, basePath, logger)

	return router, nil
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("elapsed", time.Since(start)),
			)
		})
	}
}

// handleError maps the engine's error taxonomy onto HTTP statuses: 400
// validation, 401 auth, 402 payment, 422 unparseable model output (with
// raw_content), 429 rate limited, 504 timeout, 500 unknown.
func handleError(err error) huma.StatusError {
	msg := err.Error()
	switch types.KindOf(err) {
	case types.KindValidation:
		return &apiError{status: http.StatusBadRequest, Message: msg}
	case types.KindUnauthenticated:
		return &apiError{status: http.StatusUnauthorized, Message: msg}
	case types.KindPaymentRequired:
		return &apiError{status: http.StatusPaymentRequired, Message: "Payment required. Please add credits to your workspace."}
	case types.KindRateLimited:
		return &apiError{status: http.StatusTooManyRequests, Message: "Rate limit exceeded. Please try again later."}
	case types.KindParseFailure:
		return &apiError{
			status:     http.StatusUnprocessableEntity,
			Message:    "Failed to parse LLM output as JSON",
			RawContent: types.RawOf(err),
		}
	case types.KindTimeout:
		return &apiError{status: http.StatusGatewayTimeout, Message: msg}
	default:
		return &apiError{status: http.StatusInternalServerError, Message: msg}
	}
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string
	}, error) {
		return &struct {
			Body map[string]string
		}{Body: map[string]string{"status": "ok"}}, nil
	})
}

func registerProcess(api huma.API, proc *process.Processor, logger *zap.Logger) {
	huma.Register(api, huma.Operation{
		OperationID: "process-transcript",
		Method:      http.MethodPost,
		Path:        "/runs/process",
		Summary:     "Process a transcript into structured SR&ED output",
	}, func(ctx context.Context, input *struct {
		Body processRequest
	}) (*processResponse, error) {
		req := input.Body.toProcessRequest()
		result, err := proc.Run(ctx, req)
		if err != nil {
			return nil, handleError(err)
		}

		resp := &processResponse{}
		resp.Body.ModelUsed = result.ModelUsed
		resp.Body.RunID = result.Run.ID
		if result.Run.IsStructured {
			resp.Body.Output = result.Run.Output
		} else {
			resp.Body.Content = result.Run.RawOutput
		}
		if result.PersistWarning != nil {
			logger.Warn("run not persisted", zap.Error(result.PersistWarning))
			resp.Body.Warning = result.PersistWarning.Error()
		}
		return resp, nil
	})
}

func registerRuns(api huma.API, store *runstore.Store) {
	huma.Register(api, huma.Operation{
		OperationID: "list-runs",
		Method:      http.MethodGet,
		Path:        "/runs",
		Summary:     "List run history, newest first",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body struct {
			Runs []runSummary `json:"runs"`
		}
	}, error) {
		summaries, err := store.List(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		resp := &struct {
			Body struct {
				Runs []runSummary `json:"runs"`
			}
		}{}
		resp.Body.Runs = make([]runSummary, len(summaries))
		for i, s := range summaries {
			resp.Body.Runs[i] = toRunSummary(s)
		}
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-run",
		Method:      http.MethodGet,
		Path:        "/runs/{run_id}",
		Summary:     "Fetch one run in full",
	}, func(ctx context.Context, input *struct {
		RunID string `path:"run_id"`
	}) (*struct {
		Body *types.Run
	}, error) {
		run, err := store.Get(ctx, input.RunID)
		if err != nil {
			return nil, runError(err)
		}
		return &struct {
			Body *types.Run
		}{Body: run}, nil
	})
}

func registerEvaluation(api huma.API, store *runstore.Store) {
	huma.Register(api, huma.Operation{
		OperationID: "update-evaluation",
		Method:      http.MethodPatch,
		Path:        "/runs/{run_id}/evaluation",
		Summary:     "Replace a run's evaluation annotations",
	}, func(ctx context.Context, input *struct {
		RunID string `path:"run_id"`
		Body  types.Evaluation
	}) (*struct {
		Body *types.Run
	}, error) {
		if err := store.UpdateEvaluation(ctx, input.RunID, input.Body); err != nil {
			return nil, runError(err)
		}
		run, err := store.Get(ctx, input.RunID)
		if err != nil {
			return nil, runError(err)
		}
		return &struct {
			Body *types.Run
		}{Body: run}, nil
	})
}

// registerExport serves file downloads on the raw router: the body is the
// export blob, not a JSON envelope.
func registerExport(router chi.Router, store *runstore.Store, basePath string, logger *zap.Logger) {
	router.Get(basePath+"/runs/{run_id}/export/{format}", func(w http.ResponseWriter, r *http.Request) {
		run, err := store.Get(r.Context(), chi.URLParam(r, "run_id"))
		if err != nil {
			writeJSONError(w, runError(err))
			return
		}

		format := chi.URLParam(r, "format")
		var (
			body        []byte
			contentType string
		)
		switch format {
		case "json":
			body, err = export.JSON(run)
			contentType = "application/json"
		case "csv":
			body = []byte(export.CSV(run))
			contentType = "text/csv"
		case "html":
			var doc string
			doc, err = export.HTML(run)
			body = []byte(doc)
			contentType = "text/html"
		default:
			writeJSONError(w, &apiError{
				status:  http.StatusBadRequest,
				Message: fmt.Sprintf("unknown export format %q: expected json, csv, or html", format),
			})
			return
		}
		if err != nil {
			logger.Error("export failed", zap.Error(err))
			writeJSONError(w, handleError(err))
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", export.Filename(run, format)))
		w.Write(body)
	})
}

func runError(err error) huma.StatusError {
	if errors.Is(err, runstore.ErrNotFound) {
		return &apiError{status: http.StatusNotFound, Message: err.Error()}
	}
	return handleError(err)
}

func writeJSONError(w http.ResponseWriter, apiErr huma.StatusError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.GetStatus())
	fmt.Fprintf(w, `{"error":%q}`, apiErr.Error())
}
