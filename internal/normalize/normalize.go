// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns the model's raw reply into a structured Output.
// It strips incidental markdown fencing, parses the reply as JSON, and
// classifies failures while preserving the original text.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/pdiddy/sred-engine/pkg/types"
)

// StripFences removes a single fenced-code wrapper from a reply: the opening
// fence line (with or without a language tag) and a trailing closing fence.
// Best-effort textual cleanup, not a markdown parser; only the
// fence-at-start/end case is handled.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}
	return strings.TrimSpace(s)
}

// Parse fence-strips and JSON-decodes a model reply. On success the output
// is normalized so all five buckets are present. On a syntax error it
// returns a parse-failure error carrying the verbatim reply; callers must
// be able to show the operator what the model actually said.
//
// Valid JSON that does not match the expected shape still succeeds: unknown
// fields are ignored and missing buckets come back empty. Tightening this
// to a schema check would change observable behavior and is deliberately
// not done here.
func Parse(raw string) (*types.Output, error) {
	cleaned := StripFences(raw)

	var out types.Output
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		// A type mismatch inside otherwise valid JSON is not a parse
		// failure: keep whatever decoded and let the buckets come back
		// empty (the reference laxity).
		if !json.Valid([]byte(cleaned)) {
			return nil, &types.Error{
				Kind: types.KindParseFailure,
				Msg:  "failed to parse model output as JSON",
				Raw:  raw,
				Err:  err,
			}
		}
	}

	out.Normalize()
	return &out, nil
}
