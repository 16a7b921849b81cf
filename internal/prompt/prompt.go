// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt builds the model instruction for one transcript submission:
// the operator's context pack, the labeled transcript, and the output
// instructions describing the required JSON shape.
package prompt

import (
	"bytes"
	"text/template"
)

// promptTmpl is the full instruction sent as the user message. The JSON
// skeleton and the CRITICAL RULES are part of the model contract; the
// normalizer depends on replies following them.
var promptTmpl = template.Must(template.New("submission").Parse(`
{{.ContextPack}}

---

TRANSCRIPT TO ANALYZE:

{{.Transcript}}

---

OUTPUT INSTRUCTIONS:

You must return a JSON object with exactly 5 keys corresponding to the SR&ED output buckets. Each bucket should contain an array of items with citations.

Return ONLY valid JSON in this exact structure:

{
  "candidate_projects": [
    {
      "label": "Project/sub-project name using client language",
      "description": "Brief description of what it covers",
      "signals": "Signals supporting the grouping (distinct goal, system, time period)",
      "confidence": "High | Medium | Low",
      "citations": [
        {
          "quote": "Direct quote from transcript",
          "location": "Speaker name and timestamp if available"
        }
      ]
    }
  ],
  "big_picture": [
    {
      "content": "Technical goal, constraint, or uncertainty",
      "type": "goal | constraint | uncertainty",
      "citations": [
        {
          "quote": "Direct quote from transcript",
          "location": "Speaker name and timestamp if available"
        }
      ]
    }
  ],
  "work_performed": [
    {
      "component": "Component, module, system, or process area (client language)",
      "activity": "Concrete technical activity (build, test, debug, etc.)",
      "issue_addressed": "What issue this activity was addressing",
      "citations": [
        {
          "quote": "Direct quote from transcript",
          "location": "Speaker name and timestamp if available"
        }
      ]
    }
  ],
  "iterations": [
    {
      "initial_approach": "Initial idea, hypothesis, or approach",
      "work_done": "What they tried",
      "observations": "What happened (results, learnings)",
      "change": "What changed next (pivot, refinement, abandonment)",
      "status": "complete | incomplete | unresolved",
      "sequence_cue": "Any before/after or timeline indicators",
      "citations": [
        {
          "quote": "Direct quote from transcript",
          "location": "Speaker name and timestamp if available"
        }
      ]
    }
  ],
  "drafting_material": {
    "big_picture_232": [
      {
        "bullet": "Concise, factual bullet for drafting",
        "status": "draft-ready | needs-clarification",
        "clarification_needed": "What's missing (if needs-clarification)",
        "citation": {
          "quote": "Direct quote",
          "location": "Location reference"
        }
      }
    ],
    "work_performed_244_246": [
      {
        "bullet": "Concise, factual bullet for drafting",
        "status": "draft-ready | needs-clarification",
        "clarification_needed": "What's missing (if needs-clarification)",
        "citation": {
          "quote": "Direct quote",
          "location": "Location reference"
        }
      }
    ],
    "iterations_bullets": [
      {
        "bullet": "Concise, factual bullet for drafting",
        "status": "draft-ready | needs-clarification",
        "clarification_needed": "What's missing (if needs-clarification)",
        "citation": {
          "quote": "Direct quote",
          "location": "Location reference"
        }
      }
    ],
    "results_outcomes_248": [
      {
        "bullet": "Concise, factual bullet for drafting",
        "status": "draft-ready | needs-clarification",
        "clarification_needed": "What's missing (if needs-clarification)",
        "citation": {
          "quote": "Direct quote",
          "location": "Location reference"
        }
      }
    ]
  }
}

CRITICAL RULES:
1. Every item MUST have at least one citation with a direct quote from the transcript
2. If something cannot be cited from the transcript, do not include it
3. Return ONLY the JSON object, no markdown, no explanation
4. Use the exact structure shown above
5. All string values must be properly escaped for JSON
`))

// Build renders the full user prompt for one submission. Pure string
// assembly; the network call happens elsewhere.
func Build(contextPack, transcript string) (string, error) {
	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, struct {
		ContextPack string
		Transcript  string
	}{ContextPack: contextPack, Transcript: transcript})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
