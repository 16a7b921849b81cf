// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/pdiddy/sred-engine/pkg/types"
)

// htmlView is the data handed to the report template.
type htmlView struct {
	*Report
	GeneratedAt time.Time
}

// HTML renders a run as a self-contained styled document: inlined style
// rules, no external resources. All user-supplied text passes through
// html/template's contextual escaping, so the markup-unsafe characters
// never appear raw in the output.
func HTML(run *types.Run) (string, error) {
	view := htmlView{Report: BuildReport(run), GeneratedAt: time.Now()}
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("rendering HTML report: %w", err)
	}
	return buf.String(), nil
}

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"fmtDate": func(t time.Time) string { return t.Format("January 2, 2006 15:04") },
	"firstCit": func(cs []types.Citation) *types.Citation {
		if len(cs) == 0 {
			return nil
		}
		return &cs[0]
	},
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>SR&amp;ED Run Report - {{if .Run.ClientName}}{{.Run.ClientName}}{{else}}Unknown Client{{end}}</title>
  <style>
    * { box-sizing: border-box; margin: 0; padding: 0; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      line-height: 1.6;
      color: #1a1a2e;
      background: #f8f9fa;
      padding: 2rem;
    }
    .container { max-width: 900px; margin: 0 auto; }
    .header {
      background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
      color: white;
      padding: 2rem;
      border-radius: 12px;
      margin-bottom: 1.5rem;
    }
    .header h1 { font-size: 1.75rem; margin-bottom: 0.5rem; }
    .header-meta { display: flex; flex-wrap: wrap; gap: 1.5rem; font-size: 0.9rem; opacity: 0.9; }
    .summary {
      background: white;
      border-radius: 12px;
      padding: 1.5rem;
      margin-bottom: 1.5rem;
      box-shadow: 0 2px 8px rgba(0,0,0,0.08);
    }
    .summary h2 { font-size: 1rem; color: #666; margin-bottom: 1rem; text-transform: uppercase; letter-spacing: 0.5px; }
    .summary-stats { display: flex; flex-wrap: wrap; gap: 1rem; }
    .stat {
      background: #f0f4ff;
      padding: 0.75rem 1.25rem;
      border-radius: 8px;
      font-weight: 600;
      color: #4f46e5;
    }
    .stat.success { background: #ecfdf5; color: #059669; }
    .stat.warning { background: #fffbeb; color: #d97706; }
    .section {
      background: white;
      border-radius: 12px;
      padding: 1.5rem;
      margin-bottom: 1.5rem;
      box-shadow: 0 2px 8px rgba(0,0,0,0.08);
    }
    .section-header {
      display: flex;
      align-items: center;
      gap: 0.75rem;
      margin-bottom: 1rem;
      padding-bottom: 0.75rem;
      border-bottom: 2px solid #f0f0f0;
    }
    .section-header h2 { font-size: 1.25rem; }
    .section-count {
      background: #e0e7ff;
      color: #4338ca;
      padding: 0.25rem 0.75rem;
      border-radius: 100px;
      font-size: 0.85rem;
      font-weight: 600;
    }
    .card {
      background: #fafafa;
      border: 1px solid #e5e5e5;
      border-radius: 8px;
      padding: 1rem;
      margin-bottom: 0.75rem;
    }
    .card:last-child { margin-bottom: 0; }
    .card-header { display: flex; align-items: center; gap: 0.5rem; margin-bottom: 0.5rem; }
    .card-title { font-weight: 600; }
    .card-content { color: #444; }
    .badge {
      display: inline-block;
      padding: 0.2rem 0.6rem;
      border-radius: 100px;
      font-size: 0.75rem;
      font-weight: 600;
      text-transform: uppercase;
    }
    .badge-High { background: #fee2e2; color: #b91c1c; }
    .badge-Medium { background: #fef3c7; color: #92400e; }
    .badge-Low { background: #dcfce7; color: #166534; }
    .badge-goal { background: #dbeafe; color: #1e40af; }
    .badge-constraint { background: #fef3c7; color: #92400e; }
    .badge-uncertainty { background: #f3e8ff; color: #7c3aed; }
    .badge-complete { background: #dcfce7; color: #166534; }
    .badge-incomplete { background: #fef3c7; color: #92400e; }
    .badge-unresolved { background: #fee2e2; color: #b91c1c; }
    .bullet-item {
      padding: 1rem;
      background: #fafafa;
      border-left: 4px solid #e5e5e5;
      margin-bottom: 0.75rem;
      border-radius: 0 8px 8px 0;
    }
    .bullet-item.draft-ready { border-left-color: #10b981; background: #f0fdf4; }
    .bullet-item.needs-clarification { border-left-color: #f59e0b; background: #fffbeb; }
    .bullet-text { font-size: 1rem; margin-bottom: 0.5rem; }
    .bullet-status { font-size: 0.8rem; font-weight: 600; }
    .bullet-status.ready { color: #059669; }
    .bullet-status.clarify { color: #d97706; }
    .clarification-note {
      margin-top: 0.5rem;
      padding: 0.5rem;
      background: #fef3c7;
      border-radius: 4px;
      font-size: 0.85rem;
      color: #92400e;
    }
    .citation {
      margin-top: 0.5rem;
      padding: 0.5rem;
      background: #f5f5f5;
      border-radius: 4px;
      font-size: 0.85rem;
      color: #666;
      font-style: italic;
    }
    .citation-location { font-size: 0.75rem; color: #999; margin-top: 0.25rem; font-style: normal; }
    .subsection { margin-bottom: 1.5rem; }
    .subsection:last-child { margin-bottom: 0; }
    .subsection-header { font-weight: 600; margin-bottom: 0.75rem; color: #374151; }
    .footer { text-align: center; padding: 1rem; color: #999; font-size: 0.85rem; }
    @media print {
      body { background: white; padding: 0; }
      .section { box-shadow: none; border: 1px solid #ddd; }
      .header { background: #333; -webkit-print-color-adjust: exact; print-color-adjust: exact; }
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>SR&amp;ED Analysis Report</h1>
      <div class="header-meta">
        <span>{{fmtDate .Run.CreatedAt}}</span>
        {{if .Run.ClientName}}<span>{{.Run.ClientName}}</span>{{end}}
        {{if .Run.FiscalYear}}<span>FY {{.Run.FiscalYear}}</span>{{end}}
        <span>{{.Run.ModelUsed}}</span>
      </div>
    </div>

    <div class="summary">
      <h2>Executive Summary</h2>
      <div class="summary-stats">
        <div class="stat">{{len .Output.CandidateProjects}} Projects</div>
        <div class="stat">{{len .Output.BigPicture}} Big Picture</div>
        <div class="stat">{{len .Output.WorkPerformed}} Work Items</div>
        <div class="stat">{{len .Output.Iterations}} Iterations</div>
        <div class="stat">{{.TotalBullets}} Drafting Bullets</div>
        <div class="stat success">{{.DraftReady}} Draft-Ready</div>
        {{if .NeedsClarification}}<div class="stat warning">{{.NeedsClarification}} Need Clarification</div>{{end}}
        {{if .TotalUncited}}<div class="stat warning">{{.TotalUncited}} Uncited</div>{{end}}
      </div>
    </div>

    {{if .Output.CandidateProjects}}
    <div class="section">
      <div class="section-header">
        <h2>Candidate Projects</h2>
        <span class="section-count">{{len .Output.CandidateProjects}}</span>
      </div>
      {{range .Output.CandidateProjects}}
      <div class="card">
        <div class="card-header">
          <span class="card-title">{{.Label}}</span>
          <span class="badge badge-{{.Confidence}}">{{.Confidence}}</span>
        </div>
        <div class="card-content">{{.Description}}</div>
        {{if .Signals}}<div style="margin-top: 0.5rem; font-size: 0.85rem; color: #666;"><strong>Signals:</strong> {{.Signals}}</div>{{end}}
        {{with firstCit .Citations}}
        <div class="citation">&ldquo;{{.Quote}}&rdquo;<div class="citation-location">&mdash; {{.Location}}</div></div>
        {{end}}
      </div>
      {{end}}
    </div>
    {{end}}

    {{if .Output.BigPicture}}
    <div class="section">
      <div class="section-header">
        <h2>Big Picture</h2>
        <span class="section-count">{{len .Output.BigPicture}}</span>
      </div>
      {{if .Goals}}
      <div class="subsection">
        <div class="subsection-header">Goals ({{len .Goals}})</div>
        {{range .Goals}}
        <div class="card">
          <div class="card-content">{{.Content}}</div>
          {{with firstCit .Citations}}<div class="citation">&ldquo;{{.Quote}}&rdquo;<div class="citation-location">&mdash; {{.Location}}</div></div>{{end}}
        </div>
        {{end}}
      </div>
      {{end}}
      {{if .Constraints}}
      <div class="subsection">
        <div class="subsection-header">Constraints ({{len .Constraints}})</div>
        {{range .Constraints}}
        <div class="card">
          <div class="card-content">{{.Content}}</div>
          {{with firstCit .Citations}}<div class="citation">&ldquo;{{.Quote}}&rdquo;<div class="citation-location">&mdash; {{.Location}}</div></div>{{end}}
        </div>
        {{end}}
      </div>
      {{end}}
      {{if .Uncertainties}}
      <div class="subsection">
        <div class="subsection-header">Uncertainties ({{len .Uncertainties}})</div>
        {{range .Uncertainties}}
        <div class="card">
          <div class="card-content">{{.Content}}</div>
          {{with firstCit .Citations}}<div class="citation">&ldquo;{{.Quote}}&rdquo;<div class="citation-location">&mdash; {{.Location}}</div></div>{{end}}
        </div>
        {{end}}
      </div>
      {{end}}
    </div>
    {{end}}

    {{if .Output.WorkPerformed}}
    <div class="section">
      <div class="section-header">
        <h2>Work Performed</h2>
        <span class="section-count">{{len .Output.WorkPerformed}}</span>
      </div>
      {{range .Output.WorkPerformed}}
      <div class="card">
        <div class="card-header"><span class="card-title">{{.Component}}</span></div>
        <div class="card-content">
          <div><strong>Activity:</strong> {{.Activity}}</div>
          {{if .IssueAddressed}}<div style="margin-top: 0.25rem;"><strong>Issue Addressed:</strong> {{.IssueAddressed}}</div>{{end}}
        </div>
        {{with firstCit .Citations}}<div class="citation">&ldquo;{{.Quote}}&rdquo;<div class="citation-location">&mdash; {{.Location}}</div></div>{{end}}
      </div>
      {{end}}
    </div>
    {{end}}

    {{if .Output.Iterations}}
    <div class="section">
      <div class="section-header">
        <h2>Iterations</h2>
        <span class="section-count">{{len .Output.Iterations}}</span>
      </div>
      {{range $idx, $it := .Output.Iterations}}
      <div class="card">
        <div class="card-header">
          <span class="card-title">{{if $it.SequenceCue}}{{$it.SequenceCue}}{{else}}Iteration {{inc $idx}}{{end}}</span>
          <span class="badge badge-{{$it.Status}}">{{$it.Status}}</span>
        </div>
        <div class="card-content">
          {{if $it.InitialApproach}}<div><strong>Initial Approach:</strong> {{$it.InitialApproach}}</div>{{end}}
          {{if $it.WorkDone}}<div style="margin-top: 0.25rem;"><strong>Work Done:</strong> {{$it.WorkDone}}</div>{{end}}
          {{if $it.Observations}}<div style="margin-top: 0.25rem;"><strong>Observations:</strong> {{$it.Observations}}</div>{{end}}
          {{if $it.Change}}<div style="margin-top: 0.25rem;"><strong>Change:</strong> {{$it.Change}}</div>{{end}}
        </div>
        {{with firstCit $it.Citations}}<div class="citation">&ldquo;{{.Quote}}&rdquo;<div class="citation-location">&mdash; {{.Location}}</div></div>{{end}}
      </div>
      {{end}}
    </div>
    {{end}}

    {{if .TotalBullets}}
    <div class="section">
      <div class="section-header">
        <h2>Drafting Material</h2>
        <span class="section-count">{{.TotalBullets}}</span>
      </div>
      {{range .DraftingSections}}
      {{if .Bullets}}
      <div class="subsection">
        <div class="subsection-header">{{.Title}} ({{len .Bullets}})</div>
        {{range .Bullets}}
        <div class="bullet-item {{.Status}}">
          <div class="bullet-text">{{.Bullet}}</div>
          {{if eq (printf "%s" .Status) "draft-ready"}}
          <div class="bullet-status ready">Draft Ready</div>
          {{else}}
          <div class="bullet-status clarify">Needs Clarification</div>
          {{end}}
          {{if .ClarificationNeeded}}<div class="clarification-note">{{.ClarificationNeeded}}</div>{{end}}
          {{if .Citation.Quote}}<div class="citation">&ldquo;{{.Citation.Quote}}&rdquo;<div class="citation-location">&mdash; {{.Citation.Location}}</div></div>{{end}}
        </div>
        {{end}}
      </div>
      {{end}}
      {{end}}
    </div>
    {{end}}

    <div class="footer">
      Generated on {{fmtDate .GeneratedAt}} &bull; Run ID: {{.Run.ID}}
    </div>
  </div>
</body>
</html>`))
