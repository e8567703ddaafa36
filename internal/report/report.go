// Package report implements the reporters for a code-analysis run: console,
// JSON, CSV, and HTML renderings, all behind one Reporter interface.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sort"

	"github.com/standardbeagle/hygiene/internal/model"
)

// Statistics summarizes one analysis run for the JSON/HTML reporters and
// the always-on one-line summary.
type Statistics struct {
	FilesScanned  int            `json:"filesScanned"`
	TotalIssues   int            `json:"totalIssues"`
	ByCategory    map[string]int `json:"byCategory"`
	ScanDurationMs int64         `json:"scanDurationMs"`
}

// CodeReport is the renderable shape of a code-analysis run.
type CodeReport struct {
	Version    string           `json:"version"`
	Issues     []model.CodeIssue `json:"issues"`
	Statistics Statistics        `json:"statistics"`
}

// NewStatistics derives a Statistics summary from issues.
func NewStatistics(filesScanned int, issues []model.CodeIssue, durationMs int64) Statistics {
	stats := Statistics{FilesScanned: filesScanned, TotalIssues: len(issues), ByCategory: make(map[string]int), ScanDurationMs: durationMs}
	for _, i := range issues {
		stats.ByCategory[i.Category]++
	}
	return stats
}

// Summary renders the always-on one-line run summary.
func Summary(stats Statistics, issues []model.CodeIssue) string {
	var warnings, infos int
	for _, i := range issues {
		switch i.Severity {
		case model.SeverityWarning:
			warnings++
		case model.SeverityInfo:
			infos++
		}
	}
	return fmt.Sprintf("%d files scanned, %d issues (%d warnings, %d info) in %d ms",
		stats.FilesScanned, stats.TotalIssues, warnings, infos, stats.ScanDurationMs)
}

// Reporter renders a CodeReport to w.
type Reporter interface {
	Write(w io.Writer, report CodeReport) error
}

// Console renders one line per issue in a plain, script-friendly format
// that an external colorizer can wrap.
type Console struct{}

func (Console) Write(w io.Writer, report CodeReport) error {
	for _, issue := range sortedIssues(report.Issues) {
		_, err := fmt.Fprintf(w, "%s:%d:%d: %s [%s] %s\n",
			issue.Location.File, issue.Location.Line, issue.Location.Column,
			issue.Severity, issue.Category, issue.Message)
		if err != nil {
			return err
		}
	}
	return nil
}

// JSON renders {version, issues, statistics} as one JSON document.
type JSON struct{ Indent bool }

type jsonIssue struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Symbol      string `json:"symbol"`
	File        string `json:"file"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Message     string `json:"message"`
	Suggestion  string `json:"suggestion,omitempty"`
	AutoFixable bool   `json:"autoFixable"`
}

type jsonReport struct {
	Version    string         `json:"version"`
	Issues     []jsonIssue    `json:"issues"`
	Statistics Statistics     `json:"statistics"`
}

func (j JSON) Write(w io.Writer, report CodeReport) error {
	out := jsonReport{Version: report.Version, Statistics: report.Statistics}
	for _, issue := range sortedIssues(report.Issues) {
		out.Issues = append(out.Issues, jsonIssue{
			Category: issue.Category, Severity: issue.Severity.String(), Symbol: issue.Symbol,
			File: issue.Location.File, Line: issue.Location.Line, Column: issue.Location.Column,
			Message: issue.Message, Suggestion: issue.Suggestion, AutoFixable: issue.AutoFixable,
		})
	}
	enc := json.NewEncoder(w)
	if j.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

// CSV renders one header row plus one row per issue, RFC-4180 quoted via
// the standard encoding/csv writer.
type CSV struct{}

func (CSV) Write(w io.Writer, report CodeReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "severity", "symbol", "file", "line", "column", "message", "suggestion"}); err != nil {
		return err
	}
	for _, issue := range sortedIssues(report.Issues) {
		row := []string{
			issue.Category, issue.Severity.String(), issue.Symbol, issue.Location.File,
			fmt.Sprintf("%d", issue.Location.Line), fmt.Sprintf("%d", issue.Location.Column),
			issue.Message, issue.Suggestion,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// HTML renders a self-contained document grouped by category. No
// templating library fits this use case, so this one reporter is built on
// the standard library's html/template (see DESIGN.md).
type HTML struct{}

var htmlDoc = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Unused Code Analysis</title></head>
<body>
<h1>Unused Code Analysis</h1>
<p>{{.Summary}}</p>
{{range .Groups}}
<h2>{{.Category}} ({{len .Issues}})</h2>
<table border="1" cellspacing="0" cellpadding="4">
<tr><th>Symbol</th><th>File</th><th>Line</th><th>Severity</th><th>Message</th></tr>
{{range .Issues}}<tr><td>{{.Symbol}}</td><td>{{.Location.File}}</td><td>{{.Location.Line}}</td><td>{{.Severity}}</td><td>{{.Message}}</td></tr>
{{end}}</table>
{{end}}
</body></html>
`))

type htmlGroup struct {
	Category string
	Issues   []model.CodeIssue
}

func (HTML) Write(w io.Writer, report CodeReport) error {
	byCategory := make(map[string][]model.CodeIssue)
	var categories []string
	for _, issue := range sortedIssues(report.Issues) {
		if _, ok := byCategory[issue.Category]; !ok {
			categories = append(categories, issue.Category)
		}
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}
	sort.Strings(categories)

	var groups []htmlGroup
	for _, c := range categories {
		groups = append(groups, htmlGroup{Category: c, Issues: byCategory[c]})
	}

	return htmlDoc.Execute(w, struct {
		Summary string
		Groups  []htmlGroup
	}{
		Summary: Summary(report.Statistics, report.Issues),
		Groups:  groups,
	})
}

func sortedIssues(issues []model.CodeIssue) []model.CodeIssue {
	out := append([]model.CodeIssue(nil), issues...)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// ForFormat resolves a --format flag value to a Reporter. html is accepted
// only for the code command; the CLI runner enforces that restriction, not
// this package.
func ForFormat(format string) (Reporter, bool) {
	switch format {
	case "console", "":
		return Console{}, true
	case "json":
		return JSON{Indent: true}, true
	case "csv":
		return CSV{}, true
	case "html":
		return HTML{}, true
	default:
		return nil, false
	}
}
