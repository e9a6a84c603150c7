package report

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"

	"github.com/mvp-joe/reqext/internal/lint"
	"github.com/mvp-joe/reqext/internal/rules"
)

// JSON writes a machine-readable report.
type JSON struct {
	BaseDir string
	// RunID identifies the run; a random UUID is used when empty.
	RunID string
}

// JSONReport is the top-level JSON document.
type JSONReport struct {
	RunID               string           `json:"run_id"`
	Results             []JSONFileResult `json:"results"`
	ErrorCount          int              `json:"error_count"`
	WarningCount        int              `json:"warning_count"`
	FixableErrorCount   int              `json:"fixable_error_count"`
	FixableWarningCount int              `json:"fixable_warning_count"`
	FixedFileCount      int              `json:"fixed_file_count"`
	FailedFileCount     int              `json:"failed_file_count"`
}

// JSONFileResult holds one file's diagnostics.
type JSONFileResult struct {
	FilePath string        `json:"file_path"`
	Messages []JSONMessage `json:"messages"`
	Fixed    bool          `json:"fixed"`
	Output   *string       `json:"output,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// JSONMessage is one diagnostic. Severity is 1 for warnings and 2 for errors.
type JSONMessage struct {
	RuleID   string   `json:"rule_id"`
	Severity int      `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	NodeType string   `json:"node_type"`
	Fix      *JSONFix `json:"fix,omitempty"`
}

// JSONFix is a byte-range replacement.
type JSONFix struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

func (j *JSON) Format(w io.Writer, res *lint.Result) error {
	runID := j.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	c := res.Counts()
	report := JSONReport{
		RunID:               runID,
		Results:             make([]JSONFileResult, 0, len(res.Files)),
		ErrorCount:          c.Errors,
		WarningCount:        c.Warnings,
		FixableErrorCount:   c.FixableErrors,
		FixableWarningCount: c.FixableWarnings,
		FixedFileCount:      c.FixedFiles,
		FailedFileCount:     c.FailedFiles,
	}

	for _, f := range res.Files {
		fr := JSONFileResult{
			FilePath: displayPath(j.BaseDir, f.Path),
			Messages: make([]JSONMessage, 0, len(f.Diagnostics)),
			Fixed:    f.Fixed,
		}
		if f.Fixed {
			out := string(f.Output)
			fr.Output = &out
		}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}
		for _, d := range f.Diagnostics {
			msg := JSONMessage{
				RuleID:   d.Rule,
				Severity: severityNumber(d.Severity),
				Message:  d.Message,
				Line:     d.Line,
				Column:   d.Column,
				NodeType: d.Form.String(),
			}
			if d.Fix != nil {
				msg.Fix = &JSONFix{Range: [2]int{d.Fix.Start, d.Fix.End}, Text: d.Fix.Text}
			}
			fr.Messages = append(fr.Messages, msg)
		}
		report.Results = append(report.Results, fr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func severityNumber(s rules.Severity) int {
	switch s {
	case rules.SeverityError:
		return 2
	case rules.SeverityWarn:
		return 1
	default:
		return 0
	}
}
