package report

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/mvp-joe/reqext/internal/rules"
)

// RuleEntry is one row of the rule table.
type RuleEntry struct {
	Name        string
	Severity    rules.Severity
	Fixable     string
	Description string
}

// RuleEntries lists every registered rule with its configured severity.
func RuleEntries(severities map[string]rules.Severity) []RuleEntry {
	entries := make([]RuleEntry, 0, len(rules.All()))
	for _, r := range rules.All() {
		fixable := "yes"
		if r.Name() == rules.RequireExtensionsName {
			fixable = "unless ?query"
		}
		entries = append(entries, RuleEntry{
			Name:        r.Name(),
			Severity:    severities[r.Name()],
			Fixable:     fixable,
			Description: r.Description(),
		})
	}
	return entries
}

// WriteRulesTable renders entries as a table.
func WriteRulesTable(w io.Writer, entries []RuleEntry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rule", "Severity", "Fixable", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for _, e := range entries {
		table.Append([]string{e.Name, e.Severity.String(), e.Fixable, e.Description})
	}

	table.Render()
}
