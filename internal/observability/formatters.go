// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/profile-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobDescription outputs a human-readable summary of the analyzed job description.
func (p *Printer) PrintJobDescription(jd *types.JobDescription) {
	if jd == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:  %s\n", jd.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", jd.Title))
	sb.WriteString("\n")

	if len(jd.RequiredSkills) > 0 {
		sb.WriteString("Required Skills:\n")
		count := min(len(jd.RequiredSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			req := jd.RequiredSkills[i]
			sb.WriteString(fmt.Sprintf("  • %s (%.2f)\n", req.Skill, req.Importance))
		}
		if len(jd.RequiredSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(jd.RequiredSkills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(jd.PreferredSkills) > 0 {
		sb.WriteString("Preferred Skills:\n")
		count := min(len(jd.PreferredSkills), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", jd.PreferredSkills[i].Skill))
		}
		if len(jd.PreferredSkills) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(jd.PreferredSkills)-3))
		}
		sb.WriteString("\n")
	}

	if len(jd.ATSKeywords) > 0 {
		count := min(len(jd.ATSKeywords), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("ATS Keywords: %s", strings.Join(jd.ATSKeywords[:count], ", ")))
		if len(jd.ATSKeywords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" (+%d more)", len(jd.ATSKeywords)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	p.printBox("Job Description", sb.String())
}

// PrintEditPlan outputs a summary of the generated edit plan.
func (p *Printer) PrintEditPlan(plan *types.EditPlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder

	if plan.Summary != "" {
		sb.WriteString(plan.Summary)
		sb.WriteString("\n\n")
	}

	sb.WriteString(fmt.Sprintf("Actions: %d\n", len(plan.Actions)))
	count := min(len(plan.Actions), maxItemsToShow)
	for i := 0; i < count; i++ {
		action := plan.Actions[i]
		sb.WriteString(fmt.Sprintf("  • [%s] %s\n", action.Type, action.Target.String()))
	}
	if len(plan.Actions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(plan.Actions)-maxItemsToShow))
	}

	if len(plan.KeywordsToAdd) > 0 {
		sb.WriteString(fmt.Sprintf("Keywords to add: %s\n", strings.Join(plan.KeywordsToAdd, ", ")))
	}
	if plan.EstimatedImprovement > 0 {
		sb.WriteString(fmt.Sprintf("Estimated improvement: %.0f%%\n", plan.EstimatedImprovement*100))
	}

	p.printBox("Edit Plan", sb.String())
}

// PrintCompletenessReport outputs the coverage achieved by the edit pass.
func (p *Printer) PrintCompletenessReport(report *types.CompletenessReport) {
	if report == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Units identified: %d\n", report.IdentifiedCount))
	sb.WriteString(fmt.Sprintf("Units edited:     %d\n", report.EditedCount))
	sb.WriteString(fmt.Sprintf("Score:            %.2f\n", report.Score))

	if len(report.Missing) > 0 {
		sb.WriteString("\nMissing:\n")
		count := min(len(report.Missing), maxItemsToShow)
		paths := report.MissingPaths()
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", paths[i]))
		}
		if len(report.Missing) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Missing)-maxItemsToShow))
		}
	}

	p.printBox("Completeness", sb.String())
}
