package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/reattach/pkg/domain"
)

// ReportMarkdown formats a run report as Markdown: the summary line, then a
// table of item outcomes and any diagnostics.
func ReportMarkdown(r *domain.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", Sanitize(r.Message))
	fmt.Fprintf(&sb, "Run `%s` on `%s` (%s)\n\n", r.ID, r.DocumentID, r.Mode)

	if len(r.Items) > 0 {
		sb.WriteString("| Node | Name | Outcome | Instance |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, it := range r.Items {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				cell(it.NodeID), cell(it.NodeName), outcomeLabel(it.Outcome), cell(it.InstanceID))
		}
		sb.WriteString("\n")
	}

	if len(r.Diagnostics) > 0 {
		sb.WriteString("### Diagnostics\n\n")
		for _, d := range r.Diagnostics {
			fmt.Fprintf(&sb, "- %s\n", Sanitize(d))
		}
	}
	return sb.String()
}

func outcomeLabel(o domain.Outcome) string {
	switch o {
	case domain.OutcomeReattached:
		return "✅ reattached"
	case domain.OutcomeCopyFailed:
		return "⚠️ copy failed"
	}
	return "⏭️ " + strings.TrimPrefix(string(o), "skipped_")
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(Sanitize(s), "|", "\\|")
}
