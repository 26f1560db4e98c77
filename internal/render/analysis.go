package render

import (
	"fmt"
	"strings"

	"gdict/internal/domain"
)

// Analysis renders a writing analysis as Markdown
func Analysis(a *domain.GrammarAnalysis) string {
	if a == nil {
		return ""
	}

	var b strings.Builder
	frontMatter(&b,
		"title", "Writing analysis",
		"kind", "analysis",
		"status", a.AnalysisStatus,
		"class", string(StatusClass(a.AnalysisStatus)),
		"tone", a.Tone,
	)

	b.WriteString("# Writing analysis\n\n")
	fmt.Fprintf(&b, "**Status:** %s · **Tone:** %s\n\n", escape(a.AnalysisStatus), escape(a.Tone))
	if a.OverallSummary != "" {
		fmt.Fprintf(&b, "%s\n\n", escape(a.OverallSummary))
	}

	if len(a.Errors) > 0 {
		fmt.Fprintf(&b, "## Errors (%d)\n\n", len(a.Errors))
		for i, e := range a.Errors {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, escape(e.Type))
			fmt.Fprintf(&b, "~~%s~~ → **%s**\n\n", escape(e.ErrorText), escape(e.Suggestion))
			if e.Explanation != "" {
				fmt.Fprintf(&b, "%s\n\n", escape(e.Explanation))
			}
		}
	}

	if a.SuggestedRevision != "" {
		b.WriteString("## Suggested revision\n\n")
		for _, line := range strings.Split(strings.TrimSpace(a.SuggestedRevision), "\n") {
			fmt.Fprintf(&b, "> %s\n", escape(line))
		}
	}

	return b.String()
}
