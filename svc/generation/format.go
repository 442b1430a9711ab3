package generation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Character budgets for the search ad fields, in output line order.
var adFieldLimits = []int{30, 30, 90}

var (
	emphasisRe  = regexp.MustCompile(`(\*\*|__)(.+?)(\*\*|__)`)
	blankRunsRe = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
)

// Format tidies provider output for display: emphasis markers are removed,
// runs of blank lines collapse to one, and search ads get their fields cut
// to the ad character limits.
func Format(t Template, content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = emphasisRe.ReplaceAllString(content, "$2")
	content = blankRunsRe.ReplaceAllString(content, "\n\n")
	content = strings.TrimSpace(content)

	if t == TemplateGoogle {
		content = truncateAdFields(content)
	}
	return content
}

// truncateAdFields applies adFieldLimits to the first non-empty lines.
// A "Label: value" line keeps its label and only the value is cut.
// Output that does not follow the expected layout is cut the same way.
func truncateAdFields(content string) string {
	lines := strings.Split(content, "\n")
	field := 0
	for i, line := range lines {
		if field >= len(adFieldLimits) {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		limit := adFieldLimits[field]
		field++

		if label, value, ok := strings.Cut(line, ":"); ok && utf8.RuneCountInString(label) <= 20 {
			lines[i] = label + ": " + truncateRunes(strings.TrimSpace(value), limit)
			continue
		}
		lines[i] = truncateRunes(strings.TrimSpace(line), limit)
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:limit]))
}
