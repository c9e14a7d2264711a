package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	queryTableRegex      = regexp.MustCompile(`(?i)\b(?:FROM|INTO|UPDATE)\s+([a-z_][a-z0-9_]*)`)
	queryReturningRegex  = regexp.MustCompile(`(?i)\bRETURNING\s+[a-z0-9_,\s]+$`)
)

// formatDBQueryForTrace renders a statement as "<table>: <statement>" so
// spans group by repository table. Long RETURNING column lists collapse.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = queryReturningRegex.ReplaceAllString(normalized, "RETURNING *")
	if table := queryTable(normalized); table != "" {
		normalized = table + ": " + normalized
	}
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}

func queryTable(query string) string {
	match := queryTableRegex.FindStringSubmatch(query)
	if len(match) < 2 {
		return ""
	}
	return strings.ToLower(match[1])
}
