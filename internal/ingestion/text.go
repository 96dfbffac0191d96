// Package ingestion turns a raw job description (pasted text or a posting
// URL) into the requirement sentences the optimizer scores against.
package ingestion

import (
	"regexp"
	"strings"
)

// CleanText cleans and normalizes text content while preserving structure.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = removeExcessiveBlankLines(result)
	return strings.TrimSpace(result)
}

var spaceRun = regexp.MustCompile(`\s+`)

// cleanLine cleans a single line while preserving bullets and headings.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	// Keep markdown headings as-is, without leading spaces
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	if isBulletLine(line) {
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		normalized := spaceRun.ReplaceAllString(trimmed, " ")
		if indent > 0 {
			return strings.Repeat(" ", indent) + normalized
		}
		return normalized
	}

	return spaceRun.ReplaceAllString(trimmed, " ")
}

// isBulletLine checks if a line is a bullet list item.
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// removeExcessiveBlankLines reduces consecutive blank lines to max 2.
func removeExcessiveBlankLines(content string) string {
	re := regexp.MustCompile(`\n\n\n+`)
	return re.ReplaceAllString(content, "\n\n")
}

// MaxRequirements caps how many requirement sentences scoring considers.
const MaxRequirements = 40

// minRequirementWords filters out fragments like "Benefits:" that carry no
// scoring signal.
const minRequirementWords = 3

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)
var bulletPrefix = regexp.MustCompile(`^[-*•·]\s+`)

// SplitRequirements splits a cleaned job description into requirement
// sentences. Bullet lines count one requirement each; prose paragraphs are
// split on sentence boundaries. Duplicates are dropped, order preserved.
func SplitRequirements(text string) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(s string) {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "."))
		if len(strings.Fields(s)) < minRequirementWords {
			return
		}
		key := strings.ToLower(s)
		if seen[key] || len(out) >= MaxRequirements {
			return
		}
		seen[key] = true
		out = append(out, s)
	}

	for _, line := range strings.Split(CleanText(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if isBulletLine(line) {
			add(bulletPrefix.ReplaceAllString(line, ""))
			continue
		}
		for _, sentence := range sentenceEnd.Split(line, -1) {
			add(sentence)
		}
	}
	return out
}
