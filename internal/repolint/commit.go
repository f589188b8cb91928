package repolint

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// commit subject should fit in `git log --oneline` output.
	MaxSubjectLength = 72

	// body lines stay readable without horizontal scrolling.
	MaxBodyLineLength = 100
)

// subject shape: "type(scope): summary". scope is optional.
var subjectPattern = regexp.MustCompile(
	`^(feat|fix|docs|style|refactor|perf|test|build|ci|chore|revert)(\([a-z0-9][a-z0-9-]*\))?!?: \S`,
)

// LintCommitMessage checks one commit message against the
// repository's commit conventions.
//
// Lines starting with "#" are comments left by git and are ignored.
func LintCommitMessage(message string) []Finding {
	found := []Finding{}

	lines := []string{}
	for _, l := range strings.Split(message, "\n") {
		if strings.HasPrefix(l, "#") {
			continue
		}
		lines = append(lines, l)
	}
	// trailing blank lines do not matter.
	for 0 < len(lines) && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 0 {
		return []Finding{{
			Line: 1, Rule: RuleSubjectFormat, Message: "commit message is empty",
		}}
	}

	subject := lines[0]
	if MaxSubjectLength < len(subject) {
		found = append(found, Finding{
			Line: 1, Rule: RuleSubjectLength,
			Message: fmt.Sprintf(
				"subject is %d characters (max: %d)", len(subject), MaxSubjectLength,
			),
		})
	}
	if !subjectPattern.MatchString(subject) {
		found = append(found, Finding{
			Line: 1, Rule: RuleSubjectFormat,
			Message: `subject should be formatted as "type(scope): summary"`,
		})
	}
	if strings.HasSuffix(strings.TrimSpace(subject), ".") {
		found = append(found, Finding{
			Line: 1, Rule: RuleSubjectPeriod,
			Message: "subject should not end with a period",
		})
	}

	if len(lines) == 1 {
		return found
	}

	if strings.TrimSpace(lines[1]) != "" {
		found = append(found, Finding{
			Line: 2, Rule: RuleBodyBlankLine,
			Message: "subject and body should be separated by a blank line",
		})
	}

	for nth, l := range lines[1:] {
		if MaxBodyLineLength < len(l) {
			found = append(found, Finding{
				Line: nth + 2, Rule: RuleBodyLineLength,
				Message: fmt.Sprintf(
					"body line is %d characters (max: %d)", len(l), MaxBodyLineLength,
				),
			})
		}
	}

	return found
}
