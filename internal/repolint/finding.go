// Package repolint enforces the contribution conventions of this
// monorepo mechanically: commit message shape, kubernetes manifest
// hygiene and the base/overlays deployment layout.
//
// Every rule here is something a reviewer would otherwise have to
// say by hand in review.
package repolint

import (
	"fmt"
	"sort"
)

// Rule identifies one convention.
type Rule string

const (
	RuleSubjectLength  Rule = "commit/subject-length"
	RuleSubjectFormat  Rule = "commit/subject-format"
	RuleSubjectPeriod  Rule = "commit/subject-period"
	RuleBodyBlankLine  Rule = "commit/body-blank-line"
	RuleBodyLineLength Rule = "commit/body-line-length"

	RuleNoComments Rule = "manifest/no-comments"
	RuleFieldOrder Rule = "manifest/field-order"
	RuleDecodable  Rule = "manifest/decodable"
	RuleImageRef   Rule = "manifest/image-ref"

	RuleLayoutBase     Rule = "layout/base"
	RuleLayoutOverlays Rule = "layout/overlays"
	RuleLayoutStray    Rule = "layout/stray-entry"
)

// Finding is one violation at a position.
type Finding struct {
	Path    string
	Line    int
	Rule    Rule
	Message string
}

func (f Finding) String() string {
	if f.Path == "" {
		return fmt.Sprintf("%s: %s", f.Rule, f.Message)
	}
	if f.Line <= 0 {
		return fmt.Sprintf("%s: %s: %s", f.Path, f.Rule, f.Message)
	}
	return fmt.Sprintf("%s:%d: %s: %s", f.Path, f.Line, f.Rule, f.Message)
}

// SortFindings orders findings by path, then line, then rule.
func SortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})
}
