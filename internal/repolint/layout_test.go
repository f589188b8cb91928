package repolint_test

import (
	"testing"

	"github.com/mdaops/axon/internal/repolint"
)

func TestLintLayout(t *testing.T) {
	t.Run("a conforming deployment root passes", func(t *testing.T) {
		found, err := repolint.LintLayout("./testdata/deploy-ok")
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if len(found) != 0 {
			t.Errorf("unexpected findings: %v", found)
		}
	})

	t.Run("missing base, empty overlays and stray entries are reported", func(t *testing.T) {
		found, err := repolint.LintLayout("./testdata/deploy-bad")
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if !hasRule(found, repolint.RuleLayoutBase) {
			t.Errorf("layout/base is not reported: %v", found)
		}
		if !hasRule(found, repolint.RuleLayoutOverlays) {
			t.Errorf("layout/overlays is not reported: %v", found)
		}
		if !hasRule(found, repolint.RuleLayoutStray) {
			t.Errorf("layout/stray-entry is not reported: %v", found)
		}
	})
}

func TestLintManifestTree(t *testing.T) {
	t.Run("it lints every manifest under the root", func(t *testing.T) {
		found, err := repolint.LintManifestTree("./testdata/deploy-ok")
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if len(found) != 0 {
			t.Errorf("unexpected findings: %v", found)
		}
	})
}
