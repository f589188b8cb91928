package lint

import (
	lint_commits "github.com/mdaops/axon/cmd/axon/subcommands/lint/commits"
	lint_layout "github.com/mdaops/axon/cmd/axon/subcommands/lint/layout"
	lint_manifests "github.com/mdaops/axon/cmd/axon/subcommands/lint/manifests"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	commits, err := lint_commits.New()
	if err != nil {
		return nil, err
	}
	manifests, err := lint_manifests.New()
	if err != nil {
		return nil, err
	}
	layout, err := lint_layout.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Enforce the repository conventions.",
		struct{}{},
		flarc.WithSubcommand("commits", commits),
		flarc.WithSubcommand("manifests", manifests),
		flarc.WithSubcommand("layout", layout),
	)
}
