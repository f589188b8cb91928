package manifests

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mdaops/axon/cmd/axon/subcommands/common"
	"github.com/mdaops/axon/internal/repolint"
	"github.com/mdaops/axon/pkg/utils/slices"
	"github.com/youta-t/flarc"
)

const ARGS_PATH = "PATH"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Lint kubernetes manifests.",
		struct{}{},
		flarc.Args{
			{
				Name: ARGS_PATH, Required: true, Repeatable: true,
				Help: "manifest files or directories to be linted. Directories are walked recursively.",
			},
		},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
Lint kubernetes manifests against the repository conventions:
no comments, apiVersion/kind/metadata first, decodable against
the kubernetes schema and image references pinned to a tag or
digest (never :latest).

kustomization.yaml files are skipped when walking directories.

To lint a deployment tree:

	{{ .Command }} deploy/
`),
	)
}

func Task() common.TaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		perPath, err := slices.MapUntilError(
			cl.Args()[ARGS_PATH],
			func(p string) ([]repolint.Finding, error) {
				s, err := os.Stat(p)
				if err != nil {
					return nil, err
				}
				if s.IsDir() {
					return repolint.LintManifestTree(p)
				}
				return repolint.LintManifestFile(p)
			},
		)
		if err != nil {
			return err
		}
		findings := slices.Concat(perPath...)

		repolint.SortFindings(findings)
		for _, f := range findings {
			fmt.Fprintln(cl.Stdout(), f.String())
		}

		if 0 < len(findings) {
			return fmt.Errorf("%d problem(s) found", len(findings))
		}
		logger.Println("ok")
		return nil
	}
}
