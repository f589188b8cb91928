package layout

import (
	"context"
	"fmt"
	"log"

	"github.com/mdaops/axon/cmd/axon/subcommands/common"
	"github.com/mdaops/axon/internal/repolint"
	"github.com/youta-t/flarc"
)

const ARGS_DIR = "DIR"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Lint the base/overlays layout of a deployment directory.",
		struct{}{},
		flarc.Args{
			{
				Name: ARGS_DIR, Required: true,
				Help: "deployment directory holding base/ and overlays/.",
			},
		},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
Check that a deployment directory is laid out as

	DIR/
	  base/
	    kustomization.yaml
	    ...
	  overlays/
	    <env>/
	      kustomization.yaml
	      ...

with nothing else beside base/ and overlays/.
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
		dir := cl.Args()[ARGS_DIR][0]

		findings, err := repolint.LintLayout(dir)
		if err != nil {
			return err
		}

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
