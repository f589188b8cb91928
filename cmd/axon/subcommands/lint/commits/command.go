package commits

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mdaops/axon/cmd/axon/subcommands/common"
	"github.com/mdaops/axon/internal/repolint"
	"github.com/youta-t/flarc"
)

const ARGS_MESSAGE_FILE = "MESSAGE_FILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Lint commit messages.",
		struct{}{},
		flarc.Args{
			{
				Name: ARGS_MESSAGE_FILE, Repeatable: true,
				Help: "commit message files to be linted. When omitted, the message is read from stdin.",
			},
		},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
Lint commit messages against the repository conventions:
typed subject within 72 columns, no trailing period, a blank
line before the body, and body lines within 100 columns.

To lint the message being written, from a commit-msg hook:

	{{ .Command }} "$1"

To lint the messages of a revision range:

	git log --format=%B -z main..HEAD | xargs -0 -n1 {{ .Command }} <<< -
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
		files := cl.Args()[ARGS_MESSAGE_FILE]

		total := 0
		if len(files) == 0 {
			message, err := io.ReadAll(cl.Stdin())
			if err != nil {
				return err
			}
			total += report(cl.Stdout(), "<stdin>", repolint.LintCommitMessage(string(message)))
		}
		for _, f := range files {
			message, err := os.ReadFile(f)
			if err != nil {
				return err
			}
			total += report(cl.Stdout(), f, repolint.LintCommitMessage(string(message)))
		}

		if 0 < total {
			return fmt.Errorf("%d problem(s) found", total)
		}
		logger.Println("ok")
		return nil
	}
}

func report(out io.Writer, path string, findings []repolint.Finding) int {
	for _, f := range findings {
		f.Path = path
		fmt.Fprintln(out, f.String())
	}
	return len(findings)
}
