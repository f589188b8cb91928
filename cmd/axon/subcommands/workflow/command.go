package workflow

import (
	workflow_list "github.com/mdaops/axon/cmd/axon/subcommands/workflow/list"
	workflow_stop "github.com/mdaops/axon/cmd/axon/subcommands/workflow/stop"
	workflow_submit "github.com/mdaops/axon/cmd/axon/subcommands/workflow/submit"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	list, err := workflow_list.New()
	if err != nil {
		return nil, err
	}
	submit, err := workflow_submit.New()
	if err != nil {
		return nil, err
	}
	stop, err := workflow_stop.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Consume the Argo Workflows server.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("submit", submit),
		flarc.WithSubcommand("stop", stop),
	)
}
