package dataset

import (
	dataset_inspect "github.com/mdaops/axon/cmd/axon/subcommands/dataset/inspect"
	dataset_push "github.com/mdaops/axon/cmd/axon/subcommands/dataset/push"
	dataset_sample "github.com/mdaops/axon/cmd/axon/subcommands/dataset/sample"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	inspect, err := dataset_inspect.New()
	if err != nil {
		return nil, err
	}
	sample, err := dataset_sample.New()
	if err != nil {
		return nil, err
	}
	push, err := dataset_push.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Inspect, render and push IDX datasets.",
		struct{}{},
		flarc.WithSubcommand("inspect", inspect),
		flarc.WithSubcommand("sample", sample),
		flarc.WithSubcommand("push", push),
	)
}
