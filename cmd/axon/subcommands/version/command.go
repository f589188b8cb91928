package version

import (
	"context"
	"fmt"

	"github.com/mdaops/axon/pkg/buildtime"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show the version of axon.",
		struct{}{},
		flarc.Args{},
		func(ctx context.Context, c flarc.Commandline[struct{}], a []any) error {
			fmt.Fprintln(c.Stdout(), buildtime.VersionString())
			return nil
		},
	)
}
