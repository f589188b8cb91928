package sample

import (
	"context"
	"fmt"
	"log"

	"github.com/mdaops/axon/cmd/axon/subcommands/common"
	"github.com/mdaops/axon/internal/dataset"
	"github.com/youta-t/flarc"
)

const (
	ARGS_IMAGES = "IMAGES"
	ARGS_LABELS = "LABELS"
)

type Flag struct {
	N    int    `flag:"n" metavar:"COUNT" help:"how many items to render."`
	Dest string `flag:"dest" alias:"d" metavar:"DIR" help:"directory the PNG files are written into."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Render the first items of an IDX dataset as PNG files.",
		Flag{
			N:    10,
			Dest: "data/samples",
		},
		flarc.Args{
			{
				Name: ARGS_IMAGES, Required: true,
				Help: "IDX image file (may be gzipped).",
			},
			{
				Name: ARGS_LABELS, Required: true,
				Help: "IDX label file (may be gzipped).",
			},
		},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
Render the first COUNT items as grayscale PNG files, named like
00_ankle-boot.png, for eyeballing a dataset before training on it.
`),
	)
}

func Task() common.TaskWithCommonFlag[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ common.CommonFlags,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		args := cl.Args()
		flags := cl.Flags()

		d, err := dataset.Load(
			args[ARGS_IMAGES][0], args[ARGS_LABELS][0],
			dataset.FashionMNISTClasses,
		)
		if err != nil {
			return err
		}

		written, err := dataset.ExportSamples(d, flags.N, flags.Dest)
		if err != nil {
			return err
		}
		for _, w := range written {
			fmt.Fprintln(cl.Stdout(), w)
		}
		logger.Printf("%d samples written into %s", len(written), flags.Dest)
		return nil
	}
}
