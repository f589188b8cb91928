package inspect

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/mdaops/axon/cmd/axon/subcommands/common"
	"github.com/mdaops/axon/internal/dataset"
	"github.com/youta-t/flarc"
)

const (
	ARGS_IMAGES = "IMAGES"
	ARGS_LABELS = "LABELS"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show size, shape and class distribution of an IDX dataset.",
		struct{}{},
		flarc.Args{
			{
				Name: ARGS_IMAGES, Required: true,
				Help: "IDX image file (may be gzipped), like train-images-idx3-ubyte.gz.",
			},
			{
				Name: ARGS_LABELS, Required: true,
				Help: "IDX label file (may be gzipped), like train-labels-idx1-ubyte.gz.",
			},
		},
		common.NewTaskWithCommonFlag(Task()),
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
		args := cl.Args()

		d, err := dataset.Load(
			args[ARGS_IMAGES][0], args[ARGS_LABELS][0],
			dataset.FashionMNISTClasses,
		)
		if err != nil {
			return err
		}

		stats := d.Stats()
		fmt.Fprintf(cl.Stdout(), "dataset size: %d images\n", stats.Count)
		fmt.Fprintf(cl.Stdout(), "image shape: %dx%d\n", stats.Rows, stats.Cols)

		classes := make([]string, 0, len(stats.PerClass))
		for c := range stats.PerClass {
			classes = append(classes, c)
		}
		sort.Strings(classes)
		for _, c := range classes {
			fmt.Fprintf(cl.Stdout(), "%-16s %d\n", c, stats.PerClass[c])
		}
		return nil
	}
}
