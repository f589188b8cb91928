package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/mdaops/axon/cmd/axon/subcommands/common"
	subdataset "github.com/mdaops/axon/cmd/axon/subcommands/dataset"
	subdoctor "github.com/mdaops/axon/cmd/axon/subcommands/doctor"
	sublint "github.com/mdaops/axon/cmd/axon/subcommands/lint"
	"github.com/mdaops/axon/cmd/axon/subcommands/logger"
	subver "github.com/mdaops/axon/cmd/axon/subcommands/version"
	subworkflow "github.com/mdaops/axon/cmd/axon/subcommands/workflow"
	"github.com/mdaops/axon/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	lint := try.To(sublint.New()).OrFatal(logger)
	doctor := try.To(subdoctor.New()).OrFatal(logger)
	dataset := try.To(subdataset.New()).OrFatal(logger)
	workflow := try.To(subworkflow.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	axon := try.To(
		flarc.NewCommandGroup(
			"Axon MLOps cluster tooling",
			cf,
			flarc.WithSubcommand("lint", lint),
			flarc.WithSubcommand("doctor", doctor),
			flarc.WithSubcommand("dataset", dataset),
			flarc.WithSubcommand("workflow", workflow),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, axon, flarc.WithHelp(true)))
}
