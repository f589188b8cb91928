package stop

import (
	"context"
	"fmt"
	"log"

	"github.com/mdaops/axon/cmd/axon/subcommands/common"
	"github.com/mdaops/axon/pkg/cluster/argo"
	kcc "github.com/mdaops/axon/pkg/configs/cluster"
	"github.com/youta-t/flarc"
)

const ARGS_NAME = "NAME"

type Flag struct {
	Namespace string `flag:"namespace" alias:"n" metavar:"NAMESPACE" help:"namespace of the workflow. Defaults to the pipeline namespace."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Stop a running workflow.",
		Flag{},
		flarc.Args{
			{
				Name: ARGS_NAME, Required: true,
				Help: "name of the workflow to be stopped.",
			},
		},
		common.NewTask(Task()),
	)
}

func Task() common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		conf *kcc.Config,
		sec kcc.Secrets,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		flags := cl.Flags()
		namespace := flags.Namespace
		if namespace == "" {
			namespace = conf.PipelineNamespace
		}

		client, err := argo.NewClient(
			conf.Argo.URL("https"), argo.WithToken(sec.ArgoToken),
		)
		if err != nil {
			return err
		}

		wf, err := client.StopWorkflow(ctx, namespace, cl.Args()[ARGS_NAME][0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cl.Stdout(), "%s: %s\n", wf.Metadata.Name, wf.Status.Phase)
		return nil
	}
}
