package submit

import (
	"context"
	"fmt"
	"log"

	"github.com/mdaops/axon/cmd/axon/subcommands/common"
	"github.com/mdaops/axon/pkg/cluster/argo"
	kcc "github.com/mdaops/axon/pkg/configs/cluster"
	ptr "github.com/mdaops/axon/pkg/utils/pointer"
	"github.com/youta-t/flarc"
)

const ARGS_TEMPLATE = "TEMPLATE"

type Flag struct {
	Namespace    string   `flag:"namespace" alias:"n" metavar:"NAMESPACE" help:"namespace to submit into. Defaults to the pipeline namespace."`
	Params       []string `flag:"param" alias:"p" metavar:"KEY=VALUE..." help:"workflow parameter. Repeatable."`
	GenerateName string   `flag:"generate-name" metavar:"PREFIX" help:"prefix of the generated workflow name."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Submit a workflow from a WorkflowTemplate.",
		Flag{},
		flarc.Args{
			{
				Name: ARGS_TEMPLATE, Required: true,
				Help: "name of the WorkflowTemplate to be submitted.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Submit a workflow from a WorkflowTemplate already deployed in the
pipeline namespace. Axon does not define workflows; it only asks
the argo server to run them.

To run a training pipeline with a parameter:

	{{ .Command }} train-image-classifier -p epochs=20
`),
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

		sreq := argo.SubmitRequest{
			ResourceKind: "WorkflowTemplate",
			ResourceName: cl.Args()[ARGS_TEMPLATE][0],
		}
		if 0 < len(flags.Params) || flags.GenerateName != "" {
			sreq.SubmitOptions = ptr.Ref(argo.SubmitOptions{
				GenerateName: flags.GenerateName,
				Parameters:   flags.Params,
			})
		}

		wf, err := client.SubmitWorkflow(ctx, namespace, sreq)
		if err != nil {
			return err
		}

		fmt.Fprintln(cl.Stdout(), wf.Metadata.Name)
		logger.Printf("submitted %s/%s", wf.Metadata.Namespace, wf.Metadata.Name)
		return nil
	}
}
