package list

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"text/tabwriter"

	"github.com/mdaops/axon/cmd/axon/subcommands/common"
	"github.com/mdaops/axon/pkg/cluster/argo"
	kcc "github.com/mdaops/axon/pkg/configs/cluster"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Namespace string `flag:"namespace" alias:"n" metavar:"NAMESPACE" help:"namespace to list workflows in. Defaults to the pipeline namespace."`
	JSON      bool   `flag:"json" help:"print the server response as JSON."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List workflows of the pipeline namespace.",
		Flag{},
		flarc.Args{},
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

		wfs, err := client.ListWorkflows(ctx, namespace)
		if err != nil {
			return err
		}

		if flags.JSON {
			enc := json.NewEncoder(cl.Stdout())
			enc.SetIndent("", "  ")
			return enc.Encode(wfs)
		}

		w := tabwriter.NewWriter(cl.Stdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPHASE\tSTARTED\tFINISHED")
		for _, wf := range wfs {
			fmt.Fprintf(
				w, "%s\t%s\t%s\t%s\n",
				wf.Metadata.Name, wf.Status.Phase,
				wf.Status.StartedAt, wf.Status.FinishedAt,
			)
		}
		return w.Flush()
	}
}
