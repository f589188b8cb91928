package doctor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mdaops/axon/cmd/axon/subcommands/common"
	"github.com/mdaops/axon/pkg/cluster/argo"
	"github.com/mdaops/axon/pkg/cluster/feast"
	"github.com/mdaops/axon/pkg/cluster/filer"
	"github.com/mdaops/axon/pkg/cluster/health"
	"github.com/mdaops/axon/pkg/cluster/valkey"
	kcc "github.com/mdaops/axon/pkg/configs/cluster"
	"github.com/mdaops/axon/pkg/kubeutil"
	"github.com/mdaops/axon/pkg/loop"
	"github.com/mdaops/axon/pkg/utils/slices"
	"github.com/youta-t/flarc"
)

// warn this long before the argo token expires.
const tokenExpiryMargin = 72 * time.Hour

type Flag struct {
	Watch     time.Duration `flag:"watch" alias:"w" metavar:"DURATION" help:"re-run the checks every DURATION. When 0, check once."`
	K8s       bool          `flag:"k8s" help:"also verify that the Services are deployed, via the kubernetes API."`
	Namespace string        `flag:"namespace" metavar:"NAMESPACE" help:"namespace of the Services checked by --k8s."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Check that every external service of the cluster answers.",
		Flag{
			Watch:     0,
			K8s:       false,
			Namespace: "mdaops",
		},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Probe the external services this repository consumes: the argo
server, the feast feature server, valkey, the seaweedfs filer and
S3 face, and postgres.

Postgres and S3 are probed by TCP connect only, so no credentials
are needed.

To keep watching:

	{{ .Command }} --watch 10s
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

		argoClient, err := argo.NewClient(
			conf.Argo.URL("https"), argo.WithToken(sec.ArgoToken),
		)
		if err != nil {
			return err
		}
		feastClient := feast.NewClient(conf.Feast.URL("http"))
		filerClient := filer.NewClient(conf.Filer.URL("http"))
		cache := valkey.New(conf.Valkey.Addr())
		defer cache.Close()

		checkers := []health.Checker{
			health.CheckFunc("argo", argoClient.Healthz),
			health.CheckFunc("feast", feastClient.Healthz),
			health.CheckFunc("filer", filerClient.Healthz),
			health.CheckFunc("valkey", cache.Healthz),
			health.TCPCheck("s3", conf.S3.Addr()),
			health.TCPCheck("postgres", conf.Postgres.Addr()),
		}

		warnTokenExpiry(logger, sec.ArgoToken)

		if flags.K8s {
			cs, err := kubeutil.ConnectToK8s()
			if err != nil {
				return fmt.Errorf("%w: --k8s needs a reachable kubernetes API", err)
			}
			checkers = append(checkers, slices.Map(
				[]string{
					conf.Argo.Host, conf.Feast.Host, conf.Valkey.Host,
					conf.Filer.Host, conf.S3.Host, conf.Postgres.Host,
				},
				func(svc string) health.Checker {
					return health.CheckFunc(
						"service/"+svc,
						func(ctx context.Context) error {
							ok, err := kubeutil.ServiceExists(ctx, cs, flags.Namespace, svc)
							if err != nil {
								return err
							}
							if !ok {
								return fmt.Errorf("service %s/%s is not deployed", flags.Namespace, svc)
							}
							return nil
						},
					)
				},
			)...)
		}

		runOnce := func(ctx context.Context) error {
			reports := health.CheckAll(ctx, checkers...)
			for _, r := range reports {
				mark := "ok"
				if !r.Ok {
					mark = "NG"
				}
				fmt.Fprintf(
					cl.Stdout(), "[%s] %-24s (%v)", mark, r.Service, r.Latency,
				)
				if r.Detail != "" {
					fmt.Fprintf(cl.Stdout(), " %s", r.Detail)
				}
				fmt.Fprintln(cl.Stdout())
			}
			if !health.Healthy(reports) {
				return errors.New("some services are unhealthy")
			}
			return nil
		}

		if flags.Watch <= 0 {
			return runOnce(ctx)
		}

		_, err = loop.Start(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (struct{}, loop.Next) {
			if err := runOnce(ctx); err != nil {
				logger.Println(err)
			}
			fmt.Fprintln(cl.Stdout())
			return struct{}{}, loop.Continue(flags.Watch)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

func warnTokenExpiry(logger *log.Logger, token string) {
	if token == "" {
		logger.Println("ARGO_TOKEN is not set. the argo check will run unauthenticated.")
		return
	}

	exp, err := argo.TokenExpiry(token, time.Now())
	switch {
	case errors.Is(err, argo.ErrExpired):
		logger.Printf("ARGO_TOKEN expired at %s. renew it.", exp)
	case errors.Is(err, argo.ErrNotJWT):
		// opaque tokens carry no expiry to warn about
	case err != nil:
		logger.Printf("cannot inspect ARGO_TOKEN: %s", err)
	case exp.IsZero():
		// no expiry
	case time.Until(exp) < tokenExpiryMargin:
		logger.Printf("ARGO_TOKEN expires at %s. renew it soon.", exp)
	}
}
