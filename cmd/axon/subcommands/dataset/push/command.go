package push

import (
	"context"
	"fmt"
	"log"

	"github.com/mdaops/axon/cmd/axon/subcommands/common"
	"github.com/mdaops/axon/internal/dataset"
	"github.com/mdaops/axon/pkg/cluster/objectstore"
	kcc "github.com/mdaops/axon/pkg/configs/cluster"
	kpool "github.com/mdaops/axon/pkg/db/postgres/pool"
	"github.com/mdaops/axon/pkg/registry"
	"github.com/youta-t/flarc"
)

const ARGS_DIR = "DIR"

type Flag struct {
	Name    string `flag:"name" metavar:"NAME" help:"artifact name to record."`
	Version string `flag:"version" metavar:"VERSION" help:"artifact version to record."`
	Bucket  string `flag:"bucket" metavar:"BUCKET" help:"bucket the archive is stored into."`
	DBUser  string `flag:"db-user" metavar:"USER" help:"postgres user of the artifact registry."`
	DBName  string `flag:"db-name" metavar:"DATABASE" help:"postgres database of the artifact registry."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Archive a directory into the object store and record it as an artifact.",
		Flag{
			Name:    "",
			Version: "",
			Bucket:  "artifacts",
			DBUser:  "axon",
			DBName:  "axon",
		},
		flarc.Args{
			{
				Name: ARGS_DIR, Required: true,
				Help: "directory to be archived and pushed.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Pack DIR into a tar.gz, store it as s3://BUCKET/NAME/VERSION.tar.gz
and record name, version, location and sha256 digest in the
artifact registry.

Credentials come from environment: AXON_S3_ACCESS_KEY,
AXON_S3_SECRET_KEY and AXON_DB_PASSWORD.

To push rendered samples:

	{{ .Command }} --name fashion-mnist-samples --version v1 data/samples
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
		if flags.Name == "" || flags.Version == "" {
			return fmt.Errorf("%w: --name and --version are required", flarc.ErrUsage)
		}

		store, err := objectstore.New(
			conf.S3.Addr(), sec.S3AccessKey, sec.S3SecretKey,
		)
		if err != nil {
			return err
		}

		pool, err := kpool.New(ctx, conf.DBURI(flags.DBUser, sec, flags.DBName))
		if err != nil {
			return fmt.Errorf("%w: cannot reach the artifact registry", err)
		}
		defer pool.Close()

		artifact, err := dataset.Push(
			ctx, store, registry.New(pool),
			flags.Bucket, flags.Name, flags.Version,
			cl.Args()[ARGS_DIR][0],
		)
		if err != nil {
			return err
		}

		fmt.Fprintln(cl.Stdout(), artifact.URI)
		logger.Printf(
			"recorded %s@%s (sha256:%s, %d bytes)",
			artifact.Name, artifact.Version, artifact.Digest, artifact.Size,
		)
		return nil
	}
}
