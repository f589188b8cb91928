package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	kpool "github.com/mdaops/axon/pkg/db/postgres/pool"
	"github.com/mdaops/axon/pkg/db/postgres/schema"
	kio "github.com/mdaops/axon/pkg/io"
	"github.com/mdaops/axon/pkg/utils/retry"
	"github.com/mdaops/axon/pkg/utils/try"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Host     string `flag:"host" help:"The host of the database."`
	Port     int    `flag:"port" help:"The port of the database."`
	User     string `flag:"user" help:"The user of the database."`
	Password string `flag:"pass" help:"The password of the database."`
	Database string `flag:"database" help:"The name of the database."`

	Schema string `flag:"schema" help:"The path to the schema repository directory."`
}

const ARG_SCHEMA_DEST = "ARG_SCHEMA_DEST"

func main() {
	logger := log.Default()
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt, os.Kill,
	)
	defer cancel()

	port := 5432
	if sp := os.Getenv("DB_PORT"); sp != "" {
		p, err := strconv.Atoi(sp)
		if err == nil {
			port = p
		}
	}

	cmd := try.To(flarc.NewCommand(
		"artifact registry schema upgrader",
		Flag{
			Host:     os.Getenv("DB_HOST"),
			Port:     port,
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Database: os.Getenv("DB_NAME"),

			Schema: os.Getenv("AXON_SCHEMA"),
		},
		flarc.Args{
			{
				Name: ARG_SCHEMA_DEST, Help: "The schema files are copied to these directories.",
				Required: false, Repeatable: false,
			},
		},
		func(ctx context.Context, c flarc.Commandline[Flag], a []any) error {
			flags := c.Flags()

			dest := c.Args()[ARG_SCHEMA_DEST]
			if len(dest) != 0 {
				logger.Println("copying schema files...")
				if err := kio.DirCopy(flags.Schema, dest[0]); err != nil {
					return err
				}
			}

			dburi := fmt.Sprintf(
				"postgres://%s:%s@%s:%d/%s",
				flags.User, flags.Password, flags.Host, flags.Port, flags.Database,
			)

			// As an init container, this can start before postgres does.
			pool, err := retry.Blocking(
				ctx, retry.StaticBackoff(3*time.Second),
				func() (kpool.Pool, error) {
					p, err := kpool.New(ctx, dburi)
					if err != nil {
						logger.Printf("database is not ready: %s", err)
						return nil, retry.ErrRetry
					}
					return p, nil
				},
			)
			if err != nil {
				return err
			}
			defer pool.Close()

			return schema.New(pool, flags.Schema).Upgrade(ctx)
		},
	)).OrFatal(logger)

	os.Exit(flarc.Run(ctx, cmd))
}
