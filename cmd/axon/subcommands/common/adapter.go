package common

import (
	"context"
	"errors"
	"fmt"
	"log"

	kcc "github.com/mdaops/axon/pkg/configs/cluster"
	"github.com/youta-t/flarc"
)

type TaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task TaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], params []any) error {
		var commonFlag CommonFlags
		found := false
		rest := make([]any, 0, len(params))
		for _, p := range params {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				rest = append(rest, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix(fmt.Sprintf("[%s] ", cl.Fullname()))

		return task(ctx, logger, commonFlag, cl, rest)
	}
}

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	conf *kcc.Config,
	sec kcc.Secrets,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask resolves the cluster config before running task.
//
// When --config is not passed and no config file is found, the
// well-known in-cluster endpoints are used.
func NewTask[T any](task Task[T]) flarc.Task[T] {

	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		conf := kcc.Default()
		if commonFlag.Config != "" {
			c, err := kcc.LoadConfig(commonFlag.Config)
			if err != nil {
				return fmt.Errorf(
					"%w: failed to load cluster config (%s)",
					err, commonFlag.Config,
				)
			}
			conf = c
		}

		return task(ctx, logger, conf, kcc.SecretsFromEnv(), cl, params)
	})
}
