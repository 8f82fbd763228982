package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/odyssey-erp/custom-accounting/jobs"
)

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TriggerOptions tune the payload of manually triggered jobs.
type TriggerOptions struct {
	Company      string
	Retention    time.Duration
	LookbackDays int
}

// BuildTask creates the task for a supported job name.
func BuildTask(name string, opts TriggerOptions) (*asynq.Task, error) {
	switch name {
	case jobs.TaskBalancesRefresh:
		return jobs.NewBalancesRefreshTask(jobs.BalancesRefreshPayload{Company: opts.Company, Reason: "manual"})
	case jobs.TaskIdempotencyCleanup:
		return jobs.NewIdempotencyCleanupTask(opts.Retention)
	case jobs.TaskGLIntegrity:
		return jobs.NewGLIntegrityTask(opts.LookbackDays)
	default:
		return nil, fmt.Errorf("jobs cli: unsupported job %s", name)
	}
}

// Trigger enqueues a supported job by name.
func Trigger(ctx context.Context, client TaskEnqueuer, name string, opts TriggerOptions) (*asynq.TaskInfo, error) {
	task, err := BuildTask(name, opts)
	if err != nil {
		return nil, err
	}
	return client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
}

func newJobsCommand() *cobra.Command {
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Run background jobs on demand",
	}
	cmd.PersistentFlags().StringVar(&redisAddr, "redis", envOr("REDIS_ADDR", "127.0.0.1:6379"), "Redis address used by the worker queue")

	var opts TriggerOptions
	trigger := &cobra.Command{
		Use:       "trigger <job>",
		Short:     "Enqueue a job for the worker",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{jobs.TaskBalancesRefresh, jobs.TaskIdempotencyCleanup, jobs.TaskGLIntegrity},
		RunE: func(cmd *cobra.Command, args []string) error {
			client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
			defer client.Close()
			info, err := Trigger(cmd.Context(), client, args[0], opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s as %s on queue %s\n", info.Type, info.ID, info.Queue)
			return err
		},
	}
	trigger.Flags().StringVar(&opts.Company, "company", "", "company whose balances are refreshed")
	trigger.Flags().DurationVar(&opts.Retention, "retention", jobs.DefaultIdempotencyRetention, "idempotency key retention")
	trigger.Flags().IntVar(&opts.LookbackDays, "lookback-days", 0, "GL integrity lookback in days (0 uses the job default)")

	cmd.AddCommand(trigger)
	return cmd
}
