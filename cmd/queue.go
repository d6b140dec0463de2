package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/mail"

	"github.com/spf13/cobra"
)

var failedLimit int64

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect the mail queue",
}

var queueFailedCmd = &cobra.Command{
	Use:   "failed",
	Short: "List mail jobs that exhausted their attempts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withQueue(cmd.Context(), func(ctx context.Context, queue *mail.Queue) error {
			counts, err := queue.Counts(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("wait=%d active=%d delayed=%d failed=%d\n", counts["wait"], counts["active"], counts["delayed"], counts["failed"])

			jobs, err := queue.Failed(ctx, failedLimit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tATTEMPTS\tCREATED\tLAST ERROR")
			for _, job := range jobs {
				fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\t%s\n", job.ID, job.Name, job.Attempts, job.MaxAttempts, job.CreatedAt.Format(time.RFC3339), job.LastError)
			}
			return w.Flush()
		})
	},
}

var queueRetryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Move every failed mail job back to the queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withQueue(cmd.Context(), func(ctx context.Context, queue *mail.Queue) error {
			retried, err := queue.RetryFailed(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("re-queued %d failed job(s)\n", retried)
			return nil
		})
	},
}

func init() {
	queueFailedCmd.Flags().Int64Var(&failedLimit, "limit", 50, "maximum number of failed jobs to list")
	queueCmd.AddCommand(queueFailedCmd, queueRetryCmd)
	rootCmd.AddCommand(queueCmd)
}

func withQueue(ctx context.Context, fn func(context.Context, *mail.Queue) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	redisClient, err := newRedisClient(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	return fn(ctx, mail.NewQueue(redisClient, cfg.Queue))
}
