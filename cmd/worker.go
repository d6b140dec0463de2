package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vibast-solutions/ms-go-portfolio/app/mail"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the mail queue worker",
	Long:  `Consume the Redis mail queue, render each job's template and deliver it over SMTP.`,
	Run:   runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := newRedisClient(cfg.Redis)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure redis")
	}
	defer redisClient.Close()

	if err = redisClient.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Fatal("Failed to reach redis")
	}

	worker, err := newMailWorker(cfg, mail.NewQueue(redisClient, cfg.Queue))
	if err != nil {
		logrus.WithError(err).Fatal("Failed to build mail worker")
	}

	worker.Run(ctx, cfg.Queue.Concurrency, cfg.Queue.PollInterval)
}
