package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/vibast-solutions/ms-go-portfolio/app/mail"
	"github.com/vibast-solutions/ms-go-portfolio/app/service"

	"github.com/spf13/cobra"
)

var seedWelcome bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the seed user if it does not exist",
	Long:  `Create the user configured through SEED_USER_* unless a user with that email already exists.`,
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedWelcome, "welcome", false, "queue a welcome email for the created user")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := newRedisClient(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	authService := newUserAuthService(cfg, db, mail.NewQueue(redisClient, cfg.Queue))

	user, err := authService.CreateUser(ctx, cfg.Seed.Email, cfg.Seed.Password, cfg.Seed.FirstName, cfg.Seed.LastName)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			fmt.Printf("seed user %s already exists\n", cfg.Seed.Email)
			return nil
		}
		return err
	}
	fmt.Printf("created seed user %s (%s)\n", user.Email, user.ID)

	if seedWelcome {
		if err = authService.SendWelcomeEmail(ctx, user.ID); err != nil {
			return fmt.Errorf("queue welcome email: %w", err)
		}
		fmt.Println("welcome email queued")
	}

	return nil
}
