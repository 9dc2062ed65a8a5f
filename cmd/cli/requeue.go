package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classtools/push-relay/internal/db"
	"github.com/classtools/push-relay/internal/queue"
	"github.com/classtools/push-relay/internal/storage"
)

var requeueCmd = &cobra.Command{
	Use:   "requeue <delivery-id> [delivery-id...]",
	Short: "Re-publish stored deliveries onto the grading queue",
	Long: `Publishes the given delivery IDs onto the queue again. This is the
remediation path for deliveries that were persisted but whose enqueue failed;
each ID is checked against the event store first so typos are caught before
downstream consumers see them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRequeue,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(requeueCmd)
}

func runRequeue(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dbConn, dbCleanup, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		return err
	}
	defer dbCleanup()
	store := storage.NewStore(dbConn.DB, cfg.Database.Table)

	publisher, queueCleanup, err := queue.NewPublisher(&cfg.Queue)
	if err != nil {
		return err
	}
	defer queueCleanup()

	ctx := cmd.Context()
	for _, id := range args {
		exists, err := store.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("no stored push event with id %s", id)
		}
		if err := publisher.Publish(ctx, cfg.Queue.Name, id); err != nil {
			return fmt.Errorf("requeue %s: %w", id, err)
		}
		cmd.Printf("requeued %s onto %s:%s\n", id, cfg.Queue.Namespace, cfg.Queue.Name)
	}
	return nil
}
