package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Khan-Yazdani04/devconnect-lite/app"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove bids whose project no longer exists",
	Long: `Run the orphan bid sweep once and exit.

Deleting a project removes the project first and its bids second. If the
second step fails the bids stay behind; this command removes them.`,
	RunE: runSweep,
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	application, err := app.NewBuilder(cfg, app.WithEnsureIndexes(false)).Build(ctx)
	if err != nil {
		return fmt.Errorf("app build error: %w", err)
	}
	defer application.Close(ctx)

	removed, err := application.Sweeper.SweepOrphanBids(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("Removed %d orphaned bids\n", removed)
	return nil
}
