package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Khan-Yazdani04/devconnect-lite/config"
	"github.com/Khan-Yazdani04/devconnect-lite/repositories"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the MongoDB indexes and exit",
	RunE:  runIndexes,
}

func runIndexes(cmd *cobra.Command, args []string) error {
	if cfg.Store.Backend != config.StoreMongo {
		return fmt.Errorf("indexes require STORE_BACKEND=%s, got %q", config.StoreMongo, cfg.Store.Backend)
	}

	ctx := context.Background()
	m, err := repositories.Connect(ctx, cfg.Mongo, cfg.Breaker)
	if err != nil {
		return err
	}
	defer m.Close(ctx)

	if err := repositories.EnsureIndexes(ctx, m.DB); err != nil {
		return err
	}
	cmd.Println("Indexes are up to date")
	return nil
}
