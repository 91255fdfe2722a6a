// Package main implements the devconnect CLI: the project API server and its
// maintenance commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Khan-Yazdani04/devconnect-lite/config"
	"github.com/Khan-Yazdani04/devconnect-lite/logging"
)

var (
	envFile string
	cfg     *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "devconnect",
	Short: "Project listings API for the DevConnect marketplace",
	Long: `devconnect serves the project API of the DevConnect freelance marketplace:
clients post projects, developers browse open ones and owners update,
close or delete them.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (defaults to ./.env)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(indexesCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}

	loaded, err := config.Load(files...)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	cfg = loaded
	logging.InitLogger(cfg.Log)
	return nil
}
