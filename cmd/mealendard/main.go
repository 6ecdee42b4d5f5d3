package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mealendar-ai/mealendar/internal/server"
)

func main() {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "mealendard",
		Short: "Mealendar backend — Google Calendar + AI chat relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional, same as the config file.
			_ = godotenv.Load()

			logger := zerolog.New(
				zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339},
			).With().Timestamp().Logger()

			cfg, err := server.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			d := server.NewDaemon(cfg, logger)
			return d.Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
