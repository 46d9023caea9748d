package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nrs-tools/vendor-atlas/pkg/server"
	"github.com/nrs-tools/vendor-atlas/pkg/services/config"
	"github.com/nrs-tools/vendor-atlas/pkg/services/report"
	"github.com/nrs-tools/vendor-atlas/pkg/services/session"
)

var (
	credsPath    string
	profile      string
	settingsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Serve the daily vendor sales feed over HTTP",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&credsPath, "creds", "c", "nrscreds.secret",
		"Credentials file (ini profile or user:password)")
	rootCmd.Flags().StringVar(&profile, "profile", "DEFAULT",
		"Profile section inside the credentials file")
	rootCmd.Flags().StringVar(&settingsPath, "config", "",
		"Optional scraper settings file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	creds, err := config.LoadCredentials(credsPath, profile)
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	client, err := session.NewClient(settings, creds)
	if err != nil {
		return err
	}
	if err := client.Login(ctx); err != nil {
		return fmt.Errorf("portal login failed: %w", err)
	}
	defer client.Logout(ctx)

	ctrl := report.NewController(client, settings.BaseURL, settings.SweepWorkers)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Sales: ctrl,
		},
	})

	return webAPI.Start()
}
