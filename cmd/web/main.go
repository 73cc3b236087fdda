package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cloudops-tools/cloudops/pkg/server"
	"github.com/cloudops-tools/cloudops/pkg/services/account"
	"github.com/cloudops-tools/cloudops/pkg/services/auth"
	"github.com/cloudops-tools/cloudops/pkg/services/awsclients"
	"github.com/cloudops-tools/cloudops/pkg/services/config"
	"github.com/cloudops-tools/cloudops/pkg/services/credentials"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the CloudOps API server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to an optional config file (settings also read from CLOUDOPS_* env vars)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store := credentials.NewMemoryStore()
	verifier := credentials.NewVerifier()
	accountExplorer := account.NewExplorer(store, verifier, awsclients.NewClientSet)
	authService := auth.NewService(auth.Config{
		Secret:   cfg.JWTSecret,
		TokenTTL: cfg.TokenTTL,
	})

	if cfg.CredentialSeedFile != "" {
		profiles, err := credentials.LoadSeedFile(cfg.CredentialSeedFile)
		if err != nil {
			return fmt.Errorf("failed to load credential seed file: %w", err)
		}
		for _, p := range profiles {
			binding, err := accountExplorer.Connect(ctx, p.Principal, p.AccessKeyID, p.SecretAccessKey, p.Region)
			if err != nil {
				logger.Warn().Err(err).Str("principal", p.Principal).Msg("skipping seed profile")
				continue
			}
			logger.Info().
				Str("principal", p.Principal).
				Str("account_id", binding.AccountID).
				Msg("seeded AWS account binding")
		}
	}

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Auth:    authService,
			Account: accountExplorer,
		},
	})

	return webAPI.Start()
}
