package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emberline/storefront/internal/constants"
	"github.com/emberline/storefront/internal/log"
	storefront "github.com/emberline/storefront/storefront/cmd"
)

func Start() {
	logger := log.Get(filepath.Join("/var/log/", constants.APP_STOREFRONT+".log")).
		With().
		Str(log.KeyAppName, constants.APP_STOREFRONT).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: constants.APP_STOREFRONT}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run storefront service",
		Run: func(cmd *cobra.Command, args []string) {
			storefront.RunStorefrontService(cmd.Context())
		},
	})
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
