package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Alturino/storefront/internal/log"
)

func Start() {
	logger := log.InitLogger("storefront.log", os.Getenv("STOREFRONT_ENV")).
		With().
		Str(log.KeyAppName, appName).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront client core: cart synchronization and wishlist",
	}
	rootCmd.AddCommand(
		newCartCommand(),
		newWishlistCommand(),
		newStockCommand(),
		newSessionCommand(),
	)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
