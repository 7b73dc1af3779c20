package cmd

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Alturino/storefront/internal/identity"
)

func newStockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stock <productVariantId> <quantity>",
		Short: "Check whether a variant has the requested quantity in stock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			productVariantId, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid productVariantId=%s with error=%w", args[0], err)
			}
			quantity, err := strconv.ParseInt(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid quantity=%s with error=%w", args[1], err)
			}

			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			isAvailable, err := a.client.CheckStock(cmd.Context(), productVariantId, int32(quantity))
			if err != nil {
				return err
			}
			return printJson(map[string]bool{"isAvailable": isAvailable})
		},
	}
}

func newSessionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Print the identity the next request would carry",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			who := a.resolver.Resolve(cmd.Context())
			kind := "anonymous"
			if who.Kind() == identity.Authenticated {
				kind = "authenticated"
			}
			return printJson(map[string]string{
				"kind":      kind,
				"sessionId": who.SessionId(),
			})
		},
	}
}
