package cmd

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newCartCommand() *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Synchronize the cart against the commerce api",
	}

	cartCmd.AddCommand(
		&cobra.Command{
			Use:   "fetch",
			Short: "Fetch the cart for the current identity",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := initApp(cmd.Context())
				if err != nil {
					return err
				}
				defer a.close(cmd.Context())

				if err := a.engine.Fetch(cmd.Context()); err != nil {
					printCartState(a)
					return err
				}
				return printCartState(a)
			},
		},
		&cobra.Command{
			Use:   "add <productId> <quantity> [productVariantId]",
			Short: "Add a product to the cart",
			Args:  cobra.RangeArgs(2, 3),
			RunE: func(cmd *cobra.Command, args []string) error {
				productId, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid productId=%s with error=%w", args[0], err)
				}
				quantity, err := strconv.ParseInt(args[1], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid quantity=%s with error=%w", args[1], err)
				}
				var productVariantId *uuid.UUID
				if len(args) == 3 {
					variantId, err := uuid.Parse(args[2])
					if err != nil {
						return fmt.Errorf("invalid productVariantId=%s with error=%w", args[2], err)
					}
					productVariantId = &variantId
				}

				a, err := initApp(cmd.Context())
				if err != nil {
					return err
				}
				defer a.close(cmd.Context())

				if err := a.engine.Add(cmd.Context(), productId, int32(quantity), productVariantId); err != nil {
					printCartState(a)
					return err
				}
				return printCartState(a)
			},
		},
		&cobra.Command{
			Use:   "update <cartItemId> <quantity>",
			Short: "Update a cart item quantity",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				cartItemId, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid cartItemId=%s with error=%w", args[0], err)
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

				if err := a.engine.UpdateQuantity(cmd.Context(), cartItemId, int32(quantity)); err != nil {
					printCartState(a)
					return err
				}
				return printCartState(a)
			},
		},
		&cobra.Command{
			Use:   "remove <cartItemId>",
			Short: "Remove an item from the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cartItemId, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid cartItemId=%s with error=%w", args[0], err)
				}

				a, err := initApp(cmd.Context())
				if err != nil {
					return err
				}
				defer a.close(cmd.Context())

				if err := a.engine.Fetch(cmd.Context()); err != nil {
					return err
				}
				if err := a.engine.Remove(cmd.Context(), cartItemId); err != nil {
					printCartState(a)
					return err
				}
				return printCartState(a)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every item from the cart",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := initApp(cmd.Context())
				if err != nil {
					return err
				}
				defer a.close(cmd.Context())

				if err := a.engine.Clear(cmd.Context()); err != nil {
					printCartState(a)
					return err
				}
				return printCartState(a)
			},
		},
	)

	return cartCmd
}
