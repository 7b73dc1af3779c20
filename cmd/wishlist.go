package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	productResponse "github.com/Alturino/storefront/product/pkg/response"
)

func parseProductArgs(args []string) (productResponse.Product, error) {
	productId, err := uuid.Parse(args[0])
	if err != nil {
		return productResponse.Product{}, fmt.Errorf(
			"invalid productId=%s with error=%w", args[0], err,
		)
	}
	price, err := decimal.NewFromString(args[2])
	if err != nil {
		return productResponse.Product{}, fmt.Errorf(
			"invalid price=%s with error=%w", args[2], err,
		)
	}
	return productResponse.Product{ID: productId, Name: args[1], Price: price}, nil
}

func newWishlistCommand() *cobra.Command {
	wishlistCmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage the local wishlist",
	}

	wishlistCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print the wishlist",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := initApp(cmd.Context())
				if err != nil {
					return err
				}
				defer a.close(cmd.Context())
				return printJson(a.wishlist.Items())
			},
		},
		&cobra.Command{
			Use:   "add <productId> <name> <price>",
			Short: "Add a product snapshot to the wishlist",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				product, err := parseProductArgs(args)
				if err != nil {
					return err
				}
				a, err := initApp(cmd.Context())
				if err != nil {
					return err
				}
				defer a.close(cmd.Context())
				if _, err := a.wishlist.Add(product); err != nil {
					return err
				}
				return printJson(a.wishlist.Items())
			},
		},
		&cobra.Command{
			Use:   "toggle <productId> <name> <price>",
			Short: "Toggle a product in the wishlist",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				product, err := parseProductArgs(args)
				if err != nil {
					return err
				}
				a, err := initApp(cmd.Context())
				if err != nil {
					return err
				}
				defer a.close(cmd.Context())
				if _, err := a.wishlist.Toggle(product); err != nil {
					return err
				}
				return printJson(a.wishlist.Items())
			},
		},
		&cobra.Command{
			Use:   "remove <productId>",
			Short: "Remove a product from the wishlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				productId, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid productId=%s with error=%w", args[0], err)
				}
				a, err := initApp(cmd.Context())
				if err != nil {
					return err
				}
				defer a.close(cmd.Context())
				if _, err := a.wishlist.Remove(productId); err != nil {
					return err
				}
				return printJson(a.wishlist.Items())
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the wishlist",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := initApp(cmd.Context())
				if err != nil {
					return err
				}
				defer a.close(cmd.Context())
				if err := a.wishlist.Clear(); err != nil {
					return err
				}
				return printJson(a.wishlist.Items())
			},
		},
	)

	return wishlistCmd
}
