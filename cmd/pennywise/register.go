package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"pennywise/internal/cli"
	"pennywise/internal/model"
)

func registerCmd() *cobra.Command {
	var (
		kind    string
		opening string
	)

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create a new account",
		Long: `Create a new account. Usernames are case-insensitive and must be
unique. A child account cannot transfer money or take loans.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			username := args[0]

			password, err := cli.ReadPassword("Choose a password:")
			if err != nil {
				return err
			}
			confirm, err := cli.ReadPassword("Confirm password:")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			amount := decimal.Zero
			if opening != "" {
				if amount, err = parseAmount(opening); err != nil {
					return err
				}
			}

			s, err := openSession()
			if err != nil {
				return err
			}

			_, res := s.Registry.Register(username, password, amount, model.ParseAccountKind(kind))
			fmt.Println(cli.FormatResult(res))
			if res.Mutated() {
				if err := s.Save(); err != nil {
					return fmt.Errorf("account created but snapshot save failed: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "standard", "account kind (standard, child)")
	cmd.Flags().StringVar(&opening, "opening", "0", "opening balance")
	return cmd
}
