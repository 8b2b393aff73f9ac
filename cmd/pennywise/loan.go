package main

import (
	"github.com/spf13/cobra"
)

func loanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Request or repay loans",
	}

	cmd.AddCommand(loanRequestCmd())
	cmd.AddCommand(loanRepayCmd())
	return cmd
}

func loanRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request <amount>",
		Short: "Request a loan",
		Long: `Request a loan. First-time borrowers need a minimum balance of 100;
a borrower with more than 500 outstanding cannot request more than
double the current loan. Child accounts are not eligible.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			s, err := loginSession()
			if err != nil {
				return err
			}

			res, logErr := s.Ledger.RequestLoan(s.Account, amount)
			return finishMutation(s, res, logErr)
		},
	}
}

func loanRepayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repay <amount>",
		Short: "Repay part or all of the outstanding loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			s, err := loginSession()
			if err != nil {
				return err
			}

			res, logErr := s.Ledger.RepayLoan(s.Account, amount)
			return finishMutation(s, res, logErr)
		},
	}
}
