package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"pennywise/internal/cli"
)

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the account's transactions to a CSV file",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loginSession()
			if err != nil {
				return err
			}

			dest := out
			if dest == "" {
				dest = filepath.Join(s.DataDir, fmt.Sprintf("%s_transactions_export.csv", s.Account.Username))
			}

			n, err := s.Journal.ExportUser(s.Account.Username, dest)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Println(cli.FormatInfo("no transaction data to export"))
				return nil
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("exported %d transactions to %s", n, dest)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "destination file (default: <data-dir>/<user>_transactions_export.csv)")
	return cmd
}
