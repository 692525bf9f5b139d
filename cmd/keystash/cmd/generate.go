package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmcleod/keystash/crypto"
)

func newGenerateCmd(a *app) *cobra.Command {
	var copyPassword bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a strong password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := crypto.GeneratePassword()
			if err != nil {
				return err
			}
			if copyPassword {
				if err := a.clipboard.Copy(password); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Password copied to clipboard.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), password)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyPassword, "copy", "c", false, "Copy the password to the clipboard instead of printing it")
	return cmd
}
