package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmcleod/keystash/vault"
)

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a credential from the vault",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			master, err := a.unlock()
			if err != nil {
				return err
			}
			defer master.Destroy()

			return a.withStore(master, func(s *vault.Store, pw []byte) error {
				out, err := s.Remove(id, pw, a.prompt)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if out.Status != vault.Accepted {
					fmt.Fprintf(w, "Nothing changed: %s.\n", out.Reason)
					return nil
				}
				fmt.Fprintf(w, "Credential %d removed.\n", id)
				return nil
			})
		},
	}
}
