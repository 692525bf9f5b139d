package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmcleod/keystash/vault"
)

func newGetCmd(a *app) *cobra.Command {
	var printPassword bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Copy a credential's password to the clipboard",
		Args:  cobra.ExactArgs(1),
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
				c, err := s.Get(id, pw)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Service: %s\n", c.Service)
				if c.Username != nil {
					fmt.Fprintf(w, "Username: %s\n", *c.Username)
				}
				if c.Email != nil {
					fmt.Fprintf(w, "Email: %s\n", *c.Email)
				}
				if printPassword {
					fmt.Fprintf(w, "Password: %s\n", c.Password)
					return nil
				}
				if err := a.clipboard.Copy(c.Password); err != nil {
					return fmt.Errorf("%w, use --print to show the password", err)
				}
				fmt.Fprintln(w, "Password copied to clipboard.")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&printPassword, "print", false, "Print the password instead of copying it")
	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < vault.MinCredentialID || id > vault.MaxCredentialID {
		return 0, fmt.Errorf("invalid credential id %q, expected a number between %d and %d",
			s, vault.MinCredentialID, vault.MaxCredentialID)
	}
	return id, nil
}
