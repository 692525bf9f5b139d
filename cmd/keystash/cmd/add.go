package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmcleod/keystash/crypto"
	"github.com/jmcleod/keystash/vault"
)

func newAddCmd(a *app) *cobra.Command {
	var service, username, email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a credential to the vault",
		Long: `Add a credential for a service. Leave the password blank to have a strong
one generated. If a credential with the same service, username and email
exists you are asked before it is overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// An empty flag stores the field as absent, matching search -u "".
			candidate := vault.Credential{Service: service}
			if username != "" {
				candidate.Username = vault.Ptr(username)
			}
			if email != "" {
				candidate.Email = vault.Ptr(email)
			}

			master, err := a.unlock()
			if err != nil {
				return err
			}
			defer master.Destroy()

			password, err := a.prompt.Secret("Password for the service (blank to generate): ")
			if err != nil {
				return err
			}
			if password == "" {
				if password, err = crypto.GeneratePassword(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Generated a strong password.")
			}
			candidate.Password = password

			return a.withStore(master, func(s *vault.Store, pw []byte) error {
				out, err := s.Insert(candidate, pw, a.prompt)
				if err != nil {
					return err
				}
				reportInsert(cmd, out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&service, "service", "s", "", "Service the credential belongs to (required)")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username for the service, empty for none")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Email for the service, empty for none")
	_ = cmd.MarkFlagRequired("service")
	return cmd
}

func reportInsert(cmd *cobra.Command, out vault.Outcome) {
	w := cmd.OutOrStdout()
	if out.Status != vault.Accepted {
		switch out.Reason {
		case vault.ReasonExactDuplicate:
			fmt.Fprintln(w, "This exact credential is already stored. Nothing changed.")
		case vault.ReasonDeclined:
			fmt.Fprintln(w, "Existing credential kept. Nothing changed.")
		default:
			fmt.Fprintf(w, "Nothing changed: %s.\n", out.Reason)
		}
		return
	}
	rec := out.Records[out.Index]
	if out.Replaced {
		fmt.Fprintf(w, "Credential %d for %s updated.\n", rec.ID, rec.Service)
		return
	}
	fmt.Fprintf(w, "Credential %d for %s added.\n", rec.ID, rec.Service)
}
