package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmcleod/keystash/vault"
)

// searchResult is the JSON shape of one search hit. Passwords are never listed.
type searchResult struct {
	ID       int     `json:"id"`
	Service  string  `json:"service"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Date     string  `json:"date,omitempty"`
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		service, username, email string
		jsonOutput               bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List credentials matching the given fields",
		Long: `List credentials whose fields match the given flags. A flag that is not
given matches anything; a flag given as an empty string matches only
credentials without that field. With no flags every credential is listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cr := vault.Criteria{
				Service:  flagMatch(cmd, "service", service),
				Username: flagMatch(cmd, "username", username),
				Email:    flagMatch(cmd, "email", email),
			}

			master, err := a.unlock()
			if err != nil {
				return err
			}
			defer master.Destroy()

			return a.withStore(master, func(s *vault.Store, pw []byte) error {
				found, err := s.Search(cr, pw)
				if err != nil {
					return err
				}
				a.logger.Debug("search finished", "criteria", fmt.Sprintf("%+v", cr), "matches", len(found))
				if jsonOutput {
					return printSearchJSON(cmd.OutOrStdout(), found)
				}
				printSearchTable(cmd.OutOrStdout(), found)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&service, "service", "s", "", "Match the service")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Match the username, empty for none")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Match the email, empty for none")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	return cmd
}

// flagMatch maps an optional flag onto a match: unset is Any, an empty value
// is Absent.
func flagMatch(cmd *cobra.Command, name, value string) vault.Match {
	if !cmd.Flags().Changed(name) {
		return vault.Any()
	}
	if value == "" {
		return vault.Absent()
	}
	return vault.Equals(value)
}

func printSearchTable(w io.Writer, found vault.Vault) {
	if len(found) == 0 {
		fmt.Fprintln(w, "No matching credentials.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSERVICE\tUSERNAME\tEMAIL\tDATE")
	for _, c := range found {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Service, orDash(c.Username), orDash(c.Email), formatDate(c.Date))
	}
	tw.Flush()
}

func printSearchJSON(w io.Writer, found vault.Vault) error {
	results := make([]searchResult, 0, len(found))
	for _, c := range found {
		r := searchResult{ID: c.ID, Service: c.Service, Username: c.Username, Email: c.Email}
		if !c.Date.IsZero() {
			r.Date = c.Date.Format(time.RFC3339)
		}
		results = append(results, r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func orDash(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
