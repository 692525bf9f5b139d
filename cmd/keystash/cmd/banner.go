package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

const banner = `
  _  __           ____  _            _     
 | |/ /___ _   _ / ___|| |_ __ _ ___| |__  
 | ' // _ \ | | |\___ \| __/ _` + "`" + ` / __| '_ \ 
 | . \  __/ |_| | ___) | || (_| \__ \ | | |
 |_|\_\___|\__, ||____/ \__\__,_|___/_| |_|
            |___/                           
`

func printBanner(w io.Writer) {
	fmt.Fprintf(w, "\x1b[34m%s\x1b[0m", banner)
	fmt.Fprintf(w, "\x1b[32m  Encrypted Credential Vault - Version %s\x1b[0m\n\n", Version)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the keystash version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner(cmd.OutOrStdout())
			return nil
		},
	}
}
