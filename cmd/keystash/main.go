package main

import (
	"github.com/awnumar/memguard"

	"github.com/jmcleod/keystash/cmd/keystash/cmd"
)

func main() {
	// Wipe enclaves and locked buffers on SIGINT/SIGTERM.
	memguard.CatchInterrupt()
	defer memguard.Purge()

	cmd.Execute()
}
