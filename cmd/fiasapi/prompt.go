package main

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"
)

// ensurePassphrase prompts for the encrypted store passphrase when the
// environment does not provide one and stdin is a terminal. Without a
// terminal the store falls back to its generated key file.
func ensurePassphrase() {
	if os.Getenv("FIAS_STORE_PASSPHRASE") != "" {
		return
	}
	if !term.IsTerminal(int(syscall.Stdin)) {
		return
	}

	fmt.Fprint(os.Stderr, "Encrypted store passphrase (empty to auto-generate): ")
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err == nil && len(pass) > 0 {
		os.Setenv("FIAS_STORE_PASSPHRASE", string(pass))
	}
}
