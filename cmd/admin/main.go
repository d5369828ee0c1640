// Command admin runs operator tasks against the Solarium store: schema migrations, teacher
// accounts and sample content.
package main

import (
	"os"

	"golang.org/x/term"
)

func main() {
	a := &app{
		readPassword: term.ReadPassword,
		stdin:        int(os.Stdin.Fd()),
	}

	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}
