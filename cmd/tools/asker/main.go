// Command asker talks to the résumé assistant from a terminal, using the same
// configuration and persona as the server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
