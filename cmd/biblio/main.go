// Command biblio is a terminal client for the library management API:
// sign in as a librarian, then manage materials, patrons, loans, authors,
// categories and publishers.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
