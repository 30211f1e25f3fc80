// Command formatters formats numbers, currency amounts and dates with the
// bundled locale data and regenerates that data from a CLDR checkout.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "formatters: %v\n", err)
		os.Exit(1)
	}
}
