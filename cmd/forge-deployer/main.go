// Command forge-deployer provisions, configures, releases, and runs a
// tracker service instance, one lifecycle command per invocation.
package main

import (
	"fmt"
	"os"

	"github.com/torrust/tracker-deployer/cmd/forge-deployer/app"
)

func main() {
	if err := app.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
