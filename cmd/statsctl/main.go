// Command statsctl searches and loads league statistics from the command
// line, against the same record store the API server is configured for.
package main

import (
	"os"

	"github.com/forgo/statline/api/internal/repository"
)

func main() {
	if err := newRootCmd(repository.OpenStore).Execute(); err != nil {
		os.Exit(1)
	}
}
