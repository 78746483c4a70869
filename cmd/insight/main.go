// File path: cmd/insight/main.go
package main

import (
	"os"

	"github.com/nicodishanthj/lqa-insight/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
