package main

import (
	"os"

	"github.com/bnema/containerdesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
