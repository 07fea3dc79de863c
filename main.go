package main

import (
	"os"

	"github.com/mhanafy/agentgate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
