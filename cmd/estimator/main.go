package main

import (
	"os"

	"github.com/Dallionking/project-estimator/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
