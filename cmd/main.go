package main

import (
	"os"

	"github.com/soundprediction/kinship/cmd/kinship"
)

func main() {
	if err := kinship.Execute(); err != nil {
		os.Exit(1)
	}
}
