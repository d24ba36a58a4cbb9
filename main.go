package main

import (
	"os"

	"github.com/avetrov/readmentor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
