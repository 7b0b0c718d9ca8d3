package main

import (
	"os"

	"github.com/liftmate/liftmate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
