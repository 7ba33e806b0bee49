package main

import (
	"os"

	"github.com/hashportal/hashportal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
