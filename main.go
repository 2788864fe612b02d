package main

import (
	"os"

	"github.com/nikhilv/quizstack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
