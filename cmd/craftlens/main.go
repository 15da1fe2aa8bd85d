package main

import (
	"fmt"
	"os"
)

// Exit codes for the different failure modes.
const (
	ExitSuccess = 0
	ExitError   = 1 // configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitError)
	}
}
