package main

import (
	"fmt"
	"os"

	"github.com/teranos/bindgen/cmd/bindgen/cmd"
	"github.com/teranos/bindgen/errors"
)

// Exit codes
const (
	exitOutOfDate = 1
	exitError     = 2
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		if errors.Is(err, errors.ErrOutOfDate) {
			os.Exit(exitOutOfDate)
		}
		os.Exit(exitError)
	}
}
