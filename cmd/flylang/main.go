package main

import (
	"os"

	"github.com/flylang/flylang/cmd/flylang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		code := cmd.ExitCode()
		if code == 0 {
			code = 1
		}
		os.Exit(code)
	}
}
