// main is the entry point for the gitfolio CLI.
package main

import (
	"github.com/gitfolio/gitfolio/cmd"
	"github.com/gitfolio/gitfolio/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
