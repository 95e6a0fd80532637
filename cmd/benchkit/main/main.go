package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	benchkit "github.com/benchkit/benchkit/cmd/benchkit"
	"github.com/benchkit/benchkit/pkg/logging"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Unexpected failure")
			fmt.Fprintf(os.Stderr, "Error: unexpected failure: %v\n", r)
			if path := logging.LogFilePath(); path != "" {
				fmt.Fprintf(os.Stderr, "Full log: %s\n", path)
			}
			os.Exit(1)
		}
	}()

	rootCmd := benchkit.NewRootCmd()
	err := rootCmd.Execute()
	if err != nil && !benchkit.IsExitError(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(benchkit.ExitCode(err))
}
