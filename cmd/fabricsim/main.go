package main

import (
	"context"
	"fmt"
	"os"

	logginginfra "github.com/alonzeltser/fabricsim/internal/infrastructure/logging"
)

func main() {
	correlationID := logginginfra.GenerateCorrelationID()
	ctx := logginginfra.WithCorrelationID(context.Background(), correlationID)

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
