// netpadctl is a small diagnostic CLI for the NetPad API. It exercises
// every client operation from the command line, which makes it useful
// both for smoke-testing deployments and as a reference for embedding
// the client in a host application.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Pick up NETPAD_* variables from a local .env, if present.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
