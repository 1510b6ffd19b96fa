package main

import (
	"log"
	"os"

	"txthistogram/cmd"
	"txthistogram/pkg/logging"
	"txthistogram/pkg/version"
)

func main() {
	logger, err := logging.Setup(false, version.AppName, version.Get().Version)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// cobra has already printed the error; only the exit status is left to set.
	if err := cmd.Execute(logger); err != nil {
		logging.Sync(logger)
		os.Exit(1)
	}
	logging.Sync(logger)
}
