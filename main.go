package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"

	"llmpack/cmd"
	"llmpack/pkg/logging"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

func main() {
	// A .env in the working directory may carry <PROVIDER>_API_KEY values.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Execute(ctx)
	stop()

	syncLogger()
	if err != nil {
		os.Exit(1)
	}
}

// syncLogger flushes the logger only when stderr is a terminal or a regular
// file; syncing a pipe reports "invalid argument" on some platforms.
func syncLogger() {
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logging.Logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
