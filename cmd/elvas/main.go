// Command elvas runs ELVAS scripts.
//
// Usage:
//
//	elvas [flags] [input ...]
//
// Inputs are concatenated in order; with none, the script is read from
// standard input. See "elvas --help" for the flags.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/kolkov/elvas/internal/cli"
	"github.com/kolkov/elvas/internal/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
