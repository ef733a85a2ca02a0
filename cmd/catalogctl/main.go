package main

import (
	"os"

	"github.com/matst80/slask-catalog/pkg/logger"
)

func main() {
	logger.Init(logger.Options{Environment: logger.Production, Output: os.Stderr})
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
