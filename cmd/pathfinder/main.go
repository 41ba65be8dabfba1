package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	// Configure logging
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
