package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logger = logrus.New()

func setupLogging(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	quiet, _ := flags.GetBool("quiet")
	levelStr, _ := flags.GetString("log-level")

	level := logrus.WarnLevel
	if quiet {
		level = logrus.ErrorLevel
	}
	if levelStr != "" {
		parsed, err := logrus.ParseLevel(levelStr)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		level = parsed
	}

	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		ForceColors:      useColor(cmd, os.Stderr),
		DisableColors:    !useColor(cmd, os.Stderr),
	})
	return nil
}
