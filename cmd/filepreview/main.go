// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"code.gitea.io/filepreview/modules/log"
	"code.gitea.io/filepreview/modules/setting"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp(os.Stdout).Run(ctx, os.Args)
	stop()
	if err != nil {
		log.Error("[filepreview] %v", err)
		log.GetManager().Close()
		os.Exit(1)
	}
	log.GetManager().Close()
}

func newApp(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "filepreview",
		Usage:  "Render XML and Jupyter notebook attachments to HTML",
		Writer: stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Custom configuration file path",
				Sources: cli.EnvVars("FILEPREVIEW_CONFIG"),
			},
		},
		Before: loadSettings,
		Commands: []*cli.Command{
			cmdRender,
			cmdWeb,
		},
	}
}

func loadSettings(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	configFile := cmd.String("config")
	if configFile != "" {
		if err := ensureFileExists(configFile, "config file"); err != nil {
			return ctx, err
		}
	}
	if err := setting.LoadSettings(configFile); err != nil {
		return ctx, fmt.Errorf("load settings: %w", err)
	}
	if err := log.GetManager().Configure(log.Config{
		Level:    setting.Log.Level,
		Mode:     setting.Log.Mode,
		FileName: setting.Log.FileName,
	}); err != nil {
		return ctx, fmt.Errorf("configure logging: %w", err)
	}
	return ctx, nil
}

func ensureFileExists(path, label string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s not found at %s", label, path)
		}
		return fmt.Errorf("stat %s: %w", label, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected file: %s", label, path)
	}
	return nil
}

func ensureDirExists(path, label string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s not found at %s", label, path)
		}
		return fmt.Errorf("stat %s: %w", label, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %s", label, path)
	}
	return nil
}
