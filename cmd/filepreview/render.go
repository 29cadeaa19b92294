// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"slices"

	"code.gitea.io/filepreview/modules/reviewui"
	"code.gitea.io/filepreview/modules/templates"
	"code.gitea.io/filepreview/modules/util"

	"github.com/urfave/cli/v3"
)

var cmdRender = &cli.Command{
	Name:      "render",
	Usage:     "Render a local file and print one HTML fragment per line",
	ArgsUsage: "FILE",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "same-line",
			Usage: "Keep element text on the same line as its tags",
		},
		&cli.StringFlag{
			Name:  "mode",
			Value: string(reviewui.ModeRendered),
			Usage: "View mode: rendered or source",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print the fragments as a JSON array",
		},
	},
	Action: runRender,
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("render expects exactly one FILE argument")
	}
	filename := cmd.Args().First()
	if err := ensureFileExists(filename, "input file"); err != nil {
		return err
	}
	mode, err := reviewui.ParseMode(cmd.String("mode"))
	if err != nil {
		return err
	}

	svc, err := reviewui.NewServiceFromSettings()
	if err != nil {
		return err
	}
	att, err := localAttachment(filename)
	if err != nil {
		return err
	}
	head, err := reviewui.ReadHead(ctx, att)
	if err != nil {
		return err
	}
	ui := svc.Registry.ForAttachment(att, head)
	if ui == nil {
		return util.NewSilentWrapErrorf(util.ErrUnsupportedMedia, "no review UI supports %s", filename)
	}

	opts := reviewui.RenderOptions{KeepTextOnSameLine: cmd.Bool("same-line"), Mode: mode}
	fragments := svc.Renderer.GenerateRender(ctx, ui, att, opts)

	out := cmd.Root().Writer
	if cmd.Bool("json") {
		collected := slices.Collect(fragments)
		if collected == nil {
			collected = []string{}
		}
		_, err = fmt.Fprintln(out, templates.NewJsonUtils().EncodeToString(collected))
		return err
	}
	for fragment := range fragments {
		if _, err := fmt.Fprintln(out, fragment); err != nil {
			return err
		}
	}
	return nil
}

func localAttachment(filename string) (*reviewui.Attachment, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, err
	}
	return &reviewui.Attachment{
		Filename: filepath.Base(filename),
		MimeType: mime.TypeByExtension(filepath.Ext(filename)),
		Size:     info.Size(),
		Opener: func(context.Context) (io.ReadCloser, error) {
			return os.Open(filename)
		},
	}, nil
}
