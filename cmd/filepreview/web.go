// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	repo_model "code.gitea.io/filepreview/models/repo"
	"code.gitea.io/filepreview/modules/log"
	"code.gitea.io/filepreview/modules/reviewui"
	"code.gitea.io/filepreview/modules/setting"
	"code.gitea.io/filepreview/routers/web"

	"github.com/urfave/cli/v3"
)

var cmdWeb = &cli.Command{
	Name:   "web",
	Usage:  "Serve attachment previews over HTTP",
	Action: runWeb,
}

func runWeb(ctx context.Context, _ *cli.Command) error {
	svc, err := reviewui.NewServiceFromSettings()
	if err != nil {
		return err
	}
	if err := ensureDirExists(setting.Server.AttachmentPath, "attachment path"); err != nil {
		return err
	}

	addr := net.JoinHostPort(setting.Server.HTTPAddr, setting.Server.HTTPPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           web.Routes(svc, repo_model.NewDirStore(setting.Server.AttachmentPath)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening on %s, serving attachments from %s", addr, setting.Server.AttachmentPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
