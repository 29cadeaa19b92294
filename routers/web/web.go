// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"net/http"
	"time"

	repo_model "code.gitea.io/filepreview/models/repo"
	"code.gitea.io/filepreview/modules/log"
	"code.gitea.io/filepreview/modules/reviewui"
	"code.gitea.io/filepreview/modules/setting"
	"code.gitea.io/filepreview/routers/web/repo"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes returns the preview routes
func Routes(svc *reviewui.Service, store repo_model.AttachmentStore) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	registry.MustRegister(reviewui.Collectors()...)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(accessLogger)
	if setting.CORSConfig.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   setting.CORSConfig.AllowDomain,
			AllowedMethods:   setting.CORSConfig.Methods,
			AllowedHeaders:   setting.CORSConfig.Headers,
			AllowCredentials: setting.CORSConfig.AllowCredentials,
			MaxAge:           int(setting.CORSConfig.MaxAge.Seconds()),
		}))
	}

	r.Get("/attachments/{id}/preview", repo.AttachmentPreview(svc, store))
	r.Get("/assets/highlight.css", highlightCSS(svc))
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return r
}

func highlightCSS(svc *reviewui.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		if err := svc.Highlighter.WriteCSS(w); err != nil {
			log.Error("WriteCSS: %v", err)
		}
	}
}

func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug("%s %s %d in %v", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
