// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package repo

import (
	"errors"
	"net/http"
	"slices"
	"strconv"

	repo_model "code.gitea.io/filepreview/models/repo"
	"code.gitea.io/filepreview/modules/json"
	"code.gitea.io/filepreview/modules/log"
	"code.gitea.io/filepreview/modules/reviewui"
	"code.gitea.io/filepreview/modules/setting"
	"code.gitea.io/filepreview/modules/util"

	"github.com/go-chi/chi/v5"
)

// PreviewResponse is the JSON body of an attachment preview
type PreviewResponse struct {
	AttachmentID int64    `json:"attachment_id"`
	ReviewUI     string   `json:"review_ui"`
	Mode         string   `json:"mode"`
	Fragments    []string `json:"fragments"`
}

// AttachmentPreview renders an attachment with the review UI that supports it.
// Query parameters: mode=rendered|source, same_line=1.
func AttachmentPreview(svc *reviewui.Service, store repo_model.AttachmentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusNotFound, "attachment not found")
			return
		}

		query := r.URL.Query()
		mode, err := reviewui.ParseMode(query.Get("mode"))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		sameLine := setting.Preview.KeepTextOnSameLine
		if v := query.Get("same_line"); v != "" {
			if sameLine, err = strconv.ParseBool(v); err != nil {
				writeJSONError(w, http.StatusBadRequest, "same_line must be a boolean")
				return
			}
		}

		att, err := store.GetAttachment(r.Context(), id)
		if err != nil {
			if errors.Is(err, util.ErrNotExist) {
				writeJSONError(w, http.StatusNotFound, "attachment not found")
				return
			}
			log.Error("GetAttachment(%d): %v", id, err)
			writeJSONError(w, http.StatusInternalServerError, "failed to load attachment")
			return
		}

		head, err := reviewui.ReadHead(r.Context(), att)
		if err != nil {
			log.Error("ReadHead(%d): %v", id, err)
			writeJSONError(w, http.StatusInternalServerError, "failed to read attachment")
			return
		}
		ui := svc.Registry.ForAttachment(att, head)
		if ui == nil {
			writeJSONError(w, http.StatusUnsupportedMediaType, "no review UI supports "+att.Filename)
			return
		}

		opts := reviewui.RenderOptions{KeepTextOnSameLine: sameLine, Mode: mode}
		fragments := slices.Collect(svc.Renderer.GenerateRender(r.Context(), ui, att, opts))
		if fragments == nil {
			fragments = []string{}
		}
		writeJSON(w, http.StatusOK, PreviewResponse{
			AttachmentID: att.ID,
			ReviewUI:     ui.Name(),
			Mode:         string(mode),
			Fragments:    fragments,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("failed to marshal response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
