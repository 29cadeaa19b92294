// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package repo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"code.gitea.io/filepreview/modules/reviewui"
	"code.gitea.io/filepreview/modules/util"
)

// ErrAttachmentNotExist represents a "AttachmentNotExist" kind of error.
type ErrAttachmentNotExist struct {
	ID int64
}

// IsErrAttachmentNotExist checks if an error is a ErrAttachmentNotExist.
func IsErrAttachmentNotExist(err error) bool {
	_, ok := err.(ErrAttachmentNotExist)
	return ok
}

func (err ErrAttachmentNotExist) Error() string {
	return fmt.Sprintf("attachment does not exist [id: %d]", err.ID)
}

func (err ErrAttachmentNotExist) Unwrap() error {
	return util.ErrNotExist
}

// AttachmentStore looks up stored attachments
type AttachmentStore interface {
	GetAttachment(ctx context.Context, id int64) (*reviewui.Attachment, error)
}

// DirStore serves attachments stored as <root>/<id>/<filename>
type DirStore struct {
	root string
}

var _ AttachmentStore = (*DirStore)(nil)

// NewDirStore creates a DirStore rooted at root
func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

// GetAttachment returns the attachment with the given id. When the id directory
// holds several files the first regular file by name is used.
func (s *DirStore) GetAttachment(ctx context.Context, id int64) (*reviewui.Attachment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, ErrAttachmentNotExist{ID: id}
	}

	dir := filepath.Join(s.root, strconv.FormatInt(id, 10))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrAttachmentNotExist{ID: id}
		}
		return nil, err
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		filename := filepath.Join(dir, entry.Name())
		return &reviewui.Attachment{
			ID:       id,
			Filename: entry.Name(),
			MimeType: mime.TypeByExtension(path.Ext(entry.Name())),
			Size:     info.Size(),
			Opener: func(context.Context) (io.ReadCloser, error) {
				return os.Open(filename)
			},
		}, nil
	}
	return nil, ErrAttachmentNotExist{ID: id}
}
