// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package web provides access to the embedded status page.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed all:assets
var embeddedFiles embed.FS

// GetFileSystem returns an http.FileSystem that serves the embedded assets.
func GetFileSystem() http.FileSystem {
	page, err := fs.Sub(embeddedFiles, "assets")
	if err != nil {
		panic(err)
	}
	return http.FS(page)
}
