// Package app serves the embedded laboratory client: a page shell rendered
// from templates plus the static script and stylesheet it loads.
package app

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/JaimeStill/paginalab/pkg/web"
)

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/pages/*
var pageFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Settings are exposed to the client through the page shell.
type Settings struct {
	API           string
	Uploads       string
	MaxUploadSize int64
}

var home = web.PageDef{Route: "/{$}", Template: "home.html", Title: "Laboratorio"}

var notFound = web.PageDef{Template: "404.html", Title: "No encontrado"}

// NewHandler returns the client handler. Paths are relative to basePath, so
// callers mount it behind http.StripPrefix(basePath, ...).
func NewHandler(basePath string, settings Settings) (http.Handler, error) {
	pages, err := fs.Sub(pageFS, "server/pages")
	if err != nil {
		return nil, err
	}

	ts, err := web.NewTemplateSet(layoutFS, pages, "server/layouts/*.html", basePath, settings, []web.PageDef{home, notFound})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+home.Route, ts.PageHandler("layout", home))
	mux.Handle("GET /static/", http.FileServer(http.FS(staticFS)))
	mux.HandleFunc("/", ts.ErrorHandler("layout", notFound, http.StatusNotFound))

	return mux, nil
}
