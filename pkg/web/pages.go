// Package web renders server-side page shells from pre-parsed templates.
// Templates are parsed once at startup so a broken template fails fast.
package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// PageDef defines a page with its route, template file and title.
type PageDef struct {
	Route    string
	Template string
	Title    string
}

// PageData is passed to every page template. BasePath enables portable URLs
// via {{ .BasePath }}; Data carries handler-specific values.
type PageData struct {
	Title    string
	BasePath string
	Data     any
}

// TemplateSet holds a parsed layout clone per page.
type TemplateSet struct {
	pages    map[string]*template.Template
	basePath string
	data     any
}

// NewTemplateSet parses the layouts matching layoutGlob in layoutFS and clones
// them for each page found in pageFS. data is attached to every render.
func NewTemplateSet(layoutFS, pageFS fs.FS, layoutGlob, basePath string, data any, pages []PageDef) (*TemplateSet, error) {
	layouts, err := template.ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", p.Template, err)
		}
		if _, err := t.ParseFS(pageFS, p.Template); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", p.Template, err)
		}
		parsed[p.Template] = t
	}

	return &TemplateSet{
		pages:    parsed,
		basePath: basePath,
		data:     data,
	}, nil
}

// ErrorHandler renders page with the given status code.
func (ts *TemplateSet) ErrorHandler(layout string, page PageDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if err := ts.execute(w, layout, page); err != nil {
			http.Error(w, http.StatusText(status), status)
		}
	}
}

// PageHandler renders page with status 200.
func (ts *TemplateSet) PageHandler(layout string, page PageDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, layout, page); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// Render executes layout for page and sets the HTML content type.
func (ts *TemplateSet) Render(w http.ResponseWriter, layout string, page PageDef) error {
	if _, ok := ts.pages[page.Template]; !ok {
		return fmt.Errorf("template not found: %s", page.Template)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return ts.execute(w, layout, page)
}

func (ts *TemplateSet) execute(w http.ResponseWriter, layout string, page PageDef) error {
	t, ok := ts.pages[page.Template]
	if !ok {
		return fmt.Errorf("template not found: %s", page.Template)
	}
	return t.ExecuteTemplate(w, layout, PageData{
		Title:    page.Title,
		BasePath: ts.basePath,
		Data:     ts.data,
	})
}
