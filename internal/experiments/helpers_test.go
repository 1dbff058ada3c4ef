package experiments_test

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/paginalab/internal/experiments"
	"github.com/JaimeStill/paginalab/internal/uploads"
	"github.com/JaimeStill/paginalab/pkg/lifecycle"
	"github.com/JaimeStill/paginalab/pkg/logging"
	"github.com/JaimeStill/paginalab/pkg/storage"
)

type fixture struct {
	store    experiments.Store
	sys      experiments.System
	receiver *uploads.Receiver
	dir      string
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithStore(t, experiments.NewMemoryStore())
}

func newFixtureWithStore(t *testing.T, store experiments.Store) *fixture {
	t.Helper()
	base := filepath.Join(t.TempDir(), "uploads")

	blobs, err := storage.New(&storage.Config{BasePath: base}, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if err := blobs.Start(lifecycle.New()); err != nil {
		t.Fatal(err)
	}

	receiver := uploads.New(uploads.Config{
		Field:   "imagen",
		Dir:     "experimentos",
		Prefix:  "experimento",
		MaxSize: 5 * 1024 * 1024,
	}, blobs, logging.Discard())

	return &fixture{
		store:    store,
		sys:      experiments.New(store, receiver, logging.Discard()),
		receiver: receiver,
		dir:      filepath.Join(base, "experimentos"),
	}
}

type formFile struct {
	name  string
	ctype string
	size  int
}

// multipartRequest builds a multipart request with text fields and optional file.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, file *formFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if file != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imagen"; filename=%q`, file.name))
		h.Set("Content-Type", file.ctype)
		w, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		w.Write(bytes.Repeat([]byte{0xff}, file.size))
	}
	mw.Close()

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// upload stores a small PNG through the receiver and returns the owned file.
func (f *fixture) upload(t *testing.T) *uploads.File {
	t.Helper()

	req := multipartRequest(t, http.MethodPost, "/", nil, &formFile{name: "foto.png", ctype: "image/png", size: 64})
	form, err := f.receiver.Receive(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	return form.File
}

func (f *fixture) exists(t *testing.T, name string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(f.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	if err != nil {
		t.Fatal(err)
	}
	return true
}

func (f *fixture) fileCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(f.dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0
	}
	if err != nil {
		t.Fatal(err)
	}
	return len(entries)
}

func validCreate() experiments.CreateCommand {
	return experiments.CreateCommand{
		Title:       "Péndulo simple",
		Subtitle:    "Medición del periodo",
		Description: "Medimos el periodo de un péndulo con distintas longitudes.",
		Category:    experiments.CategoryPhysics,
	}
}

func ptr[T any](v T) *T {
	return &v
}
