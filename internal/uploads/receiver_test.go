package uploads_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/JaimeStill/paginalab/internal/uploads"
	"github.com/JaimeStill/paginalab/pkg/lifecycle"
	"github.com/JaimeStill/paginalab/pkg/logging"
	"github.com/JaimeStill/paginalab/pkg/storage"
)

type part struct {
	field    string
	filename string
	ctype    string
	data     []byte
}

func filePart(field, filename, ctype string, size int) part {
	return part{field: field, filename: filename, ctype: ctype, data: bytes.Repeat([]byte{0x89}, size)}
}

func valuePart(field, value string) part {
	return part{field: field, data: []byte(value)}
}

func newRequest(t *testing.T, parts ...part) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for _, p := range parts {
		if p.filename == "" {
			if err := mw.WriteField(p.field, string(p.data)); err != nil {
				t.Fatal(err)
			}
			continue
		}

		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.filename))
		h.Set("Content-Type", p.ctype)
		w, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		w.Write(p.data)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/experimentos", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newReceiver(t *testing.T, maxSize int64) (*uploads.Receiver, string) {
	t.Helper()
	base := filepath.Join(t.TempDir(), "uploads")

	store, err := storage.New(&storage.Config{BasePath: base}, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Start(lifecycle.New()); err != nil {
		t.Fatal(err)
	}

	r := uploads.New(uploads.Config{
		Field:   "imagen",
		Dir:     "experimentos",
		Prefix:  "experimento",
		MaxSize: maxSize,
	}, store, logging.Discard())

	return r, filepath.Join(base, "experimentos")
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0
	}
	if err != nil {
		t.Fatal(err)
	}
	return len(entries)
}

const fiveMiB = 5 * 1024 * 1024

func TestReceive_NotMultipart(t *testing.T) {
	r, _ := newReceiver(t, fiveMiB)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"titulo":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	form, err := r.Receive(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if form != nil {
		t.Errorf("form = %+v, want nil for JSON body", form)
	}
}

func TestReceive_ValuesOnly(t *testing.T) {
	r, dir := newReceiver(t, fiveMiB)

	form, err := r.Receive(httptest.NewRecorder(), newRequest(t,
		valuePart("titulo", "Péndulo"),
		valuePart("categoria", "fisica"),
	))
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}

	if form.File != nil {
		t.Error("File should be nil without a file part")
	}
	if form.Values.Get("titulo") != "Péndulo" || form.Values.Get("categoria") != "fisica" {
		t.Errorf("Values = %v", form.Values)
	}
	if n := countFiles(t, dir); n != 0 {
		t.Errorf("files on disk = %d, want 0", n)
	}
}

func TestReceive_AcceptsImage(t *testing.T) {
	r, dir := newReceiver(t, fiveMiB)

	form, err := r.Receive(httptest.NewRecorder(), newRequest(t,
		valuePart("titulo", "Péndulo"),
		filePart("imagen", "FOTO.PNG", "image/png", 2*1024*1024),
	))
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}

	if form.File == nil {
		t.Fatal("File should be set")
	}

	pattern := regexp.MustCompile(`^experimento-\d+-\d+\.png$`)
	if !pattern.MatchString(form.File.Name) {
		t.Errorf("Name = %q, want match %s", form.File.Name, pattern)
	}

	info, err := os.Stat(filepath.Join(dir, form.File.Name))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if info.Size() != 2*1024*1024 {
		t.Errorf("stored size = %d", info.Size())
	}
}

func TestReceive_AcceptsExactLimit(t *testing.T) {
	r, _ := newReceiver(t, fiveMiB)

	form, err := r.Receive(httptest.NewRecorder(), newRequest(t,
		filePart("imagen", "a.webp", "image/webp", fiveMiB),
	))
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if form.File == nil || form.File.Size != fiveMiB {
		t.Errorf("File = %+v", form.File)
	}
}

func TestReceive_AllowedTypes(t *testing.T) {
	for _, ctype := range []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp", "IMAGE/PNG"} {
		t.Run(ctype, func(t *testing.T) {
			r, _ := newReceiver(t, fiveMiB)

			form, err := r.Receive(httptest.NewRecorder(), newRequest(t, filePart("imagen", "a.img", ctype, 16)))
			if err != nil {
				t.Fatalf("Receive() error = %v", err)
			}
			if form.File == nil {
				t.Error("File should be set")
			}
		})
	}
}

func TestReceive_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		parts   []part
		wantErr error
		wantMsg string
	}{
		{
			name:    "pdf",
			parts:   []part{filePart("imagen", "doc.pdf", "application/pdf", 16)},
			wantErr: uploads.ErrInvalidType,
			wantMsg: "invalid file type, allowed: JPEG, JPG, PNG, GIF, WEBP",
		},
		{
			name:    "svg",
			parts:   []part{filePart("imagen", "a.svg", "image/svg+xml", 16)},
			wantErr: uploads.ErrInvalidType,
		},
		{
			name:    "over limit",
			parts:   []part{filePart("imagen", "big.jpg", "image/jpeg", fiveMiB+1)},
			wantErr: uploads.ErrFileTooLarge,
			wantMsg: "file too large, maximum size is 5MiB",
		},
		{
			name:    "wrong field",
			parts:   []part{filePart("foto", "a.png", "image/png", 16)},
			wantErr: uploads.ErrUnexpectedField,
			wantMsg: "unexpected file field",
		},
		{
			name: "two files",
			parts: []part{
				filePart("imagen", "a.png", "image/png", 16),
				filePart("imagen", "b.png", "image/png", 16),
			},
			wantErr: uploads.ErrUnexpectedField,
		},
		{
			name: "second file under other field",
			parts: []part{
				filePart("imagen", "a.png", "image/png", 16),
				filePart("otra", "b.pdf", "application/pdf", 16),
			},
			wantErr: uploads.ErrUnexpectedField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, dir := newReceiver(t, fiveMiB)

			_, err := r.Receive(httptest.NewRecorder(), newRequest(t, tt.parts...))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Receive() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
			if uploads.MapHTTPStatus(err) != http.StatusBadRequest {
				t.Errorf("MapHTTPStatus() = %d, want 400", uploads.MapHTTPStatus(err))
			}
			if n := countFiles(t, dir); n != 0 {
				t.Errorf("files on disk = %d, want 0", n)
			}
		})
	}
}

func TestReceive_OversizedBody(t *testing.T) {
	r, _ := newReceiver(t, 10)

	_, err := r.Receive(httptest.NewRecorder(), newRequest(t,
		valuePart("descripcion", strings.Repeat("a", 2<<20)),
	))
	if !errors.Is(err, uploads.ErrFileTooLarge) {
		t.Errorf("Receive() error = %v, want ErrFileTooLarge", err)
	}
}

func TestFile_Discard(t *testing.T) {
	r, dir := newReceiver(t, fiveMiB)

	form, err := r.Receive(httptest.NewRecorder(), newRequest(t, filePart("imagen", "a.gif", "image/gif", 16)))
	if err != nil {
		t.Fatal(err)
	}

	form.File.Discard(context.Background())

	if n := countFiles(t, dir); n != 0 {
		t.Errorf("files on disk = %d, want 0 after Discard", n)
	}

	var nilFile *uploads.File
	nilFile.Discard(context.Background())
}

func TestRemove_InvalidName(t *testing.T) {
	r, _ := newReceiver(t, fiveMiB)

	for _, name := range []string{"", "..", "../config.toml", `a\b`} {
		if err := r.Remove(context.Background(), name); !errors.Is(err, storage.ErrInvalidKey) {
			t.Errorf("Remove(%q) = %v, want ErrInvalidKey", name, err)
		}
	}
}

func TestServe(t *testing.T) {
	r, _ := newReceiver(t, fiveMiB)

	form, err := r.Receive(httptest.NewRecorder(), newRequest(t, filePart("imagen", "a.png", "image/png", 32)))
	if err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	group := r.Routes()
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+group.Prefix+route.Pattern, route.Handler)
	}

	tests := []struct {
		path   string
		status int
	}{
		{"/uploads/experimentos/" + form.File.Name, http.StatusOK},
		{"/uploads/experimentos/experimento-0-0.png", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.status == http.StatusOK && w.Body.Len() != 32 {
				t.Errorf("body length = %d, want 32", w.Body.Len())
			}
		})
	}
}
