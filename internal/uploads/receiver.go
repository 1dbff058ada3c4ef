// Package uploads receives image uploads from multipart requests, validates
// them and writes accepted files to blob storage.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/docker/go-units"

	"github.com/JaimeStill/paginalab/pkg/handlers"
	"github.com/JaimeStill/paginalab/pkg/routes"
	"github.com/JaimeStill/paginalab/pkg/storage"
)

// formOverhead bounds the non-file portion of a multipart body.
const formOverhead = 1 << 20

// Config describes where accepted files go and how large they may be.
type Config struct {
	// Field is the only form field allowed to carry a file.
	Field string
	// Dir is the storage key prefix and the public URL segment.
	Dir string
	// Prefix starts every generated file name.
	Prefix  string
	MaxSize int64
}

// Form is a decoded multipart payload.
type Form struct {
	Values url.Values
	File   *File
}

// Receiver validates and stores uploads.
type Receiver struct {
	cfg     Config
	storage storage.System
	logger  *slog.Logger
}

// New creates a Receiver that writes to store.
func New(cfg Config, store storage.System, logger *slog.Logger) *Receiver {
	return &Receiver{
		cfg:     cfg,
		storage: store,
		logger:  logger.With("system", "uploads", "dir", cfg.Dir),
	}
}

// Receive parses a multipart request. Non-multipart requests yield a nil Form
// and no error so callers can fall back to a JSON body.
//
// Every part is checked before anything is written: at most one file, only
// under the configured field, with an allowed declared type and within the
// size limit.
func (r *Receiver) Receive(w http.ResponseWriter, req *http.Request) (*Form, error) {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return nil, nil
	}

	req.Body = http.MaxBytesReader(w, req.Body, r.cfg.MaxSize+formOverhead)

	mr, err := req.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	form := &Form{Values: url.Values{}}
	var (
		data     []byte
		filename string
		ctype    string
	)

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, r.readError(err)
		}

		if part.FileName() == "" {
			value, err := io.ReadAll(part)
			if err != nil {
				return nil, r.readError(err)
			}
			form.Values.Add(part.FormName(), string(value))
			continue
		}

		if part.FormName() != r.cfg.Field || data != nil {
			return nil, ErrUnexpectedField
		}

		ctype = part.Header.Get("Content-Type")
		if !allowedType(ctype) {
			return nil, ErrInvalidType
		}

		if data, err = r.readFile(part); err != nil {
			return nil, err
		}
		filename = part.FileName()
	}

	if data == nil {
		return form, nil
	}

	file, err := r.store(req.Context(), filename, ctype, data)
	if err != nil {
		return nil, err
	}
	form.File = file

	return form, nil
}

// Remove deletes a stored file by name.
func (r *Receiver) Remove(ctx context.Context, name string) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidKey, name)
	}
	return r.storage.Delete(ctx, r.key(name))
}

// Routes serves stored files under /uploads/<dir>/{filename}.
func (r *Receiver) Routes() routes.Group {
	return routes.Group{
		Prefix: "/uploads/" + r.cfg.Dir,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{filename}", Handler: r.Serve},
		},
	}
}

// Serve writes the stored file named by the {filename} path value.
func (r *Receiver) Serve(w http.ResponseWriter, req *http.Request) {
	name := req.PathValue("filename")
	if !validName(name) {
		handlers.RespondError(w, r.logger, http.StatusNotFound, "", ErrFileNotFound)
		return
	}

	exists, err := r.storage.Validate(req.Context(), r.key(name))
	if err != nil {
		handlers.RespondError(w, r.logger, http.StatusInternalServerError, "error reading file", err)
		return
	}
	if !exists {
		handlers.RespondError(w, r.logger, http.StatusNotFound, "", ErrFileNotFound)
		return
	}

	path, err := r.storage.Path(req.Context(), r.key(name))
	if err != nil {
		handlers.RespondError(w, r.logger, http.StatusInternalServerError, "error reading file", err)
		return
	}

	http.ServeFile(w, req, path)
}

func (r *Receiver) readFile(part *multipart.Part) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(part, r.cfg.MaxSize+1))
	if err != nil {
		return nil, r.readError(err)
	}
	if int64(len(data)) > r.cfg.MaxSize {
		return nil, r.tooLarge()
	}
	return data, nil
}

func (r *Receiver) store(ctx context.Context, original, ctype string, data []byte) (*File, error) {
	name := generateName(r.cfg.Prefix, original)

	if err := r.storage.Store(ctx, r.key(name), data); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	r.logger.Info("upload stored", "name", name, "size", len(data), "content_type", ctype)

	return &File{
		Name:        name,
		ContentType: strings.ToLower(ctype),
		Size:        int64(len(data)),
		receiver:    r,
	}, nil
}

func (r *Receiver) readError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return r.tooLarge()
	}
	return fmt.Errorf("%w: %v", ErrInvalidForm, err)
}

func (r *Receiver) tooLarge() error {
	return fmt.Errorf("%w, maximum size is %s", ErrFileTooLarge, units.BytesSize(float64(r.cfg.MaxSize)))
}

func (r *Receiver) key(name string) string {
	return r.cfg.Dir + "/" + name
}
