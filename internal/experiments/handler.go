package experiments

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JaimeStill/paginalab/internal/uploads"
	"github.com/JaimeStill/paginalab/pkg/handlers"
	"github.com/JaimeStill/paginalab/pkg/routes"
	"github.com/JaimeStill/paginalab/pkg/validation"
)

// MutationResponse is returned by create and update.
type MutationResponse struct {
	Message    string      `json:"message"`
	Experiment *Experiment `json:"experimento"`
}

// Handler provides HTTP handlers for experiment endpoints.
type Handler struct {
	sys      System
	receiver *uploads.Receiver
	logger   *slog.Logger
}

// NewHandler creates a Handler. Write endpoints accept multipart forms through
// receiver or plain JSON bodies.
func NewHandler(sys System, receiver *uploads.Receiver, logger *slog.Logger) *Handler {
	return &Handler{
		sys:      sys,
		receiver: receiver,
		logger:   logger.With("handler", "experiment"),
	}
}

// Routes returns the experiment route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/experimentos",
		Tags:        []string{"Experiments"},
		Description: "Experiment posts with optional images",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/categoria/{categoria}", Handler: h.ListByCategory, OpenAPI: Spec.ListByCategory},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.List(r.Context())
	if err != nil {
		h.respondError(w, "error listing experiments", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := Category(r.PathValue("categoria"))

	result, err := h.sys.ListByCategory(r.Context(), category)
	if err != nil {
		h.respondError(w, "error listing experiments by category", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	e, err := h.sys.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, "error fetching experiment", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, e)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand

	form, err := h.receiver.Receive(w, r)
	if err == nil {
		if form == nil {
			err = decodeJSON(r, &cmd)
		} else {
			cmd = createFromForm(form)
		}
	}
	if err != nil {
		h.respondError(w, "error creating experiment", err)
		return
	}

	e, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		h.respondError(w, "error creating experiment", err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, MutationResponse{
		Message:    "experiment created successfully",
		Experiment: e,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd UpdateCommand

	form, err := h.receiver.Receive(w, r)
	if err == nil {
		if form == nil {
			err = decodeJSON(r, &cmd)
		} else if cmd, err = updateFromForm(form); err != nil {
			form.File.Discard(r.Context())
		}
	}
	if err != nil {
		h.respondError(w, "error updating experiment", err)
		return
	}

	e, err := h.sys.Update(r.Context(), r.PathValue("id"), cmd)
	if err != nil {
		h.respondError(w, "error updating experiment", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, MutationResponse{
		Message:    "experiment updated successfully",
		Experiment: e,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.respondError(w, "error deleting experiment", err)
		return
	}
	handlers.RespondMessage(w, http.StatusOK, "experiment deleted successfully")
}

func (h *Handler) respondError(w http.ResponseWriter, msg string, err error) {
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), msg, err)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}

func createFromForm(form *uploads.Form) CreateCommand {
	return CreateCommand{
		Title:       form.Values.Get("titulo"),
		Subtitle:    form.Values.Get("subtitulo"),
		Description: form.Values.Get("descripcion"),
		Category:    Category(form.Values.Get("categoria")),
		Image:       form.File,
	}
}

func updateFromForm(form *uploads.Form) (UpdateCommand, error) {
	cmd := UpdateCommand{
		Title:       formValue(form.Values, "titulo"),
		Subtitle:    formValue(form.Values, "subtitulo"),
		Description: formValue(form.Values, "descripcion"),
		Image:       form.File,
	}

	if v := formValue(form.Values, "categoria"); v != nil {
		category := Category(*v)
		cmd.Category = &category
	}

	if v := formValue(form.Values, "activo"); v != nil {
		active, err := strconv.ParseBool(*v)
		if err != nil {
			return cmd, validation.NewError("activo", "must be a boolean")
		}
		cmd.Active = &active
	}

	return cmd, nil
}

func formValue(values url.Values, key string) *string {
	if !values.Has(key) {
		return nil
	}
	v := values.Get(key)
	return &v
}
