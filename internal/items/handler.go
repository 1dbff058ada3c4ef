package items

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/paginalab/pkg/handlers"
	"github.com/JaimeStill/paginalab/pkg/routes"
)

type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "item"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/items",
		Tags:        []string{"Items"},
		Description: "General laboratory items",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.List(r.Context())
	if err != nil {
		h.respondError(w, "error listing items", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	item, err := h.sys.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, "error fetching item", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, item)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := decode(r, &cmd); err != nil {
		h.respondError(w, "error creating item", err)
		return
	}

	item, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		h.respondError(w, "error creating item", err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd UpdateCommand
	if err := decode(r, &cmd); err != nil {
		h.respondError(w, "error updating item", err)
		return
	}

	item, err := h.sys.Update(r.Context(), r.PathValue("id"), cmd)
	if err != nil {
		h.respondError(w, "error updating item", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.respondError(w, "error deleting item", err)
		return
	}
	handlers.RespondMessage(w, http.StatusOK, "item deleted successfully")
}

func (h *Handler) respondError(w http.ResponseWriter, msg string, err error) {
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), msg, err)
}

// decode reads a JSON body. An empty body decodes to the zero command.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}
