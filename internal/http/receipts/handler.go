package receipts

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"receiptpoints/internal/receipt"
)

const welcomeMessage = "Welcome to Receipt Processor. Use /receipts/process to submit a receipt or /receipts/<id>/points to get points."

// maxBodyBytes caps a submission at 1 MiB; receipts are small.
const maxBodyBytes = 1 << 20

type Handler struct {
	svc *receipt.Service
}

func NewHandler(svc *receipt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.welcome)
	r.With(middleware.AllowContentType("application/json")).Post("/receipts/process", h.process)
	r.Get("/receipts/{id}/points", h.points)
}

func (h *Handler) welcome(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, messageResponse{Message: welcomeMessage})
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	rec, err := receipt.Parse(body)
	if err != nil {
		var verr *receipt.ValidationError
		if errors.As(err, &verr) {
			slog.Warn("rejected receipt", "kind", verr.Kind, "field", verr.Field, "reason", verr.Msg)
			respondError(w, http.StatusBadRequest, verr.Msg)

			return
		}

		slog.Error("failed to parse receipt", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	id, err := h.svc.Process(r.Context(), rec)
	if err != nil {
		slog.Error("failed to process receipt", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	respond(w, http.StatusOK, idResponse{ID: id})
}

func (h *Handler) points(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	points, err := h.svc.Points(r.Context(), id)
	if err != nil {
		if errors.Is(err, receipt.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Receipt not found")
			return
		}

		slog.Error("failed to retrieve points", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	respond(w, http.StatusOK, pointsResponse{Points: points})
}
