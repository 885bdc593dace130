package receipt

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

const (
	msgInvalidID = "Invalid receipt id."
	msgNotFound  = "Receipt not found."
	msgInternal  = "An error occurred processing the receipt."
)

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// writeError writes an {"error": message} response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	if err := writeJSON(w, status, map[string]string{"error": message}); err != nil {
		s.logger.Error("Error encoding response", "error", err)
	}
}

// writeLookupError maps an id lookup failure to its response
func (s *Server) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidID):
		s.writeError(w, http.StatusBadRequest, msgInvalidID)
	case errors.Is(err, ErrNotFound):
		s.writeError(w, http.StatusNotFound, msgNotFound)
	default:
		s.logger.Error("Error looking up receipt",
			"id", r.PathValue("id"),
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		s.writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// handleProcessReceipt validates, scores and stores a receipt
func (s *Server) handleProcessReceipt(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "Receipt is too large.")
			return
		}
		s.logger.Warn("Error reading request body", "error", err)
		s.writeError(w, http.StatusBadRequest, "Error reading request body.")
		return
	}

	id, err := s.service.Process(body)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.logger.Info("Rejected receipt",
				"request_id", middleware.GetReqID(r.Context()),
				"error", verr,
			)
			s.writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		s.logger.Error("Error processing receipt",
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		s.writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	if err := writeJSON(w, http.StatusOK, map[string]string{"id": id}); err != nil {
		s.logger.Error("Error encoding response", "error", err)
	}
}

// handleGetPoints returns the points awarded to a receipt
func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	points, err := s.service.Points(r.PathValue("id"))
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, map[string]int64{"points": points}); err != nil {
		s.logger.Error("Error encoding response", "error", err)
	}
}

// handleGetReceipt returns a single stored receipt
func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	stored, err := s.service.Receipt(r.PathValue("id"))
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, stored); err != nil {
		s.logger.Error("Error encoding response", "error", err)
	}
}

// handleDeleteReceipt deletes a receipt
func (s *Server) handleDeleteReceipt(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Delete(r.PathValue("id")); err != nil {
		s.writeLookupError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		s.logger.Error("Error encoding response", "error", err)
	}
}
