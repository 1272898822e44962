package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

const defaultHistoryLimit = 50

var (
	errNoFile          = errors.New("no file provided")
	errMissingFilename = errors.New("missing filename")
)

// StatusResponse reports server capacity for /api/status.
type StatusResponse struct {
	Imports        core.LimiterStatus `json:"imports"`
	MaxFileSize    int64              `json:"maxFileSize"`
	SupportedTypes []core.FileType    `json:"supportedTypes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleClassify reports how a filename would be parsed without reading content.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		respondError(w, r, errMissingFilename, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, s.service.Classify(filename))
}

// handleParse accepts a multipart upload in the "file" field and parses it.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	maxSize := s.service.MaxFileSize()
	// Leave room for the multipart envelope around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1<<20)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondError(w, r, core.ErrFileTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		respondError(w, r, errNoFile, http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, errNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := s.service.Import(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	if isHTMX(r) && !wantsJSON(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.ImportSummary(result).Render(r.Context(), w); err != nil {
			respondError(w, r, err, http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleHistory lists recent imports, newest first. ?limit= caps the count.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", defaultHistoryLimit)

	entries, err := s.service.History(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	if isHTMX(r) && !wantsJSON(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.HistoryTable(entries).Render(r.Context(), w); err != nil {
			respondError(w, r, err, http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHistoryEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.service.GetImport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Imports:        s.service.LimiterStatus(),
		MaxFileSize:    s.service.MaxFileSize(),
		SupportedTypes: core.SupportedTypes(),
	})
}

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
