package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/jmakk0301/aws-console-time-keeper/console"
	"github.com/jmakk0301/aws-console-time-keeper/storage"
)

// Handlers holds the dependencies for the API endpoints.
type Handlers struct {
	store storage.Storer
	now   func() time.Time
}

// NewHandlers creates the handler set over a capture store.
func NewHandlers(store storage.Storer) *Handlers {
	return &Handlers{store: store, now: time.Now}
}

// Router registers all routes.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/parse", h.Parse).Methods(http.MethodPost)
	r.HandleFunc("/v1/inject", h.Inject).Methods(http.MethodPost)
	r.HandleFunc("/v1/captures", h.ListCaptures).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)
	return r
}

type parseRequest struct {
	Address string `json:"address"`
}

type parseResponse struct {
	Scheme     string `json:"scheme"`
	StartMS    int64  `json:"start_ms"`
	EndMS      int64  `json:"end_ms"`
	Mode       string `json:"mode"`
	CapturedAt int64  `json:"captured_at"`
}

type injectRequest struct {
	Address string `json:"address"`
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
}

type injectResponse struct {
	Address string `json:"address"`
	Scheme  string `json:"scheme"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Parse decodes the time range of an address and records it in the
// capture history.
func (h *Handlers) Parse(w http.ResponseWriter, req *http.Request) {
	var body parseRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Address == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request"})
		return
	}

	r, tag, err := console.Parse(body.Address, h.now())
	if err != nil {
		writeFailure(w, err)
		return
	}

	c := &storage.Capture{
		Address:    body.Address,
		Scheme:     tag.String(),
		StartMS:    r.Start,
		EndMS:      r.End,
		Mode:       r.Mode.String(),
		CapturedAt: time.UnixMilli(r.CapturedAt).UTC(),
	}
	if err := h.store.SaveCapture(req.Context(), c); err != nil {
		log.Printf("save capture: %v", err)
	}

	writeJSON(w, http.StatusOK, parseResponse{
		Scheme:     tag.String(),
		StartMS:    r.Start,
		EndMS:      r.End,
		Mode:       r.Mode.String(),
		CapturedAt: r.CapturedAt,
	})
}

// Inject writes an absolute range into an address and returns the new
// address text.
func (h *Handlers) Inject(w http.ResponseWriter, req *http.Request) {
	var body injectRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Address == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request"})
		return
	}

	out, tag, err := console.Inject(body.Address, &console.TimeRange{Start: body.StartMS, End: body.EndMS})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, injectResponse{Address: out, Scheme: tag.String()})
}

// ListCaptures returns the capture history, newest first.
func (h *Handlers) ListCaptures(w http.ResponseWriter, req *http.Request) {
	limit := 0
	if s := req.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad limit"})
			return
		}
		limit = n
	}

	captures, err := h.store.ListCaptures(req.Context(), limit)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "storage failure"})
		return
	}
	if captures == nil {
		captures = []storage.Capture{}
	}
	writeJSON(w, http.StatusOK, captures)
}

// Healthz reports liveness.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// writeFailure maps the engine's failure taxonomy onto HTTP. All three
// codes are recoverable client-side conditions.
func writeFailure(w http.ResponseWriter, err error) {
	code := console.ReasonCode(err)
	if code == "" {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal"})
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
