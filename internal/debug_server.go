package internal

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"miniraw/contract"
	"miniraw/domain"
	"miniraw/infrastructure/storage"
	"miniraw/observability"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

//go:embed inspect.html
var templatesFS embed.FS

const defaultInspectLimit = 100

type InspectRow struct {
	FinishedAt  string
	JobID       string
	Remote      string
	Status      domain.JobStatus
	Duration    string
	Destination string
	Bytes       uint64
	Discarded   uint64
	ContentType string
	Error       string
}

type PageData struct {
	Status  string
	Limit   int
	Discard bool
	Items   []InspectRow
	Stats   observability.StatsSnapshot
}

// ControlServer is the operator surface of the spooler: it flips the
// discard flag and exposes the job journal and the counters.
type ControlServer struct {
	log     *slog.Logger
	control contract.IControlState
	jobs    storage.IJobRepository
	stats   *observability.SpoolStats
	tmpl    *template.Template
	server  *http.Server
}

func NewControlServer(
	log *slog.Logger,
	control contract.IControlState,
	jobs storage.IJobRepository,
	stats *observability.SpoolStats,
) *ControlServer {
	s := &ControlServer{
		log:     log,
		control: control,
		jobs:    jobs,
		stats:   stats,
		tmpl:    template.Must(template.ParseFS(templatesFS, "inspect.html")),
	}
	s.server = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	return s
}

func (s *ControlServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /discard", s.getDiscard)
	mux.HandleFunc("POST /discard", s.postDiscard)
	mux.HandleFunc("GET /inspect", s.inspect)
	mux.HandleFunc("GET /healthz", s.healthz)
	return mux
}

// Serve blocks until Shutdown is called.
func (s *ControlServer) Serve(ln net.Listener) error {
	s.log.Info("Control server available", "url", fmt.Sprintf("http://%s/inspect", ln.Addr()))
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *ControlServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type discardState struct {
	Enabled bool `json:"enabled"`
}

func (s *ControlServer) getDiscard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, discardState{Enabled: s.control.IsDiscardEnabled()})
}

func (s *ControlServer) postDiscard(w http.ResponseWriter, r *http.Request) {
	enabled, err := strconv.ParseBool(r.URL.Query().Get("enabled"))
	if err != nil {
		http.Error(w, "enabled must be true or false", http.StatusBadRequest)
		return
	}
	s.control.SetDiscard(enabled)
	writeJSON(w, http.StatusOK, discardState{Enabled: s.control.IsDiscardEnabled()})
}

func (s *ControlServer) healthz(w http.ResponseWriter, _ *http.Request) {
	if !s.control.IsListening() {
		http.Error(w, "NOT LISTENING", http.StatusServiceUnavailable)
		return
	}
	fmt.Fprint(w, "OK")
}

// inspect renders the newest journal entries, optionally filtered by
// status. ?format=json returns the raw records instead of the page.
func (s *ControlServer) inspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := defaultInspectLimit
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	status := strings.ToUpper(query.Get("status"))

	records, err := s.jobs.FindJobs(domain.JobStatus(status), limit)
	if err != nil {
		s.log.Error("Unable to read the job journal", "error", err)
		http.Error(w, "journal unavailable", http.StatusInternalServerError)
		return
	}

	if query.Get("format") == "json" {
		writeJSON(w, http.StatusOK, records)
		return
	}

	data := PageData{
		Status:  status,
		Limit:   limit,
		Discard: s.control.IsDiscardEnabled(),
		Items:   lo.Map(records, func(record storage.JobRecord, _ int) InspectRow { return ToInspectRow(record) }),
		Stats:   s.stats.Snapshot(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.log.Debug("Inspect page rendering interrupted", "error", err)
	}
}

func ToInspectRow(record storage.JobRecord) InspectRow {
	destination := record.Path
	if destination == "" {
		destination = "discarded"
	}
	duration := "-"
	if !record.AcceptedAt.IsZero() && !record.FinishedAt.IsZero() {
		duration = record.FinishedAt.Sub(record.AcceptedAt).Round(time.Millisecond).String()
	}
	id := record.ID.String()
	if len(id) > 8 {
		id = id[:8]
	}
	return InspectRow{
		FinishedAt:  record.FinishedAt.Local().Format("2006-01-02 15:04:05"),
		JobID:       id,
		Remote:      record.RemoteAddr,
		Status:      record.Status,
		Duration:    duration,
		Destination: destination,
		Bytes:       record.BytesWritten,
		Discarded:   record.BytesDiscarded,
		ContentType: lo.Ternary(record.ContentType == "", "-", record.ContentType),
		Error:       record.Error,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
