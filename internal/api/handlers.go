package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/puskesmas-sedau/robot-ssa/internal/batch"
	"github.com/puskesmas-sedau/robot-ssa/internal/config"
	"github.com/puskesmas-sedau/robot-ssa/internal/history"
	"github.com/puskesmas-sedau/robot-ssa/internal/pkg/httputil"
	"github.com/puskesmas-sedau/robot-ssa/internal/portal"
)

// maxUploadMemory bounds the in-memory portion of a multipart batch.
const maxUploadMemory = 32 << 20

// Handlers contains all HTTP handlers
type Handlers struct {
	cfg    *config.Config
	runner *batch.Runner
	store  *history.Store
}

// NewHandlers creates a new Handlers instance
func NewHandlers(cfg *config.Config, runner *batch.Runner, store *history.Store) *Handlers {
	return &Handlers{cfg: cfg, runner: runner, store: store}
}

// HealthCheck reports service liveness.
// GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{
		"status":  "ok",
		"service": "robot-ssa",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// HandleUploadBatch runs one batch of report files through the upload
// pipeline. Multipart form: portal credentials in "username"/"password",
// files under "files". The batch runs synchronously; with per-item
// pacing a large batch takes minutes, which matches how operators
// already use the robot.
// POST /api/upload
func (h *Handlers) HandleUploadBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httputil.BadRequest(w, "invalid multipart request: "+err.Error())
		return
	}

	creds := portal.Credentials{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	if creds.Username == "" || creds.Password == "" {
		httputil.BadRequest(w, "username and password are required")
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		httputil.BadRequest(w, "no files provided")
		return
	}

	files := make([]batch.Input, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			httputil.BadRequest(w, fmt.Sprintf("opening %s: %v", fh.Filename, err))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			httputil.BadRequest(w, fmt.Sprintf("reading %s: %v", fh.Filename, err))
			return
		}
		files = append(files, batch.Input{Name: fh.Filename, Data: data})
	}

	run := h.runner.Run(r.Context(), files, creds)
	httputil.OK(w, run)
}

// HandleListHistory returns upload history, optionally filtered by the
// date, status, and username query parameters.
// GET /api/history
func (h *Handlers) HandleListHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records := h.store.Filter(q.Get("date"), q.Get("status"), q.Get("username"))
	httputil.OK(w, map[string]any{
		"count":   len(records),
		"records": records,
	})
}

// HandleTodayHistory returns today's uploads.
// GET /api/history/today
func (h *Handlers) HandleTodayHistory(w http.ResponseWriter, r *http.Request) {
	records := h.store.Today()
	httputil.OK(w, map[string]any{
		"count":   len(records),
		"records": records,
	})
}

// HandleHistoryStats returns the dashboard counters.
// GET /api/history/stats
func (h *Handlers) HandleHistoryStats(w http.ResponseWriter, r *http.Request) {
	records := h.store.LoadAll()

	succeeded := 0
	users := map[string]struct{}{}
	for _, rec := range records {
		if rec.Status == history.StatusSuccess {
			succeeded++
		}
		users[rec.Username] = struct{}{}
	}

	httputil.OK(w, map[string]any{
		"total_uploads": len(records),
		"succeeded":     succeeded,
		"today_uploads": len(h.store.Today()),
		"active_users":  len(users),
	})
}

// HandleExportHistory streams filtered history as a spreadsheet download.
// GET /api/history/export
func (h *Handlers) HandleExportHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	records := h.store.Filter(date, q.Get("status"), q.Get("username"))

	data, err := history.ExportXLSX(records)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	if date == "" {
		date = time.Now().Format(history.DateFormat)
	}
	httputil.Spreadsheet(w, fmt.Sprintf("Riwayat_Upload_Sedau_%s.xlsx", date), data)
}

// HandleExportToday streams today's recap as a spreadsheet download.
// GET /api/history/today/export
func (h *Handlers) HandleExportToday(w http.ResponseWriter, r *http.Request) {
	data, err := history.ExportXLSX(h.store.Today())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	name := fmt.Sprintf("Rekap_Upload_Sedau_%s.xlsx", time.Now().Format(history.DateFormat))
	httputil.Spreadsheet(w, name, data)
}

// HandleDriveLinks returns the configured Google Drive folder per report kind.
// GET /api/drive-links
func (h *Handlers) HandleDriveLinks(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, h.cfg.DriveLinks)
}
