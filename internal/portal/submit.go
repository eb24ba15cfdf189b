package portal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/puskesmas-sedau/robot-ssa/internal/forms"
	"github.com/puskesmas-sedau/robot-ssa/internal/history"
	"github.com/puskesmas-sedau/robot-ssa/internal/pkg/logger"
	"github.com/puskesmas-sedau/robot-ssa/internal/report"
)

// Submitter drives the full submission sequence for one tabular report:
// authenticate, derive title and date, resolve the form mapping, render
// a clean spreadsheet, upload, and record the outcome durably.
type Submitter struct {
	client  *Client
	forms   *forms.Resolver
	history *history.Store
	now     func() time.Time
}

// NewSubmitter wires a Submitter from its collaborators.
func NewSubmitter(client *Client, resolver *forms.Resolver, store *history.Store) *Submitter {
	return &Submitter{
		client:  client,
		forms:   resolver,
		history: store,
		now:     time.Now,
	}
}

// Submit uploads one report and returns a tagged Result. Failure paths
// never raise past this method: authentication failures, unmapped
// titles, remote rejections, and unexpected faults all come back as a
// descriptive failure message, so a batch can always continue.
func (s *Submitter) Submit(ctx context.Context, table report.Table, fileName string, creds Credentials) Result {
	logger.Info("portal: login", "username", creds.Username, "file", fileName)
	token, err := s.client.Login(ctx, creds)
	if err != nil {
		var authErr *AuthError
		switch {
		case errors.As(err, &authErr):
			return failure("Login failed: " + authErr.Body)
		case errors.Is(err, ErrNoToken):
			return failure("No token received")
		default:
			return failure("Error: " + err.Error())
		}
	}

	if table.Empty() {
		return failure(fmt.Sprintf("Could not read data from %s", fileName))
	}

	rawTitle := table.RawTitle()
	cleanTitle := report.CleanTitle(rawTitle)

	// Rows 1-5 of the export conventionally carry the report period.
	date := ""
	for i := 1; i <= 5; i++ {
		if d, ok := report.ExtractDate(table.RowText(i)); ok {
			date = d
			break
		}
	}
	if date == "" {
		date = s.now().Format(history.DateFormat)
	}

	formID, err := s.forms.Resolve(cleanTitle)
	if err != nil {
		var unmapped *forms.UnmappedTitleError
		if errors.As(err, &unmapped) {
			return failure(fmt.Sprintf("Judul '%s' tidak terdaftar di mapping", unmapped.Title))
		}
		return failure("Error: " + err.Error())
	}

	newName := report.UploadFilenameAt(report.ShortTitle(cleanTitle), s.now())
	rendered, err := table.RenderXLSX()
	if err != nil {
		return failure("Error: " + err.Error())
	}

	logger.Info("portal: upload",
		"file", fileName, "judul", cleanTitle, "formulir", formID, "tanggal", date)
	receipt, err := s.client.Upload(ctx, token, formID, date, newName, rendered)
	if err != nil {
		var rejection *RejectionError
		if errors.As(err, &rejection) {
			return failure("Gagal: " + rejection.Body)
		}
		return failure("Error: " + err.Error())
	}

	rec := history.Record{
		WaktuUpload:      s.now().Format(history.TimestampFormat),
		NamaFile:         fileName,
		JenisLaporan:     rawTitle,
		IDDatabaseServer: receipt.ServerID,
		Status:           history.StatusSuccess,
		Username:         creds.Username,
		TanggalLaporan:   date,
	}
	if err := s.history.Append(rec); err != nil {
		// The portal accepted the file but the audit record is gone;
		// surface that as the item's failure so the operator re-checks.
		return failure("Error: " + err.Error())
	}

	logger.Info("portal: upload accepted", "file", fileName, "server_id", receipt.ServerID)
	return Result{
		Success:    true,
		Message:    fmt.Sprintf("✅ Berhasil! ID Server: %s", receipt.ServerID),
		ServerID:   receipt.ServerID,
		Title:      cleanTitle,
		ReportDate: date,
	}
}

func failure(msg string) Result {
	logger.Warn("portal: submission failed", "reason", msg)
	return Result{Success: false, Message: msg}
}
