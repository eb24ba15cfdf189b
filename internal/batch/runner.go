// Package batch drives a set of report files through ingestion and
// upload, strictly one at a time. Sequencing is deliberate: it bounds
// load on the portal and keeps the single-writer history log safe.
package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/puskesmas-sedau/robot-ssa/internal/pkg/logger"
	"github.com/puskesmas-sedau/robot-ssa/internal/pkg/pacer"
	"github.com/puskesmas-sedau/robot-ssa/internal/portal"
	"github.com/puskesmas-sedau/robot-ssa/internal/report"
)

// SuccessMarker tags successful result lines for downstream presentation.
const SuccessMarker = "✅"

// Input is one raw file handed to the batch.
type Input struct {
	Name string
	Data []byte
}

// ItemResult is the outcome of one file in a run.
type ItemResult struct {
	File    string `json:"file"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Line renders the item as one human-readable result line.
func (r ItemResult) Line() string {
	return r.File + ": " + r.Message
}

// RunResult aggregates one batch run. It is ephemeral: only history
// records persist, one per successful upload.
type RunResult struct {
	ID         string       `json:"id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Succeeded  int          `json:"succeeded"`
	Failed     int          `json:"failed"`
	Items      []ItemResult `json:"items"`
}

// Lines renders every item result, one line per input file, in input order.
func (r RunResult) Lines() []string {
	lines := make([]string, len(r.Items))
	for i, item := range r.Items {
		lines[i] = item.Line()
	}
	return lines
}

// Submitter uploads one ingested report. *portal.Submitter satisfies it.
type Submitter interface {
	Submit(ctx context.Context, table report.Table, fileName string, creds portal.Credentials) portal.Result
}

// Runner processes batches sequentially with randomized pacing between
// items. Never run two batches concurrently against the same history
// store; the store's rewrite-on-append is single-writer only.
type Runner struct {
	submitter Submitter
	pacer     *pacer.Pacer

	// pause is the inter-item delay hook; tests replace it.
	pause func()
}

// NewRunner creates a Runner pacing items with the given Pacer.
func NewRunner(submitter Submitter, p *pacer.Pacer) *Runner {
	r := &Runner{submitter: submitter, pacer: p}
	r.pause = func() {
		d := r.pacer.Wait()
		logger.Debug("batch: paced", "delay", d.String())
	}
	return r
}

// Run processes every file in order: ingest, upload, record a result
// line, pause, next. A file that cannot be ingested soft-fails and the
// batch continues; no failure of one item ever aborts the rest. The
// pause also follows the last item, matching the established operator
// workflow.
func (r *Runner) Run(ctx context.Context, files []Input, creds portal.Credentials) RunResult {
	run := RunResult{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Items:     make([]ItemResult, 0, len(files)),
	}
	logger.Info("batch: run started", "run_id", run.ID, "files", len(files))

	for i, file := range files {
		logger.Info("batch: processing file",
			"run_id", run.ID, "index", fmt.Sprintf("%d/%d", i+1, len(files)), "file", file.Name)

		item := r.processOne(ctx, file, creds)
		run.Items = append(run.Items, item)
		if item.Success {
			run.Succeeded++
		} else {
			run.Failed++
		}

		r.pause()
	}

	run.FinishedAt = time.Now()
	logger.Info("batch: run finished",
		"run_id", run.ID, "succeeded", run.Succeeded, "failed", run.Failed)
	return run
}

func (r *Runner) processOne(ctx context.Context, file Input, creds portal.Credentials) ItemResult {
	table, err := report.Ingest(file.Name, file.Data)
	if err != nil {
		logger.Warn("batch: ingestion failed", "file", file.Name, "error", err)
		return ItemResult{
			File:    file.Name,
			Success: false,
			Message: "❌ Gagal memproses file",
		}
	}

	res := r.submitter.Submit(ctx, table, file.Name, creds)
	message := res.Message
	if res.Success && !strings.Contains(message, SuccessMarker) {
		message = SuccessMarker + " " + message
	}
	return ItemResult{File: file.Name, Success: res.Success, Message: message}
}
