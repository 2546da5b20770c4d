package recorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"veridian-hq/minerva/pkg/audit"
	"veridian-hq/minerva/pkg/engine"
)

// Config contains configuration for the audit recorder.
type Config struct {
	// Enabled enables audit recording.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 1000
	AsyncBuffer int

	// WriteTimeout is the timeout for writing a record to storage.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		AsyncBuffer:  1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder records audit records for validation runs.
// Records are written asynchronously to avoid blocking validation.
type Recorder struct {
	storage    audit.Storage
	config     *Config
	recordChan chan *audit.Record
	wg         sync.WaitGroup
	done       chan struct{}
	logger     *slog.Logger
}

// NewRecorder creates a new audit recorder with the provided storage
// backend and configuration.
func NewRecorder(storage audit.Storage, config *Config) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		recordChan: make(chan *audit.Record, config.AsyncBuffer),
		done:       make(chan struct{}),
		logger:     slog.Default().With("component", "audit.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("audit recorder initialized",
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
	)

	return r
}

// Record converts a validation report into an audit record and enqueues
// it for async writing. The recordID identifies the validated record and
// may be empty.
//
// This method returns immediately and does not block on storage writes.
func (r *Recorder) Record(report *engine.Report, recordID string) error {
	if !r.config.Enabled {
		return nil
	}

	record := buildRecord(report, recordID)

	select {
	case r.recordChan <- record:
		r.logger.Debug("audit record enqueued for writing",
			"record_id", record.ID,
			"run_id", record.RunID,
		)
	case <-time.After(r.config.WriteTimeout):
		r.logger.Error("audit record channel full, dropping record",
			"record_id", record.ID,
			"run_id", record.RunID,
			"channel_capacity", r.config.AsyncBuffer,
		)
		return audit.NewRecorderError(record.ID, context.DeadlineExceeded)
	case <-r.done:
		r.logger.Warn("recorder shutting down, dropping record",
			"record_id", record.ID,
			"run_id", record.RunID,
		)
		return audit.NewRecorderError(record.ID, context.Canceled)
	}

	return nil
}

// Close gracefully shuts down the recorder by draining the async channel
// and waiting for all pending writes to complete.
func (r *Recorder) Close() error {
	r.logger.Info("shutting down audit recorder")

	close(r.done)
	r.wg.Wait()

	r.logger.Info("audit recorder shut down complete")
	return nil
}

// worker is the background goroutine that drains the record channel and
// writes records to storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordChan:
			r.writeRecord(record)

		case <-r.done:
			r.logger.Info("draining audit channel before shutdown",
				"pending_count", len(r.recordChan),
			)

			for {
				select {
				case record := <-r.recordChan:
					r.writeRecord(record)
				default:
					r.logger.Info("audit channel drained")
					return
				}
			}
		}
	}
}

// writeRecord writes a single audit record to storage.
func (r *Recorder) writeRecord(record *audit.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	start := time.Now()

	err := r.storage.Store(ctx, record)
	if err != nil {
		r.logger.Error("failed to store audit record",
			"record_id", record.ID,
			"run_id", record.RunID,
			"error", err,
		)
		return
	}

	duration := time.Since(start)

	r.logger.Debug("audit record written",
		"record_id", record.ID,
		"run_id", record.RunID,
		"valid", record.Valid,
		"duration_ms", duration.Milliseconds(),
	)

	if duration > r.config.WriteTimeout/2 {
		r.logger.Warn("slow audit write",
			"record_id", record.ID,
			"duration_ms", duration.Milliseconds(),
			"threshold_ms", (r.config.WriteTimeout / 2).Milliseconds(),
		)
	}
}

// buildRecord converts a validation report into an audit record.
func buildRecord(report *engine.Report, recordID string) *audit.Record {
	violations := make([]audit.Violation, 0, len(report.Violations))
	for _, v := range report.Violations {
		violations = append(violations, audit.Violation{
			Field:   v.Field,
			Rule:    v.Rule,
			Message: v.Message,
		})
	}

	return &audit.Record{
		ID:             uuid.New().String(),
		RunID:          report.RunID,
		RecordType:     report.RecordType,
		RecordID:       recordID,
		StartedAt:      report.StartedAt,
		RecordedAt:     time.Now(),
		Valid:          report.Valid(),
		Violations:     violations,
		ViolationCount: len(violations),
		Duration:       report.Duration,
	}
}
