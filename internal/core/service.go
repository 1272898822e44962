package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/roster/internal/config"
	"github.com/JonMunkholm/roster/internal/logging"
	"github.com/google/uuid"
)

// DefaultMaxFileSize applies when no config is given (10MB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Service wraps the parser with size limits, concurrency control and import history.
type Service struct {
	history     HistoryStore
	limiter     *ImportLimiter
	maxFileSize int64
	timeout     time.Duration

	now func() time.Time
}

// NewService creates a Service. A nil history keeps entries in memory; a nil
// cfg uses the package defaults.
func NewService(history HistoryStore, cfg *config.Config) *Service {
	s := &Service{
		history:     history,
		maxFileSize: DefaultMaxFileSize,
		now:         time.Now,
	}

	historyLimit := 0
	if cfg != nil {
		if cfg.Import.MaxFileSize > 0 {
			s.maxFileSize = cfg.Import.MaxFileSize
		}
		s.timeout = cfg.Import.Timeout
		s.limiter = NewImportLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime)
		historyLimit = cfg.Import.HistoryLimit
	} else {
		s.limiter = NewImportLimiter(0, 0)
	}

	if s.history == nil {
		s.history = NewMemoryHistory(historyLimit)
	}
	return s
}

// Import reads a roster file, parses it and records the outcome in history.
// size is the declared content length, or -1 if unknown.
func (s *Service) Import(ctx context.Context, filename string, r io.Reader, size int64) (*ImportResult, error) {
	logger := logging.WithFields(ctx, "file", filename)

	if size > s.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, size, s.maxFileSize)
	}

	// Reject unknown names before spending a slot on them.
	if c := Classify(filename); c.Type == TypeUnknown {
		return nil, &UnsupportedFileTypeError{Filename: filename}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("acquire import slot: %w", err)
	}
	defer s.limiter.Release()

	start := s.now()

	data, err := io.ReadAll(io.LimitReader(r, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrFileTooLarge, s.maxFileSize)
	}

	result, err := ParseFile(filename, data)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := result.Summary()
	entry := HistoryEntry{
		ID:          uuid.NewString(),
		FileName:    filename,
		Type:        result.Type,
		CourseCode:  summary.CourseCode,
		TermDisplay: summary.TermDisplay,
		Students:    summary.Students,
		Groups:      summary.Groups,
		Skipped:     summary.Skipped,
		SizeBytes:   int64(len(data)),
		ParsedAt:    start.UTC(),
		Duration:    s.now().Sub(start),
	}

	if err := s.history.Record(ctx, entry); err != nil {
		logger.Warn("failed to record import history", "import_id", entry.ID, "error", err)
	}

	logger.Info("roster parsed",
		"import_id", entry.ID,
		"type", result.Type,
		"students", summary.Students,
		"groups", summary.Groups,
		"skipped", summary.Skipped,
		"duration_ms", entry.Duration.Milliseconds(),
	)

	return &ImportResult{ID: entry.ID, Summary: summary, Result: result}, nil
}

// Classify exposes filename classification without reading content.
func (s *Service) Classify(filename string) Classification {
	return Classify(filename)
}

// History returns the most recent imports, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	entries, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list import history: %w", err)
	}
	return entries, nil
}

// GetImport returns one history entry by import id.
func (s *Service) GetImport(ctx context.Context, id string) (HistoryEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HistoryEntry{}, ErrHistoryNotFound
	}
	return s.history.Get(ctx, id)
}

// LimiterStatus reports how many parses are in flight.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForImports blocks until in-flight imports finish or ctx is done.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// MaxFileSize returns the configured upload limit in bytes.
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}
