package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/roster/internal/config"
)

const groupsFile = "20260115093000_2601_ITWS_1100_01_groups.csv"

func testServiceConfig() *config.Config {
	return &config.Config{
		Import: config.ImportConfig{
			MaxFileSize:   1024,
			MaxConcurrent: 1,
			MaxWaitTime:   50 * time.Millisecond,
			Timeout:       time.Second,
			HistoryLimit:  10,
		},
	}
}

// failingHistory rejects every write.
type failingHistory struct{ MemoryHistory }

func (*failingHistory) Record(context.Context, HistoryEntry) error {
	return errors.New("history unavailable")
}

func TestService_Import(t *testing.T) {
	s := NewService(nil, testServiceConfig())
	ctx := context.Background()

	content := "Group Code,Title\nteam_1,Team 1\nteam_2,Team 2\n,broken\n"
	res, err := s.Import(ctx, groupsFile, strings.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if res.ID == "" {
		t.Error("Import() returned an empty id")
	}
	want := Summary{Type: TypeLmsGroups, Groups: 2, Skipped: 1, CourseCode: "ITWS-1100", TermDisplay: "Spring 2026"}
	if res.Summary != want {
		t.Errorf("Summary = %+v, want %+v", res.Summary, want)
	}

	entry, err := s.GetImport(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetImport() error = %v", err)
	}
	if entry.FileName != groupsFile || entry.Groups != 2 || entry.SizeBytes != int64(len(content)) {
		t.Errorf("history entry = %+v", entry)
	}

	history, err := s.History(ctx, 10)
	if err != nil || len(history) != 1 {
		t.Errorf("History() = %v, %v; want one entry", history, err)
	}
	if s.LimiterStatus().Active != 0 {
		t.Error("limiter slot not released after import")
	}
}

func TestService_ImportErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		size     int64
		wantErr  error
	}{
		{"unsupported", "notes.txt", "hello", 5, ErrUnsupportedFileType},
		{"declared too large", "roster.csv", "a", 4096, ErrFileTooLarge},
		{"actually too large", "roster.csv", strings.Repeat("x", 2048), -1, ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(nil, testServiceConfig())
			_, err := s.Import(context.Background(), tt.filename, strings.NewReader(tt.content), tt.size)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Import() error = %v, want %v", err, tt.wantErr)
			}

			if entries, _ := s.History(context.Background(), 0); len(entries) != 0 {
				t.Errorf("failed import recorded in history: %+v", entries)
			}
		})
	}
}

func TestService_ImportEmptyFile(t *testing.T) {
	for _, filename := range []string{"roster.csv", groupsFile, "202409_12345_classlist.xlsx"} {
		t.Run(filename, func(t *testing.T) {
			s := NewService(nil, testServiceConfig())
			res, err := s.Import(context.Background(), filename, strings.NewReader(""), 0)
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if res.Result == nil || res.Result.Data == nil {
				t.Fatal("Import() returned no parse result")
			}
			if res.Summary.Students != 0 || res.Summary.Groups != 0 {
				t.Errorf("Summary = %+v, want zero records", res.Summary)
			}
		})
	}
}

func TestService_ImportBusy(t *testing.T) {
	s := NewService(nil, testServiceConfig())
	if !s.limiter.TryAcquire() {
		t.Fatal("TryAcquire() failed on an idle limiter")
	}
	defer s.limiter.Release()

	_, err := s.Import(context.Background(), "roster.csv", strings.NewReader("Email\na@b.c\n"), -1)
	if !errors.Is(err, ErrTooManyImports) {
		t.Errorf("Import() error = %v, want ErrTooManyImports", err)
	}
}

func TestService_HistoryFailureDoesNotFailImport(t *testing.T) {
	s := NewService(&failingHistory{}, testServiceConfig())

	res, err := s.Import(context.Background(), "roster.csv", strings.NewReader("Email\na@b.c\n"), -1)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.Summary.Students != 1 {
		t.Errorf("Students = %d, want 1", res.Summary.Students)
	}
}

func TestService_GetImportInvalidID(t *testing.T) {
	s := NewService(nil, nil)
	if _, err := s.GetImport(context.Background(), "../etc"); !errors.Is(err, ErrHistoryNotFound) {
		t.Errorf("GetImport() error = %v, want ErrHistoryNotFound", err)
	}
}

func TestService_Defaults(t *testing.T) {
	s := NewService(nil, nil)
	if s.MaxFileSize() != DefaultMaxFileSize {
		t.Errorf("MaxFileSize() = %d, want %d", s.MaxFileSize(), DefaultMaxFileSize)
	}
	if got := s.LimiterStatus().MaxConcurrent; got != DefaultMaxConcurrentImports {
		t.Errorf("MaxConcurrent = %d, want %d", got, DefaultMaxConcurrentImports)
	}
	if got := s.Classify("roster.csv").Type; got != TypeGenericCsv {
		t.Errorf("Classify() = %q, want %q", got, TypeGenericCsv)
	}
}
