package extract

import (
	"context"
	"errors"
	"testing"

	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/pkg/logger"
)

type stubStrategy struct {
	records *dto.ExtractedRecordSet
	err     error
	calls   int
}

func (s *stubStrategy) Name() string { return StrategyModel }

func (s *stubStrategy) Parse(ctx context.Context, transcript *dto.DayTranscript) (*dto.ExtractedRecordSet, error) {
	s.calls++
	return s.records, s.err
}

type discardLogger struct{}

func (discardLogger) Debug(module, message string, details map[string]interface{}) {}
func (discardLogger) Info(module, message string, details map[string]interface{})  {}
func (discardLogger) Warn(module, message string, details map[string]interface{})  {}
func (discardLogger) Error(module, message string, details map[string]interface{}) {}
func (discardLogger) Sync() error                                                  { return nil }
func (discardLogger) GetLogs(level string, limit int) ([]logger.LogEntry, error)   { return nil, nil }

func TestExtractorParse_PrimarySucceeds(t *testing.T) {
	primary := &stubStrategy{
		records: &dto.ExtractedRecordSet{
			Tasks: []dto.ExtractedTask{{Title: "from the model"}},
		},
	}
	e := NewExtractor(primary, discardLogger{})

	records := e.Parse(context.Background(), userTranscript("anything"))
	if records.Strategy != StrategyModel {
		t.Errorf("Strategy = %q, want %q", records.Strategy, StrategyModel)
	}
	if len(records.Tasks) != 1 || records.Tasks[0].Title != "from the model" {
		t.Errorf("model output not passed through: %+v", records.Tasks)
	}
}

func TestExtractorParse_FallsBackOnPrimaryError(t *testing.T) {
	primary := &stubStrategy{err: errors.New("model timeout")}
	e := NewExtractor(primary, discardLogger{})

	records := e.Parse(context.Background(), userTranscript("I need to call the bank"))
	if records.Strategy != StrategyFallback {
		t.Errorf("Strategy = %q, want %q", records.Strategy, StrategyFallback)
	}
	if primary.calls != 1 {
		t.Errorf("primary calls = %d, want 1", primary.calls)
	}
	if len(records.Tasks) != 1 {
		t.Errorf("fallback output missing: %+v", records.Tasks)
	}
}

func TestExtractorParse_NilPrimaryUsesFallback(t *testing.T) {
	e := NewExtractor(nil, discardLogger{})
	records := e.Parse(context.Background(), userTranscript("I should stretch more"))
	if records.Strategy != StrategyFallback {
		t.Errorf("Strategy = %q, want %q", records.Strategy, StrategyFallback)
	}
}

func TestExtractorParse_EmptyTranscript(t *testing.T) {
	primary := &stubStrategy{}
	e := NewExtractor(primary, discardLogger{})

	records := e.Parse(context.Background(), &dto.DayTranscript{})
	if !records.IsEmpty() {
		t.Errorf("empty transcript must yield an empty record set: %+v", records)
	}
	if primary.calls != 0 {
		t.Error("no strategy should be consulted for an empty transcript")
	}
}

func TestDecodeRecordSet(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "bare object",
			raw:  `{"tasks":[{"title":"x"}]}`,
		},
		{
			name: "json code fence",
			raw:  "```json\n{\"tasks\":[{\"title\":\"x\"}]}\n```",
		},
		{
			name: "plain code fence",
			raw:  "```\n{\"tasks\":[{\"title\":\"x\"}]}\n```",
		},
		{
			name: "surrounding prose",
			raw:  "Here is the extraction:\n{\"tasks\":[{\"title\":\"x\"}]}\nLet me know if you need more.",
		},
		{
			name:    "no object at all",
			raw:     "I could not process the transcript.",
			wantErr: true,
		},
		{
			name:    "malformed object",
			raw:     `{"tasks": [}`,
			wantErr: true,
		},
		{
			name:    "empty response",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := decodeRecordSet(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeRecordSet() error = %v", err)
			}
			if len(records.Tasks) != 1 || records.Tasks[0].Title != "x" {
				t.Errorf("decoded = %+v", records)
			}
		})
	}
}
