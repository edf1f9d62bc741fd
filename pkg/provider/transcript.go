package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

// TranscriptConfig is the validated connection config of a transcript
// service registration.
type TranscriptConfig struct {
	BaseURL string `validate:"required,url"`
	APIKey  string `validate:"required"`
	Speaker string `validate:"required"` // the user's own speaker label
}

// TranscriptProvider pulls recorded-conversation sessions from an external
// transcript service, paginated by session id + timestamp.
type TranscriptProvider struct {
	cfg    TranscriptConfig
	client *http.Client
}

var _ ContentProvider = &TranscriptProvider{}

var validate = validator.New()

func NewTranscriptProvider(cfg TranscriptConfig) (*TranscriptProvider, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid transcript config: %w", err)
	}
	return &TranscriptProvider{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (p *TranscriptProvider) Category() string { return "transcript" }

// --- Request/Response structs (internal to this package) ---

type transcriptListRequest struct {
	AfterSessionId string `json:"after_session_id,omitempty"`
	AfterTimestamp string `json:"after_timestamp,omitempty"`
	Limit          int    `json:"limit"`
}

type transcriptSession struct {
	SessionId  string `json:"session_id"`
	RecordedAt string `json:"recorded_at"`
	Title      string `json:"title"`
	Transcript string `json:"transcript"` // multi-speaker "Name: line" turns
}

type transcriptListResponse struct {
	Sessions []transcriptSession `json:"sessions"`
	HasMore  bool                `json:"has_more"`
}

func (p *TranscriptProvider) Fetch(ctx context.Context, cursor Cursor, limit int) (*FetchResult, error) {
	tc, err := cursor.AsTranscript()
	if err != nil {
		return nil, err
	}

	reqPayload := transcriptListRequest{
		AfterSessionId: tc.LastSessionId,
		Limit:          limit,
	}
	if !tc.LastTimestamp.IsZero() {
		reqPayload.AfterTimestamp = tc.LastTimestamp.Format(time.RFC3339)
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := p.cfg.BaseURL + "/v1/sessions/list"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcript request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcript error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var listResp transcriptListResponse
	if err := json.Unmarshal(bodyBytes, &listResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	result := &FetchResult{
		NewCursor: Cursor{Kind: CursorKindTranscript, Transcript: &TranscriptCursor{
			LastSessionId: tc.LastSessionId,
			LastTimestamp: tc.LastTimestamp,
		}},
		HasMore: listResp.HasMore,
	}

	for _, s := range listResp.Sessions {
		recordedAt, err := time.Parse(time.RFC3339, s.RecordedAt)
		if err != nil {
			recordedAt = time.Now()
		}
		result.Items = append(result.Items, ContentItem{
			SourceId:   s.SessionId,
			SourceType: "transcript_session",
			SourceDate: recordedAt,
			Content:    s.Transcript,
			Metadata: map[string]string{
				"title":   s.Title,
				"speaker": p.cfg.Speaker,
			},
		})
		result.NewCursor.Transcript.LastSessionId = s.SessionId
		result.NewCursor.Transcript.LastTimestamp = recordedAt
	}

	return result, nil
}
