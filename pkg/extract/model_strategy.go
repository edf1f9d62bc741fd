package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-companion-be/internal/constant"
	"ai-companion-be/internal/dto"
	"ai-companion-be/pkg/llm"
	"ai-companion-be/pkg/utils"
)

// maxPayloadChars bounds the transcript JSON handed to the model; a day of
// synced transcripts can exceed any sane context window.
const maxPayloadChars = 24000

// ModelStrategy sends the whole day transcript to the completion service in
// one structured request and expects exactly one JSON object back.
type ModelStrategy struct {
	provider llm.LLMProvider
}

var _ Strategy = &ModelStrategy{}

func NewModelStrategy(provider llm.LLMProvider) *ModelStrategy {
	return &ModelStrategy{provider: provider}
}

func (s *ModelStrategy) Name() string {
	return StrategyModel
}

func (s *ModelStrategy) Parse(ctx context.Context, transcript *dto.DayTranscript) (*dto.ExtractedRecordSet, error) {
	payload, err := json.Marshal(transcript)
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}

	body := string(payload)
	if len(body) > maxPayloadChars {
		body = utils.SplitText(body, maxPayloadChars, 0)[0]
	}

	history := []llm.Message{
		{Role: "system", Content: constant.ExtractionPromptV1},
		{Role: "user", Content: body},
	}

	raw, err := s.provider.Chat(ctx, history, llm.WithTemperature(0.1))
	if err != nil {
		return nil, fmt.Errorf("model request: %w", err)
	}

	records, err := decodeRecordSet(raw)
	if err != nil {
		return nil, fmt.Errorf("model output: %w", err)
	}
	records.PromptVersion = constant.ExtractionPromptVersion
	return records, nil
}

// decodeRecordSet parses the single JSON object the model is required to
// return. Code fences and surrounding prose are tolerated, a missing or
// malformed object is not.
func decodeRecordSet(raw string) (*dto.ExtractedRecordSet, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var records dto.ExtractedRecordSet
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &records); err != nil {
		return nil, fmt.Errorf("unmarshal record set: %w", err)
	}
	return &records, nil
}
