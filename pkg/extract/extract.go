package extract

import (
	"context"

	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/pkg/logger"
)

const (
	StrategyModel    = "model"
	StrategyFallback = "fallback"
)

// Strategy turns one day's transcript into a set of typed records.
type Strategy interface {
	Name() string
	Parse(ctx context.Context, transcript *dto.DayTranscript) (*dto.ExtractedRecordSet, error)
}

// Extractor selects between the model strategy and the deterministic
// fallback. The fallback contract is absolute: Parse never returns an error,
// because the fallback itself cannot fail.
type Extractor struct {
	primary  Strategy
	fallback *FallbackStrategy
	log      logger.ILogger
}

// NewExtractor builds the wrapper. primary may be nil, which forces the
// deterministic strategy for every call.
func NewExtractor(primary Strategy, log logger.ILogger) *Extractor {
	return &Extractor{
		primary:  primary,
		fallback: NewFallbackStrategy(),
		log:      log,
	}
}

func (e *Extractor) Parse(ctx context.Context, transcript *dto.DayTranscript) *dto.ExtractedRecordSet {
	if transcript.IsEmpty() {
		return &dto.ExtractedRecordSet{Strategy: StrategyFallback}
	}

	if e.primary != nil {
		records, err := e.primary.Parse(ctx, transcript)
		if err == nil {
			records.Strategy = e.primary.Name()
			return records
		}
		e.log.Warn("extract", "model strategy failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
	}

	records, _ := e.fallback.Parse(ctx, transcript)
	records.Strategy = e.fallback.Name()
	return records
}
