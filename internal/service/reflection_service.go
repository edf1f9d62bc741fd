package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ai-companion-be/internal/constant"
	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/unitofwork"
)

type IReflectionService interface {
	Reflect(ctx context.Context, userId uuid.UUID, today *dto.ExtractedRecordSet, history []dto.ExtractedRecordSet) (*dto.ReflectionOutput, error)
}

// reflectionService runs the deterministic pattern baseline over today's
// records plus the rolling history window, and merges persona calibrations
// into the persistent signal map.
type reflectionService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewReflectionService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IReflectionService {
	return &reflectionService{
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *reflectionService) Reflect(ctx context.Context, userId uuid.UUID, today *dto.ExtractedRecordSet, history []dto.ExtractedRecordSet) (*dto.ReflectionOutput, error) {
	out := &dto.ReflectionOutput{}

	out.Patterns = detectPatterns(today, history)
	out.MoodTrend = classifyMoodTrend(today.EmotionalMarkers)
	out.Calibrations = deriveCalibrations(today.QuestionAnswers)
	out.ProtocolAdjustments = deriveAdjustments(out.Patterns, out.MoodTrend)
	out.StateSummary = buildStateSummary(out)

	if len(out.Calibrations) > 0 {
		if err := s.mergeSignals(ctx, userId, out.Calibrations); err != nil {
			return out, err
		}
	}
	return out, nil
}

// mergeSignals overwrites only the calibrated keys in the persona signal
// map; everything else on the state stays as it was.
func (s *reflectionService) mergeSignals(ctx context.Context, userId uuid.UUID, calibrations []dto.PersonaCalibration) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.OnboardingStateRepository().FindByUserId(ctx, userId)
	if err != nil {
		return err
	}
	if state == nil {
		// No onboarding state yet means nothing to calibrate against.
		return nil
	}
	if state.PersonaSignals == nil {
		state.PersonaSignals = make(map[string]string)
	}
	for _, c := range calibrations {
		state.PersonaSignals[c.Signal] = c.Value
	}
	return uow.OnboardingStateRepository().Update(ctx, state)
}

// negativeEmotions is derived once from the lexicon so valence stays in a
// single place.
var negativeEmotions = func() map[string]bool {
	set := make(map[string]bool)
	for _, entry := range constant.EmotionLexicon {
		if entry.Negative {
			set[entry.Emotion] = true
		}
	}
	return set
}()

func detectPatterns(today *dto.ExtractedRecordSet, history []dto.ExtractedRecordSet) []dto.PatternObservation {
	var patterns []dto.PatternObservation

	// Recurring themes: present today and on at least two prior days.
	todayThemes := themesOf(today)
	for theme := range todayThemes {
		daysSeen := 0
		for _, day := range history {
			if themesOf(&day)[theme] {
				daysSeen++
			}
		}
		if daysSeen >= 2 {
			patterns = append(patterns, dto.PatternObservation{
				Type:        "recurring",
				Description: fmt.Sprintf("%q has come up on %d of the last %d days", theme, daysSeen, len(history)),
				Evidence:    []string{theme},
				DaysSeen:    daysSeen + 1,
			})
		}
	}

	// Escalating stress: mean negative-marker intensity above 6.
	var negSum, negCount int
	for _, m := range today.EmotionalMarkers {
		if negativeEmotions[m.Emotion] {
			negSum += m.Intensity
			negCount++
		}
	}
	if negCount > 0 && float64(negSum)/float64(negCount) > 6 {
		patterns = append(patterns, dto.PatternObservation{
			Type:             "escalating",
			Description:      fmt.Sprintf("negative emotional intensity averaged %.1f/10 today", float64(negSum)/float64(negCount)),
			DaysSeen:         1,
			ActionSuggestion: "check in about stress load before planning more work",
		})
	}

	// Binding commitments get an avoidance flag: a reminder to track
	// follow-through, not a judgment.
	for _, c := range today.Commitments {
		if c.IsBinding {
			patterns = append(patterns, dto.PatternObservation{
				Type:        "avoidance",
				Description: "a binding commitment was made today; follow-through should be tracked",
				Evidence:    []string{c.Statement},
				DaysSeen:    1,
			})
			break
		}
	}

	return patterns
}

// themesOf collects the comparable theme keys of one day's records:
// emotion labels and lowercased entity names.
func themesOf(records *dto.ExtractedRecordSet) map[string]bool {
	themes := make(map[string]bool)
	for _, m := range records.EmotionalMarkers {
		themes[m.Emotion] = true
	}
	for _, e := range records.Entities {
		themes[strings.ToLower(e.Name)] = true
	}
	return themes
}

// classifyMoodTrend is a three-way call from marker valence counts. A
// margin of 2 is required to call a direction; near-ties are stable.
func classifyMoodTrend(markers []dto.EmotionalMarker) string {
	positive, negative := 0, 0
	for _, m := range markers {
		if negativeEmotions[m.Emotion] {
			negative++
		} else {
			positive++
		}
	}
	switch {
	case positive-negative >= 2:
		return "improving"
	case negative-positive >= 2:
		return "declining"
	default:
		return "stable"
	}
}

// deriveCalibrations maps question answers through the signal table. Only
// answers whose confidence clears the gate produce a calibration.
func deriveCalibrations(answers []dto.ExtractedAnswer) []dto.PersonaCalibration {
	var calibrations []dto.PersonaCalibration
	for _, a := range answers {
		signal, ok := constant.QuestionSignalTable[a.QuestionId]
		if !ok {
			continue
		}
		if a.Confidence <= constant.SignalConfidenceGate {
			continue
		}
		calibrations = append(calibrations, dto.PersonaCalibration{
			Signal:     signal,
			Value:      a.Answer,
			Source:     a.QuestionId,
			Confidence: a.Confidence,
		})
	}
	return calibrations
}

func deriveAdjustments(patterns []dto.PatternObservation, moodTrend string) []string {
	var adjustments []string
	for _, p := range patterns {
		if p.Type == "escalating" {
			adjustments = append(adjustments, "soften tone and reduce task pressure")
			break
		}
	}
	if moodTrend == "declining" {
		adjustments = append(adjustments, "lead with encouragement before accountability")
	}
	return adjustments
}

func buildStateSummary(out *dto.ReflectionOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "mood trend: %s", out.MoodTrend)
	if len(out.Patterns) > 0 {
		b.WriteString("; patterns:")
		for _, p := range out.Patterns {
			fmt.Fprintf(&b, " [%s] %s;", p.Type, p.Description)
		}
	}
	if len(out.Calibrations) > 0 {
		fmt.Fprintf(&b, " %d persona signal(s) calibrated", len(out.Calibrations))
	}
	return b.String()
}
