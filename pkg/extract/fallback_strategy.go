package extract

import (
	"context"
	"strings"
	"unicode"

	"ai-companion-be/internal/constant"
	"ai-companion-be/internal/dto"
)

// FallbackStrategy is the deterministic availability floor. It is lower
// recall than the model strategy and cannot detect question answers, but it
// never fails: any transcript yields a well-typed record set.
type FallbackStrategy struct{}

var _ Strategy = &FallbackStrategy{}

func NewFallbackStrategy() *FallbackStrategy {
	return &FallbackStrategy{}
}

func (s *FallbackStrategy) Name() string {
	return StrategyFallback
}

func (s *FallbackStrategy) Parse(_ context.Context, transcript *dto.DayTranscript) (*dto.ExtractedRecordSet, error) {
	records := &dto.ExtractedRecordSet{}

	seenEntities := make(map[string]bool)
	seenTerms := make(map[string]bool)

	for _, msg := range transcript.Messages {
		if msg.Role != constant.ChatMessageRoleUser {
			continue
		}
		for _, sentence := range splitSentences(msg.Content) {
			lower := strings.ToLower(sentence)

			if c := classifyCommitment(sentence, lower); c != nil {
				records.Commitments = append(records.Commitments, *c)
			}
			if t := classifyTask(sentence, lower); t != nil {
				records.Tasks = append(records.Tasks, *t)
			}
			records.EmotionalMarkers = append(records.EmotionalMarkers, detectEmotions(sentence, lower)...)

			for _, name := range detectNames(sentence) {
				key := strings.ToLower(name)
				if seenEntities[key] {
					continue
				}
				seenEntities[key] = true
				records.Entities = append(records.Entities, dto.ExtractedEntity{
					Name:    name,
					Type:    "unknown",
					Context: sentence,
				})
			}

			for _, term := range detectAcronyms(sentence) {
				key := strings.ToLower(term)
				if seenTerms[key] {
					continue
				}
				seenTerms[key] = true
				records.GlossaryCandidates = append(records.GlossaryCandidates, dto.GlossaryCandidate{
					Term:     term,
					TermType: "acronym",
				})
			}
		}
	}

	// Question answers are out of reach for keyword matching; the model
	// strategy is the only source for those.
	return records, nil
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

func containsAny(lower string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// classifyCommitment yields at most one commitment per sentence. Binding
// language wins over plain future intent when both appear.
func classifyCommitment(sentence, lower string) *dto.ExtractedCommitment {
	if containsAny(lower, constant.BindingCommitmentCues) {
		return &dto.ExtractedCommitment{
			Statement: sentence,
			Context:   sentence,
			Strength:  "strong",
			IsBinding: true,
		}
	}
	if containsAny(lower, constant.IntentCommitmentCues) {
		return &dto.ExtractedCommitment{
			Statement: sentence,
			Context:   sentence,
			Strength:  "normal",
			IsBinding: false,
		}
	}
	return nil
}

func classifyTask(sentence, lower string) *dto.ExtractedTask {
	if title, ok := titleAfterCue(sentence, lower, constant.ExplicitTaskCues); ok {
		return &dto.ExtractedTask{
			Title:      title,
			Context:    sentence,
			Priority:   "medium",
			IsExplicit: true,
		}
	}
	if title, ok := titleAfterCue(sentence, lower, constant.SoftTaskCues); ok {
		return &dto.ExtractedTask{
			Title:      title,
			Context:    sentence,
			Priority:   "low",
			IsExplicit: false,
		}
	}
	return nil
}

func titleAfterCue(sentence, lower string, cues []string) (string, bool) {
	for _, cue := range cues {
		idx := strings.Index(lower, cue)
		if idx < 0 {
			continue
		}
		title := strings.TrimSpace(sentence[idx+len(cue):])
		if title == "" {
			title = sentence
		}
		return title, true
	}
	return "", false
}

func detectEmotions(sentence, lower string) []dto.EmotionalMarker {
	amplified := containsAny(lower, constant.EmotionAmplifiers)

	var markers []dto.EmotionalMarker
	for keyword, entry := range constant.EmotionLexicon {
		if !strings.Contains(lower, keyword) {
			continue
		}
		intensity := entry.Intensity
		if amplified {
			intensity += constant.AmplifierBoost
			if intensity > constant.MaxIntensity {
				intensity = constant.MaxIntensity
			}
		}
		markers = append(markers, dto.EmotionalMarker{
			Emotion:   entry.Emotion,
			Intensity: intensity,
			Context:   sentence,
		})
	}
	return markers
}

// detectNames picks capitalized tokens past the first word of a sentence and
// groups adjacent ones, so "talked to John Smith" yields one name.
func detectNames(sentence string) []string {
	words := strings.Fields(sentence)

	var names []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			names = append(names, strings.Join(current, " "))
			current = nil
		}
	}

	for i, word := range words {
		trimmed := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		if i == 0 || !isCapitalizedName(trimmed) {
			flush()
			continue
		}
		current = append(current, trimmed)
	}
	flush()
	return names
}

func isCapitalizedName(word string) bool {
	if len(word) < 2 {
		return false
	}
	runes := []rune(word)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

var acronymStoplist = map[string]bool{
	"I": true, "A": true, "OK": true, "TODO": true, "AM": true, "PM": true,
}

// detectAcronyms flags unexplained short all-caps tokens.
func detectAcronyms(sentence string) []string {
	var terms []string
	for _, word := range strings.Fields(sentence) {
		trimmed := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		if len(trimmed) < 2 || len(trimmed) > 6 {
			continue
		}
		if acronymStoplist[trimmed] {
			continue
		}
		allUpper := true
		for _, r := range trimmed {
			if !unicode.IsUpper(r) {
				allUpper = false
				break
			}
		}
		if allUpper {
			terms = append(terms, trimmed)
		}
	}
	return terms
}
