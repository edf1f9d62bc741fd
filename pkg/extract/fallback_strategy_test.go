package extract

import (
	"context"
	"testing"
	"time"

	"ai-companion-be/internal/constant"
	"ai-companion-be/internal/dto"
)

func userTranscript(contents ...string) *dto.DayTranscript {
	now := time.Now()
	t := &dto.DayTranscript{Date: now}
	for _, c := range contents {
		t.Messages = append(t.Messages, dto.TranscriptMessage{
			Role:      constant.ChatMessageRoleUser,
			Content:   c,
			Timestamp: &now,
		})
	}
	return t
}

func TestClassifyCommitment(t *testing.T) {
	tests := []struct {
		name         string
		sentence     string
		wantNil      bool
		wantBinding  bool
		wantStrength string
	}{
		{
			name:         "promise with binding phrase",
			sentence:     "I promise no matter what I will ship this",
			wantBinding:  true,
			wantStrength: "strong",
		},
		{
			name:         "plain future intent",
			sentence:     "I will call her tomorrow",
			wantBinding:  false,
			wantStrength: "normal",
		},
		{
			name:         "binding wins over intent in the same sentence",
			sentence:     "I will finish it, non-negotiable",
			wantBinding:  true,
			wantStrength: "strong",
		},
		{
			name:         "going to phrasing",
			sentence:     "I'm going to start running",
			wantBinding:  false,
			wantStrength: "normal",
		},
		{
			name:     "no commitment language",
			sentence: "the weather was nice today",
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyCommitment(tt.sentence, lowerOf(tt.sentence))
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected no commitment, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a commitment, got nil")
			}
			if got.IsBinding != tt.wantBinding {
				t.Errorf("IsBinding = %v, want %v", got.IsBinding, tt.wantBinding)
			}
			if got.Strength != tt.wantStrength {
				t.Errorf("Strength = %q, want %q", got.Strength, tt.wantStrength)
			}
			if got.Statement != tt.sentence {
				t.Errorf("Statement = %q, want the original sentence", got.Statement)
			}
		})
	}
}

func lowerOf(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b[i] = c
	}
	return string(b)
}

func TestClassifyTask(t *testing.T) {
	tests := []struct {
		name         string
		sentence     string
		wantNil      bool
		wantTitle    string
		wantPriority string
		wantExplicit bool
	}{
		{
			name:         "explicit need-to cue",
			sentence:     "I need to send the invoice",
			wantTitle:    "send the invoice",
			wantPriority: "medium",
			wantExplicit: true,
		},
		{
			name:         "todo prefix",
			sentence:     "TODO: book flights",
			wantTitle:    "book flights",
			wantPriority: "medium",
			wantExplicit: true,
		},
		{
			name:         "remind me cue",
			sentence:     "remind me to water the plants",
			wantTitle:    "water the plants",
			wantPriority: "medium",
			wantExplicit: true,
		},
		{
			name:         "soft should cue",
			sentence:     "I should clean the garage",
			wantTitle:    "clean the garage",
			wantPriority: "low",
			wantExplicit: false,
		},
		{
			name:         "soft have-to cue",
			sentence:     "I have to reply eventually",
			wantTitle:    "reply eventually",
			wantPriority: "low",
			wantExplicit: false,
		},
		{
			name:     "no cue",
			sentence: "we talked about the project",
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTask(tt.sentence, lowerOf(tt.sentence))
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected no task, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a task, got nil")
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Priority != tt.wantPriority {
				t.Errorf("Priority = %q, want %q", got.Priority, tt.wantPriority)
			}
			if got.IsExplicit != tt.wantExplicit {
				t.Errorf("IsExplicit = %v, want %v", got.IsExplicit, tt.wantExplicit)
			}
		})
	}
}

func TestDetectEmotions(t *testing.T) {
	tests := []struct {
		name          string
		sentence      string
		wantEmotion   string
		wantIntensity int
	}{
		{"base intensity", "I was stressed about the deadline", "stress", 6},
		{"amplifier boosts", "I was really stressed about the deadline", "stress", 8},
		{"amplifier applies per hit", "I felt so angry and overwhelmed", "anger", 9},
		{"positive emotion", "I'm proud of the launch", "pride", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markers := detectEmotions(tt.sentence, lowerOf(tt.sentence))
			var found *dto.EmotionalMarker
			for i := range markers {
				if markers[i].Emotion == tt.wantEmotion {
					found = &markers[i]
				}
			}
			if found == nil {
				t.Fatalf("emotion %q not detected in %q", tt.wantEmotion, tt.sentence)
			}
			if found.Intensity != tt.wantIntensity {
				t.Errorf("Intensity = %d, want %d", found.Intensity, tt.wantIntensity)
			}
		})
	}
}

func TestDetectEmotions_IntensityNeverExceedsMax(t *testing.T) {
	markers := detectEmotions("extremely angry", "extremely angry")
	for _, m := range markers {
		if m.Intensity > constant.MaxIntensity {
			t.Errorf("intensity %d exceeds the cap", m.Intensity)
		}
	}
}

func TestDetectNames(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     []string
	}{
		{"single name", "talked to Sarah about the plan", []string{"Sarah"}},
		{"adjacent tokens group", "met John Smith at the office", []string{"John Smith"}},
		{"first word never counts", "Today was long", nil},
		{"two separate names", "Sarah introduced me to Marcus yesterday", []string{"Marcus"}},
		{"all caps is not a name", "the NASA briefing went well", nil},
		{"punctuation trimmed", "had coffee with Elena.", []string{"Elena"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectNames(tt.sentence)
			if len(got) != len(tt.want) {
				t.Fatalf("detectNames(%q) = %v, want %v", tt.sentence, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("name[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDetectAcronyms(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     []string
	}{
		{"simple acronym", "we reviewed the OKR draft", []string{"OKR"}},
		{"stoplist filtered", "OK so I added a TODO for the PM sync", nil},
		{"too long", "the ABCDEFG initiative", nil},
		{"single letter skipped", "I sent it to B", nil},
		{"punctuation trimmed", "missed the SLA.", []string{"SLA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectAcronyms(tt.sentence)
			if len(got) != len(tt.want) {
				t.Fatalf("detectAcronyms(%q) = %v, want %v", tt.sentence, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("term[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First one. Second!  Third?\nFourth")
	want := []string{"First one", "Second", "Third", "Fourth"}
	if len(got) != len(want) {
		t.Fatalf("splitSentences() = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("sentence[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFallbackParse_EndToEnd(t *testing.T) {
	s := NewFallbackStrategy()
	transcript := userTranscript(
		"I promise no matter what I will ship this. I need to email Sarah about the OKR review.",
		"I was really stressed today.",
	)

	records, err := s.Parse(context.Background(), transcript)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(records.Commitments) != 1 || !records.Commitments[0].IsBinding {
		t.Errorf("commitments = %+v, want one binding", records.Commitments)
	}
	if len(records.Tasks) != 1 || !records.Tasks[0].IsExplicit {
		t.Errorf("tasks = %+v, want one explicit", records.Tasks)
	}
	if len(records.Entities) != 1 || records.Entities[0].Name != "Sarah" {
		t.Errorf("entities = %+v, want Sarah", records.Entities)
	}
	if len(records.GlossaryCandidates) != 1 || records.GlossaryCandidates[0].Term != "OKR" {
		t.Errorf("glossary = %+v, want OKR", records.GlossaryCandidates)
	}
	if len(records.EmotionalMarkers) != 1 || records.EmotionalMarkers[0].Intensity != 8 {
		t.Errorf("markers = %+v, want amplified stress", records.EmotionalMarkers)
	}
	if len(records.QuestionAnswers) != 0 {
		t.Error("the deterministic strategy must never emit question answers")
	}
}

func TestFallbackParse_SkipsNonUserMessages(t *testing.T) {
	s := NewFallbackStrategy()
	now := time.Now()
	transcript := &dto.DayTranscript{
		Date: now,
		Messages: []dto.TranscriptMessage{
			{Role: constant.ChatMessageRoleAssistant, Content: "I promise no matter what I will help.", Timestamp: &now},
			{Role: constant.ChatMessageRoleSystem, Content: "I need to configure the session.", Timestamp: &now},
		},
	}

	records, err := s.Parse(context.Background(), transcript)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !records.IsEmpty() {
		t.Errorf("non-user messages must be ignored, got %+v", records)
	}
}

func TestFallbackParse_DeduplicatesAcrossMessages(t *testing.T) {
	s := NewFallbackStrategy()
	transcript := userTranscript(
		"talked to Sarah about the SLA",
		"then sarah pinged me about the sla again",
		"later Sarah confirmed",
	)

	records, err := s.Parse(context.Background(), transcript)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records.Entities) != 1 {
		t.Errorf("entities = %+v, want case-insensitive dedup", records.Entities)
	}
	if len(records.GlossaryCandidates) != 1 {
		t.Errorf("glossary = %+v, want dedup", records.GlossaryCandidates)
	}
}
