package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
)

func TestClassifyMoodTrend(t *testing.T) {
	tests := []struct {
		name    string
		markers []dto.EmotionalMarker
		want    string
	}{
		{
			name: "clear positive margin",
			markers: []dto.EmotionalMarker{
				{Emotion: "joy"},
				{Emotion: "pride"},
				{Emotion: "excitement"},
				{Emotion: "stress"},
			},
			want: "improving",
		},
		{
			name: "clear negative margin",
			markers: []dto.EmotionalMarker{
				{Emotion: "stress"},
				{Emotion: "anxiety"},
				{Emotion: "joy"},
				{Emotion: "frustration"},
			},
			want: "declining",
		},
		{
			name: "margin of one is stable",
			markers: []dto.EmotionalMarker{
				{Emotion: "joy"},
				{Emotion: "stress"},
				{Emotion: "pride"},
			},
			want: "stable",
		},
		{
			name:    "no markers",
			markers: nil,
			want:    "stable",
		},
		{
			name: "exact margin of two calls the direction",
			markers: []dto.EmotionalMarker{
				{Emotion: "joy"},
				{Emotion: "pride"},
			},
			want: "improving",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyMoodTrend(tt.markers)
			if got != tt.want {
				t.Errorf("classifyMoodTrend() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectPatterns_RecurringThemes(t *testing.T) {
	day := func(themes ...string) dto.ExtractedRecordSet {
		var rs dto.ExtractedRecordSet
		for _, th := range themes {
			rs.EmotionalMarkers = append(rs.EmotionalMarkers, dto.EmotionalMarker{Emotion: th, Intensity: 3})
		}
		return rs
	}

	tests := []struct {
		name      string
		today     dto.ExtractedRecordSet
		history   []dto.ExtractedRecordSet
		wantCount int
		wantDays  int
	}{
		{
			name:      "theme on two prior days recurs",
			today:     day("stress"),
			history:   []dto.ExtractedRecordSet{day("stress"), day("stress"), day("joy")},
			wantCount: 1,
			wantDays:  3,
		},
		{
			name:      "one prior day is not enough",
			today:     day("stress"),
			history:   []dto.ExtractedRecordSet{day("stress"), day("joy")},
			wantCount: 0,
		},
		{
			name:      "theme absent today never recurs",
			today:     day("joy"),
			history:   []dto.ExtractedRecordSet{day("stress"), day("stress"), day("stress")},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patterns := detectPatterns(&tt.today, tt.history)
			var recurring []dto.PatternObservation
			for _, p := range patterns {
				if p.Type == "recurring" {
					recurring = append(recurring, p)
				}
			}
			if len(recurring) != tt.wantCount {
				t.Fatalf("recurring patterns = %d, want %d", len(recurring), tt.wantCount)
			}
			if tt.wantCount > 0 && recurring[0].DaysSeen != tt.wantDays {
				t.Errorf("DaysSeen = %d, want %d", recurring[0].DaysSeen, tt.wantDays)
			}
		})
	}
}

func TestDetectPatterns_EntityNamesAreThemes(t *testing.T) {
	today := dto.ExtractedRecordSet{
		Entities: []dto.ExtractedEntity{{Name: "Sarah", Type: "person"}},
	}
	prior := dto.ExtractedRecordSet{
		Entities: []dto.ExtractedEntity{{Name: "sarah", Type: "person"}},
	}
	patterns := detectPatterns(&today, []dto.ExtractedRecordSet{prior, prior})
	found := false
	for _, p := range patterns {
		if p.Type == "recurring" && len(p.Evidence) == 1 && p.Evidence[0] == "sarah" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected case-insensitive entity recurrence, got %+v", patterns)
	}
}

func TestDetectPatterns_EscalatingStress(t *testing.T) {
	tests := []struct {
		name    string
		markers []dto.EmotionalMarker
		want    bool
	}{
		{
			name: "mean above six escalates",
			markers: []dto.EmotionalMarker{
				{Emotion: "stress", Intensity: 8},
				{Emotion: "anxiety", Intensity: 7},
			},
			want: true,
		},
		{
			name: "mean exactly six does not",
			markers: []dto.EmotionalMarker{
				{Emotion: "stress", Intensity: 6},
				{Emotion: "anxiety", Intensity: 6},
			},
			want: false,
		},
		{
			name: "positive markers never count",
			markers: []dto.EmotionalMarker{
				{Emotion: "joy", Intensity: 10},
				{Emotion: "excitement", Intensity: 10},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today := dto.ExtractedRecordSet{EmotionalMarkers: tt.markers}
			patterns := detectPatterns(&today, nil)
			got := false
			for _, p := range patterns {
				if p.Type == "escalating" {
					got = true
					if p.ActionSuggestion == "" {
						t.Error("escalating pattern should carry an action suggestion")
					}
				}
			}
			if got != tt.want {
				t.Errorf("escalating detected = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectPatterns_BindingCommitmentFlagsOnce(t *testing.T) {
	today := dto.ExtractedRecordSet{
		Commitments: []dto.ExtractedCommitment{
			{Statement: "I promise to ship", IsBinding: true},
			{Statement: "I promise to call", IsBinding: true},
			{Statement: "I will maybe rest", IsBinding: false},
		},
	}
	patterns := detectPatterns(&today, nil)
	count := 0
	for _, p := range patterns {
		if p.Type == "avoidance" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("avoidance flags = %d, want exactly 1", count)
	}
}

func TestDeriveCalibrations(t *testing.T) {
	tests := []struct {
		name    string
		answers []dto.ExtractedAnswer
		want    int
	}{
		{
			name: "confident mapped answer calibrates",
			answers: []dto.ExtractedAnswer{
				{QuestionId: "q_comm_style", Answer: "direct", Confidence: 0.9},
			},
			want: 1,
		},
		{
			name: "confidence at the gate is rejected",
			answers: []dto.ExtractedAnswer{
				{QuestionId: "q_comm_style", Answer: "direct", Confidence: 0.5},
			},
			want: 0,
		},
		{
			name: "unmapped question id is ignored",
			answers: []dto.ExtractedAnswer{
				{QuestionId: "q_nonexistent", Answer: "x", Confidence: 0.9},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveCalibrations(tt.answers)
			if len(got) != tt.want {
				t.Fatalf("calibrations = %d, want %d", len(got), tt.want)
			}
			if tt.want > 0 {
				if got[0].Signal != "communication_style" {
					t.Errorf("Signal = %q, want communication_style", got[0].Signal)
				}
				if got[0].Source != "q_comm_style" {
					t.Errorf("Source = %q, want q_comm_style", got[0].Source)
				}
			}
		})
	}
}

func TestReflect_MergesSignalsIntoState(t *testing.T) {
	userId := uuid.New()
	uow := newFakeUow()
	uow.states[userId] = &entity.OnboardingState{
		UserId:         userId,
		PersonaSignals: map[string]string{"communication_style": "gentle", "daily_rhythm": "morning"},
	}

	svc := NewReflectionService(newFakeFactory(uow), nopLogger{})
	today := &dto.ExtractedRecordSet{
		QuestionAnswers: []dto.ExtractedAnswer{
			{QuestionId: "q_comm_style", Answer: "direct", Confidence: 0.8},
		},
	}

	out, err := svc.Reflect(context.Background(), userId, today, nil)
	if err != nil {
		t.Fatalf("Reflect() error = %v", err)
	}
	if len(out.Calibrations) != 1 {
		t.Fatalf("calibrations = %d, want 1", len(out.Calibrations))
	}

	state := uow.states[userId]
	if state.PersonaSignals["communication_style"] != "direct" {
		t.Errorf("calibrated signal not overwritten: %q", state.PersonaSignals["communication_style"])
	}
	if state.PersonaSignals["daily_rhythm"] != "morning" {
		t.Errorf("uncalibrated signal was touched: %q", state.PersonaSignals["daily_rhythm"])
	}
}

func TestReflect_NoStateIsNotAnError(t *testing.T) {
	svc := NewReflectionService(newFakeFactory(newFakeUow()), nopLogger{})
	today := &dto.ExtractedRecordSet{
		QuestionAnswers: []dto.ExtractedAnswer{
			{QuestionId: "q_comm_style", Answer: "direct", Confidence: 0.8},
		},
	}
	if _, err := svc.Reflect(context.Background(), uuid.New(), today, nil); err != nil {
		t.Fatalf("Reflect() without onboarding state error = %v", err)
	}
}

func TestBuildStateSummary(t *testing.T) {
	out := &dto.ReflectionOutput{
		MoodTrend: "declining",
		Patterns: []dto.PatternObservation{
			{Type: "recurring", Description: "x"},
		},
		Calibrations: []dto.PersonaCalibration{{Signal: "a"}},
	}
	summary := buildStateSummary(out)
	for _, part := range []string{"mood trend: declining", "[recurring]", "1 persona signal(s) calibrated"} {
		if !strings.Contains(summary, part) {
			t.Errorf("summary %q missing %q", summary, part)
		}
	}
}
