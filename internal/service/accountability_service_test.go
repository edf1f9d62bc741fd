package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
)

func TestBucketScore(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "on_track"},
		{1, "minor_slip"},
		{2, "minor_slip"},
		{3, "significant_gap"},
		{5, "significant_gap"},
		{6, "crisis"},
		{11, "crisis"},
	}

	for _, tt := range tests {
		got := bucketScore(tt.score)
		if got != tt.want {
			t.Errorf("bucketScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestAnalyze(t *testing.T) {
	svc := NewAccountabilityService(newFakeFactory(newFakeUow()))

	tests := []struct {
		name           string
		planner        dto.PlannerOutput
		wantScore      int
		wantAssessment string
	}{
		{
			name:           "clean day",
			planner:        dto.PlannerOutput{Weekly: dto.WeeklyStatus{OnTrack: true}},
			wantScore:      0,
			wantAssessment: "on_track",
		},
		{
			name: "one medium dropped ball",
			planner: dto.PlannerOutput{
				DroppedBalls: []dto.DroppedBall{{Urgency: "medium"}},
				Weekly:       dto.WeeklyStatus{OnTrack: true},
			},
			wantScore:      1,
			wantAssessment: "minor_slip",
		},
		{
			name: "dropped balls weighted by urgency",
			planner: dto.PlannerOutput{
				DroppedBalls: []dto.DroppedBall{
					{Urgency: "critical"},
					{Urgency: "high"},
					{Urgency: "medium"},
				},
				Weekly: dto.WeeklyStatus{OnTrack: true},
			},
			wantScore:      6,
			wantAssessment: "crisis",
		},
		{
			name: "off-track week adds two",
			planner: dto.PlannerOutput{
				Weekly: dto.WeeklyStatus{OnTrack: false},
			},
			wantScore:      2,
			wantAssessment: "minor_slip",
		},
		{
			name: "stalled goals add one each",
			planner: dto.PlannerOutput{
				GoalPacing: []dto.GoalPacing{
					{Progress: 10},
					{Progress: 24},
					{Progress: 25},
				},
				Weekly: dto.WeeklyStatus{OnTrack: true},
			},
			wantScore:      2,
			wantAssessment: "minor_slip",
		},
		{
			name: "everything wrong at once",
			planner: dto.PlannerOutput{
				DroppedBalls: []dto.DroppedBall{{Urgency: "critical"}},
				GoalPacing:   []dto.GoalPacing{{Progress: 0}},
				Weekly:       dto.WeeklyStatus{OnTrack: false},
			},
			wantScore:      6,
			wantAssessment: "crisis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := svc.Analyze(&dto.ExtractedRecordSet{}, &tt.planner)
			if out.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", out.Score, tt.wantScore)
			}
			if out.Assessment != tt.wantAssessment {
				t.Errorf("Assessment = %q, want %q", out.Assessment, tt.wantAssessment)
			}
			if !out.Enabled {
				t.Error("Analyze output must be marked enabled")
			}
			if out.Feedback != toughLoveTemplates[tt.wantAssessment] {
				t.Errorf("Feedback not taken from the fixed template for %q", tt.wantAssessment)
			}
		})
	}
}

func TestIsEnabled(t *testing.T) {
	enabledUser := uuid.New()
	disabledUser := uuid.New()
	uow := newFakeUow()
	uow.states[enabledUser] = &entity.OnboardingState{UserId: enabledUser, ToughLoveEnabled: true}
	uow.states[disabledUser] = &entity.OnboardingState{UserId: disabledUser}

	svc := NewAccountabilityService(newFakeFactory(uow))

	tests := []struct {
		name   string
		userId uuid.UUID
		want   bool
	}{
		{"opted in", enabledUser, true},
		{"opted out", disabledUser, false},
		{"no onboarding state", uuid.New(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsEnabled(context.Background(), tt.userId)
			if err != nil {
				t.Fatalf("IsEnabled() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
