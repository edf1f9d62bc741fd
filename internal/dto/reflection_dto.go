package dto

// PatternObservation is a behavioral pattern surfaced from today's extraction
// plus the rolling history window.
type PatternObservation struct {
	Type             string   `json:"type"` // avoidance | recurring | escalating | improvement | anomaly
	Description      string   `json:"description"`
	Evidence         []string `json:"evidence,omitempty"`
	DaysSeen         int      `json:"days_seen"`
	ActionSuggestion string   `json:"action_suggestion,omitempty"`
}

// PersonaCalibration is one signal derived from a question answer (or
// inferred); merged into the persistent signal map when confidence clears
// the gate.
type PersonaCalibration struct {
	Signal     string  `json:"signal"`
	Value      string  `json:"value"`
	Source     string  `json:"source"` // question id or "inferred"
	Confidence float64 `json:"confidence"`
}

// ReflectionOutput is the reflection phase envelope.
type ReflectionOutput struct {
	Patterns            []PatternObservation `json:"patterns,omitempty"`
	Calibrations        []PersonaCalibration `json:"calibrations,omitempty"`
	ProtocolAdjustments []string             `json:"protocol_adjustments,omitempty"`
	StateSummary        string               `json:"state_summary,omitempty"`
	MoodTrend           string               `json:"mood_trend,omitempty"` // improving | declining | stable
}
