package dto

// ToughLoveOutput is the graded accountability assessment. The feedback text
// comes from fixed templates so the voice stays consistent across runs.
type ToughLoveOutput struct {
	Enabled    bool   `json:"enabled"`
	Score      int    `json:"score"`
	Assessment string `json:"assessment"` // on_track | minor_slip | significant_gap | crisis
	Feedback   string `json:"feedback"`
}
