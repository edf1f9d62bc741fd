package dto

// ExtractedRecordSet is the transient output of one extraction pass. It is
// never stored as a unit; routing fans the records out into durable stores.
type ExtractedRecordSet struct {
	Entities           []ExtractedEntity     `json:"entities,omitempty"`
	Tasks              []ExtractedTask       `json:"tasks,omitempty"`
	Commitments        []ExtractedCommitment `json:"commitments,omitempty"`
	QuestionAnswers    []ExtractedAnswer     `json:"question_answers,omitempty"`
	EmotionalMarkers   []EmotionalMarker     `json:"emotional_markers,omitempty"`
	GlossaryCandidates []GlossaryCandidate   `json:"glossary_candidates,omitempty"`
	Strategy           string                `json:"strategy,omitempty"`       // "model" or "fallback"
	PromptVersion      string                `json:"prompt_version,omitempty"` // set by the model strategy
}

type ExtractedEntity struct {
	Name      string `json:"name"`
	Type      string `json:"type"` // person | company | project | unknown
	Context   string `json:"context"`
	Sentiment string `json:"sentiment,omitempty"`
}

type ExtractedTask struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Context     string `json:"context"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date,omitempty"` // YYYY-MM-DD
	IsExplicit  bool   `json:"is_explicit"`
}

type ExtractedCommitment struct {
	Statement string `json:"statement"`
	Context   string `json:"context"`
	Strength  string `json:"strength"` // strong | normal | weak
	IsBinding bool   `json:"is_binding"`
}

type ExtractedAnswer struct {
	QuestionId string  `json:"question_id"`
	Answer     string  `json:"answer"`
	Quality    string  `json:"quality"` // full | partial
	Confidence float64 `json:"confidence"`
}

type EmotionalMarker struct {
	Emotion   string `json:"emotion"`
	Intensity int    `json:"intensity"` // 1-10
	Context   string `json:"context"`
}

type GlossaryCandidate struct {
	Term       string `json:"term"`
	Definition string `json:"definition,omitempty"`
	TermType   string `json:"term_type"` // acronym | jargon | name
}

// IsEmpty reports whether nothing was extracted.
func (s *ExtractedRecordSet) IsEmpty() bool {
	return s == nil || (len(s.Entities) == 0 && len(s.Tasks) == 0 &&
		len(s.Commitments) == 0 && len(s.QuestionAnswers) == 0 &&
		len(s.EmotionalMarkers) == 0 && len(s.GlossaryCandidates) == 0)
}

// RoutingCounts reports how many records of each kind survived routing.
// Per-record failures only reduce the counts, they never abort the batch.
type RoutingCounts struct {
	Mentions  int    `json:"mentions"`
	Leads     int    `json:"leads"`
	Tasks     int    `json:"tasks"`
	Glossary  int    `json:"glossary"`
	Answers   int    `json:"answers"`
	Failures  int    `json:"failures"`
	JournalId string `json:"journal_id,omitempty"`
}
