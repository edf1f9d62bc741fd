package constant

// Keyword tables for the deterministic extraction fallback. These are part of
// the classification compatibility contract and must not be reworded: the
// model strategy is instructed with the same rules, and tests pin them.
// English-only; see DESIGN.md for the localization decision.

// Explicit task cues force isExplicit=true.
var ExplicitTaskCues = []string{
	"i need to",
	"todo:",
	"remind me to",
}

// Soft task cues are accepted but flagged isExplicit=false.
var SoftTaskCues = []string{
	"i should",
	"i have to",
}

// Binding commitment phrases force isBinding=true, strength=strong.
var BindingCommitmentCues = []string{
	"no matter what",
	"i promise",
	"non-negotiable",
	"come hell or high water",
}

// Future-intent phrases yield isBinding=false, strength=normal.
var IntentCommitmentCues = []string{
	"i will",
	"i'm going to",
	"i am going to",
}

// EmotionLexicon maps trigger keywords to an emotion label and base
// intensity on the 1-10 scale.
type EmotionEntry struct {
	Emotion   string
	Intensity int
	Negative  bool
}

var EmotionLexicon = map[string]EmotionEntry{
	"stressed":    {Emotion: "stress", Intensity: 6, Negative: true},
	"overwhelmed": {Emotion: "stress", Intensity: 7, Negative: true},
	"anxious":     {Emotion: "anxiety", Intensity: 6, Negative: true},
	"worried":     {Emotion: "anxiety", Intensity: 5, Negative: true},
	"frustrated":  {Emotion: "frustration", Intensity: 6, Negative: true},
	"angry":       {Emotion: "anger", Intensity: 7, Negative: true},
	"sad":         {Emotion: "sadness", Intensity: 5, Negative: true},
	"exhausted":   {Emotion: "fatigue", Intensity: 6, Negative: true},
	"tired":       {Emotion: "fatigue", Intensity: 4, Negative: true},
	"excited":     {Emotion: "excitement", Intensity: 6},
	"happy":       {Emotion: "joy", Intensity: 5},
	"proud":       {Emotion: "pride", Intensity: 6},
	"grateful":    {Emotion: "gratitude", Intensity: 5},
	"relieved":    {Emotion: "relief", Intensity: 4},
	"hopeful":     {Emotion: "hope", Intensity: 4},
}

// Amplifier words within the same local context window boost intensity by
// AmplifierBoost, capped at MaxIntensity.
var EmotionAmplifiers = []string{"very", "really", "extremely", "so"}

const (
	AmplifierBoost = 2
	MaxIntensity   = 10
)

// Relationship keyword families used when a lead's relationship type is
// inferred from surrounding context.
var RelationshipKeywords = map[string][]string{
	"family":    {"mom", "dad", "mother", "father", "sister", "brother", "aunt", "uncle", "cousin", "grandma", "grandpa", "wife", "husband", "son", "daughter"},
	"colleague": {"coworker", "colleague", "boss", "manager", "team", "meeting", "standup", "office"},
	"friend":    {"friend", "buddy", "hang out", "hung out", "dinner with", "drinks with"},
	"business":  {"client", "customer", "vendor", "contract", "deal", "invoice", "partner"},
}
