package classify

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/likhoapp/likho/internal/lexicon"
)

const (
	// suggestThreshold is the minimum Jaro-Winkler similarity between the
	// utterance and a trigger before a suggestion is offered.
	suggestThreshold = 0.84

	// suggestMaxWords caps the utterance length for suggestions. Longer
	// utterances are dictated prose, and near-trigger words inside prose
	// would produce constant false hints.
	suggestMaxWords = 3
)

// Suggestion is a near-miss trigger hint for an utterance that classified as
// plain text. It is advisory only and never changes classification.
type Suggestion struct {
	Trigger  string
	Category lexicon.Category
	Score    float64
}

// Suggest returns the closest known trigger to utterance when the utterance
// is short and sufficiently similar to exactly the kind of phrase a command
// would be. Callers surface it as a "did you mean" notification; the
// classification outcome is unaffected.
func (c *Classifier) Suggest(utterance string) (Suggestion, bool) {
	normalized := strings.ToLower(strings.TrimSpace(utterance))
	if normalized == "" || len(strings.Fields(normalized)) > suggestMaxWords {
		return Suggestion{}, false
	}

	var best Suggestion
	for _, category := range []lexicon.Category{
		lexicon.CategoryPunctuation,
		lexicon.CategoryNavigation,
		lexicon.CategoryEditing,
	} {
		for _, trigger := range c.lex.Triggers(category) {
			score := matchr.JaroWinkler(normalized, trigger, false)
			if score > best.Score {
				best = Suggestion{Trigger: trigger, Category: category, Score: score}
			}
		}
	}

	if best.Score < suggestThreshold {
		return Suggestion{}, false
	}
	return best, true
}
