package match

import "github.com/remivoice/remi/internal/quiz"

// Vocabulary is a curated acceptable-term set for one answer category,
// including known lexical variants. Membership alone makes an answer correct.
type Vocabulary struct {
	Terms    map[string]bool
	Variants map[string]string // variant → curated term
}

// Contains reports whether a normalized answer is in the vocabulary, directly,
// as a known variant, or as a plural of a curated term.
func (v Vocabulary) Contains(normalized string) bool {
	if v.Terms[normalized] {
		return true
	}
	if _, ok := v.Variants[normalized]; ok {
		return true
	}
	if n := len(normalized); n > 1 && normalized[n-1] == 's' && v.Terms[normalized[:n-1]] {
		return true
	}
	return false
}

// vocabularies maps category tags to their curated term sets. Categories grow
// by adding entries here, not by branching in the matcher.
var vocabularies = map[quiz.Category]Vocabulary{
	quiz.CategoryFood: {
		Terms: toSet(
			"eggs", "toast", "cereal", "oatmeal", "pancakes", "waffles",
			"bacon", "sausage", "fruit", "yogurt", "coffee", "tea",
			"juice", "milk", "bagel", "muffin", "granola", "smoothie",
		),
		Variants: map[string]string{
			"egg":       "eggs",
			"toasted":   "toast",
			"cereals":   "cereal",
			"oat":       "oatmeal",
			"pancake":   "pancakes",
			"waffle":    "waffles",
			"fruits":    "fruit",
			"yoghurt":   "yogurt",
			"coffees":   "coffee",
			"teas":      "tea",
			"juices":    "juice",
			"milks":     "milk",
			"bagels":    "bagel",
			"muffins":   "muffin",
			"smoothies": "smoothie",
		},
	},
}

// VocabularyFor returns the curated vocabulary for a category, if one exists.
func VocabularyFor(cat quiz.Category) (Vocabulary, bool) {
	v, ok := vocabularies[cat]
	return v, ok
}

func toSet(terms ...string) map[string]bool {
	m := make(map[string]bool, len(terms))
	for _, t := range terms {
		m[t] = true
	}
	return m
}
