package sensitivity

import (
	"regexp"
	"strings"
)

// DefaultThreshold is the minimum proportion of the query that the shortest
// matched term must cover for the query to count as sensitive.
const DefaultThreshold = 0.5

// Classifier decides whether a query is sensitive. A query is sensitive when
// it contains a listed term as whole words and the shortest matched term
// makes up at least the threshold proportion of the remaining query, where
// words belonging to the other matched terms are excluded first. Excluding
// them closes the loophole where stringing sensitive terms together dilutes
// each one below the threshold.
type Classifier struct {
	terms     []term
	threshold float64
}

type term struct {
	text      string
	wordCount int
	pattern   *regexp.Regexp
}

// NewClassifier compiles a classifier from lowercased terms. A threshold of
// zero selects DefaultThreshold.
func NewClassifier(terms []string, threshold float64) *Classifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	c := &Classifier{threshold: threshold}
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		c.terms = append(c.terms, term{
			text:      t,
			wordCount: len(strings.Fields(t)),
			pattern:   regexp.MustCompile(`\b` + regexp.QuoteMeta(t) + `\b`),
		})
	}
	return c
}

// IsSensitive reports whether the query text is sensitive.
func (c *Classifier) IsSensitive(text string) bool {
	lower := strings.ToLower(text)

	var matched []term
	for _, t := range c.terms {
		if t.pattern.MatchString(lower) {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 {
		return false
	}

	shortest := matched[0]
	for _, t := range matched[1:] {
		if len(t.text) < len(shortest.text) {
			shortest = t
		}
	}

	otherSensitiveWords := 0
	for _, t := range matched {
		if t.text != shortest.text {
			otherSensitiveWords += t.wordCount
		}
	}

	remaining := len(strings.Fields(text)) - otherSensitiveWords
	if remaining <= 0 {
		return true
	}
	return float64(shortest.wordCount)/float64(remaining) >= c.threshold
}
