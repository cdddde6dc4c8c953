// Package extract parses free-text utterances into structured constraint
// deltas. Recognition is rule-based against a controlled vocabulary so the
// extraction contract stays deterministic and testable; anything not
// recognized stays in the residual query and drives semantic search instead.
package extract

import (
	"log"
	"regexp"
	"strings"

	"github.com/namhkse/recomending-system/pkg/store"
)

// resetCues are intent markers that clear the accumulated constraints.
// Matched as substrings of the lowercased utterance.
var resetCues = []string{
	"start over",
	"start again",
	"start fresh",
	"from scratch",
	"forget all",
	"forget everything",
	"forget what i said",
	"clear everything",
	"never mind all",
	"something else entirely",
	"something completely different",
}

// requiredCues upgrade a tag mention from preferred to required.
var requiredCues = []string{"must have", "must-have", "needs to have", "has to have", "required"}

// brand-ish mentions: "from Xiaomi", "by Framework", "Nothing brand"
var (
	reBrandAfter  = regexp.MustCompile(`(?i)\b(?:from|by|made by)\s+([A-Za-z][A-Za-z0-9]+)`)
	reBrandBefore = regexp.MustCompile(`(?i)\b([A-Za-z][A-Za-z0-9]+)\s+brand\b`)
)

// Extractor turns utterances into constraint deltas against the catalog's
// controlled vocabulary.
type Extractor struct {
	vocab  *Vocabulary
	logger *log.Logger
}

// NewExtractor creates an extractor bound to a vocabulary.
func NewExtractor(vocab *Vocabulary, logger *log.Logger) *Extractor {
	return &Extractor{vocab: vocab, logger: logger}
}

// Extract parses one utterance into a delta. Only fields explicitly
// evidenced in the utterance are produced; absent fields mean "no change".
// The prior constraint set is context only and is never mutated here.
func (e *Extractor) Extract(utterance string, prior store.ConstraintSet) store.Delta {
	var delta store.Delta
	lower := strings.ToLower(utterance)

	if e.isReset(lower) {
		delta.Reset = true
		delta.Query = utterance
		e.logger.Printf("[EXTRACT] Reset intent recognized")
		return delta
	}

	// Price bounds
	bounds := ParsePrice(utterance)
	delta.PriceMin = bounds.Min
	delta.PriceMax = bounds.Max

	residual := utterance
	for _, span := range bounds.Spans {
		residual = strings.Replace(residual, span, "", 1)
	}

	// Brand-ish phrases first, so an unknown brand mention survives as a
	// verbatim tag instead of being discarded.
	knownBrands, unknownMentions := e.extractBrandMentions(residual)

	requireTags := containsAny(lower, requiredCues)

	var preferred, required, brands []string
	brands = append(brands, knownBrands...)

	for _, token := range tokenize(residual) {
		if cat, ok := e.vocab.Category(token); ok && delta.Category == "" {
			delta.Category = cat
		}
		if b, ok := e.vocab.Brand(token); ok {
			brands = append(brands, b)
		}
		if tags, ok := e.vocab.Tags(token); ok {
			if requireTags {
				required = append(required, tags...)
			} else {
				preferred = append(preferred, tags...)
			}
		}
	}

	preferred = append(preferred, unknownMentions...)

	delta.Brands = store.NormalizeSet(brands)
	delta.RequiredTags = store.NormalizeSet(required)
	delta.PreferredTags = store.NormalizeSet(preferred)
	delta.Query = strings.Join(strings.Fields(residual), " ")

	e.logger.Printf("[EXTRACT] category=%q brands=%v min=%v max=%v preferred=%v required=%v",
		delta.Category, delta.Brands, ptrVal(delta.PriceMin), ptrVal(delta.PriceMax),
		delta.PreferredTags, delta.RequiredTags)

	return delta
}

func (e *Extractor) isReset(lower string) bool {
	if containsAny(lower, resetCues) {
		return true
	}
	// bare "reset" as its own word, not inside e.g. "preset"
	for _, tok := range tokenize(lower) {
		if tok == "reset" {
			return true
		}
	}
	return false
}

// extractBrandMentions resolves "from X" / "by X" / "X brand" phrases.
// Known vocabulary terms become hard brand filters; unknown mentions are
// preserved verbatim so they can still drive soft ranking.
func (e *Extractor) extractBrandMentions(text string) (known, unknown []string) {
	for _, re := range []*regexp.Regexp{reBrandAfter, reBrandBefore} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			token := m[1]
			if b, ok := e.vocab.Brand(token); ok {
				known = append(known, b)
				continue
			}
			// skip words that are category or tag vocabulary, those
			// are not brand mentions
			if _, ok := e.vocab.Category(token); ok {
				continue
			}
			if _, ok := e.vocab.Tags(token); ok {
				continue
			}
			unknown = append(unknown, token)
		}
	}
	return known, unknown
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,?!;:\"'()")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func containsAny(s string, cues []string) bool {
	for _, c := range cues {
		if strings.Contains(s, c) {
			return true
		}
	}
	return false
}

func ptrVal(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
