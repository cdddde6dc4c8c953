package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Tolerance band for approximate price phrases: "around $800" becomes
// the range [0.8*800, 1.2*800].
const (
	AroundLowerFactor = 0.8
	AroundUpperFactor = 1.2
)

const amount = `\$?(\d[\d,]*(?:\.\d+)?)(k?)`

var (
	reRange = regexp.MustCompile(`(?i)\b(?:between|from)\s+` + amount + `\s+(?:and|to)\s+` + amount)
	// "$800-$1200" style; the leading dollar sign keeps model numbers out
	reDashRange = regexp.MustCompile(`\$(\d[\d,]*(?:\.\d+)?)(k?)\s*[-–—]\s*\$?(\d[\d,]*(?:\.\d+)?)(k?)`)
	reAround    = regexp.MustCompile(`(?i)\b(?:around|about|roughly|approximately|approx\.?|~)\s*` + amount)
	reMax       = regexp.MustCompile(`(?i)\b(?:under|below|less than|at most|no more than|cheaper than|up to|max(?:imum)?(?: of)?|within)\s+` + amount)
	reMin       = regexp.MustCompile(`(?i)\b(?:above|over|more than|at least|min(?:imum)?(?: of)?|starting (?:at|from)|upwards of)\s+` + amount)
	reBudget    = regexp.MustCompile(`(?i)\bbudget(?:\s+(?:of|is|around))?\s+(?:is\s+)?` + amount)
)

// PriceBounds is the outcome of parsing price phrases in one utterance.
// Nil pointers mean the utterance carried no evidence for that bound.
type PriceBounds struct {
	Min *float64
	Max *float64
	// Spans are the matched substrings; the extractor strips them from
	// the residual semantic query.
	Spans []string
}

// ParsePrice extracts price bounds from an utterance. Ambiguous or
// unparseable numeric phrases are dropped, never guessed. Precedence:
// an explicit range wins over single-bound phrases, which win over the
// approximate "around" band.
func ParsePrice(utterance string) PriceBounds {
	var out PriceBounds

	if m := reRange.FindStringSubmatch(utterance); m != nil {
		lo, okLo := parseAmount(m[1], m[2])
		hi, okHi := parseAmount(m[3], m[4])
		if okLo && okHi {
			if lo > hi {
				lo, hi = hi, lo
			}
			out.Min, out.Max = &lo, &hi
			out.Spans = append(out.Spans, m[0])
			return out
		}
	}
	if m := reDashRange.FindStringSubmatch(utterance); m != nil {
		lo, okLo := parseAmount(m[1], m[2])
		hi, okHi := parseAmount(m[3], m[4])
		if okLo && okHi {
			if lo > hi {
				lo, hi = hi, lo
			}
			out.Min, out.Max = &lo, &hi
			out.Spans = append(out.Spans, m[0])
			return out
		}
	}

	if m := reMax.FindStringSubmatch(utterance); m != nil {
		if v, ok := parseAmount(m[1], m[2]); ok {
			out.Max = &v
			out.Spans = append(out.Spans, m[0])
		}
	}
	if m := reMin.FindStringSubmatch(utterance); m != nil {
		if v, ok := parseAmount(m[1], m[2]); ok {
			out.Min = &v
			out.Spans = append(out.Spans, m[0])
		}
	}
	if out.Min != nil || out.Max != nil {
		return out
	}

	if m := reBudget.FindStringSubmatch(utterance); m != nil {
		if v, ok := parseAmount(m[1], m[2]); ok {
			out.Max = &v
			out.Spans = append(out.Spans, m[0])
			return out
		}
	}

	if m := reAround.FindStringSubmatch(utterance); m != nil {
		if v, ok := parseAmount(m[1], m[2]); ok {
			// rounded to cents so the band stays stable across platforms
			lo := math.Round(v*AroundLowerFactor*100) / 100
			hi := math.Round(v*AroundUpperFactor*100) / 100
			out.Min, out.Max = &lo, &hi
			out.Spans = append(out.Spans, m[0])
		}
	}

	return out
}

// parseAmount converts a matched number ("1,299" or "1.5" + "k") to a
// positive float. Zero and negative amounts are treated as unparseable.
func parseAmount(num, suffix string) (float64, bool) {
	num = strings.ReplaceAll(num, ",", "")
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	if strings.EqualFold(suffix, "k") {
		v *= 1000
	}
	return v, true
}
