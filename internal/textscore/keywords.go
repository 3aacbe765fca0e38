package textscore

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into purely alphabetic tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// ContentTokens returns the tokens of text with stopwords removed, in order.
func ContentTokens(text string) []string {
	tokens := Tokenize(text)
	out := tokens[:0]
	for _, tok := range tokens {
		if IsStopword(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// ExtractKeywords returns at most topN distinct content words ranked by
// descending frequency; ties keep first-occurrence order.
func ExtractKeywords(text string, topN int) []string {
	if topN <= 0 {
		return nil
	}

	counts := map[string]int{}
	var order []string
	for _, tok := range ContentTokens(text) {
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	ranked := rankByCount(order, counts)
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// rankByCount orders words by descending count, preserving input order on ties.
func rankByCount(order []string, counts map[string]int) []string {
	ranked := slices.Clone(order)
	slices.SortStableFunc(ranked, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})
	return ranked
}
