// Package extractive builds summaries from the input sentences themselves,
// with no remote model involved.
package extractive

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode"

	"CityTrends/internal/domain"
	"CityTrends/internal/ports"
	"CityTrends/internal/textscore"
)

// redundancyThreshold is the token overlap above which a candidate sentence is penalised.
const redundancyThreshold = 0.15

// Summarizer picks the highest scoring sentences until the word budget is spent.
type Summarizer struct{}

var _ ports.Summarizer = Summarizer{}

type sentence struct {
	id     int
	text   string
	words  int
	tokens []string
	unique []string
	score  float64
}

// Summarize returns up to maxWords words drawn from the best sentences, in their original order.
func (Summarizer) Summarize(ctx context.Context, texts []string, maxWords int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sentences := split(strings.Join(texts, " "))
	if len(sentences) == 0 {
		return "", fmt.Errorf("%w: nothing to summarize", domain.ErrSummarization)
	}
	score(sentences)

	remaining := slices.Clone(sentences)
	slices.SortStableFunc(remaining, byScore)

	var selected []sentence
	words := 0
	for len(remaining) > 0 && (maxWords <= 0 || words < maxWords) {
		pick := remaining[0]
		remaining = remaining[1:]
		selected = append(selected, pick)
		words += pick.words

		for i := range remaining {
			sim := jaccard(pick.unique, remaining[i].unique)
			if sim > redundancyThreshold {
				remaining[i].score *= math.Max(1-2*sim, 0.1)
			}
		}
		slices.SortStableFunc(remaining, byScore)
	}

	slices.SortFunc(selected, func(a, b sentence) int { return cmp.Compare(a.id, b.id) })

	parts := make([]string, 0, len(selected))
	for _, s := range selected {
		parts = append(parts, s.text)
	}
	return truncateWords(strings.Join(parts, " "), maxWords), nil
}

func byScore(a, b sentence) int {
	if c := cmp.Compare(b.score, a.score); c != 0 {
		return c
	}
	return cmp.Compare(a.id, b.id)
}

// split cuts text after sentence terminators followed by whitespace and drops repeated sentences.
func split(text string) []sentence {
	var out []sentence
	seen := map[string]bool{}

	add := func(raw string) {
		s := strings.Join(strings.Fields(raw), " ")
		if s == "" || s == "." || seen[s] {
			return
		}
		seen[s] = true
		tokens := textscore.ContentTokens(s)
		out = append(out, sentence{
			id:     len(out),
			text:   s,
			words:  len(strings.Fields(s)),
			tokens: tokens,
			unique: uniq(tokens),
		})
	}

	runes := []rune(text)
	start := 0
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
			add(string(runes[start : i+1]))
			start = i + 1
		}
	}
	if start < len(runes) {
		add(string(runes[start:]))
	}
	return out
}

// score weights each token by the log of its frequency across all sentences.
func score(sentences []sentence) {
	global := map[string]int{}
	for _, s := range sentences {
		for _, t := range s.tokens {
			global[t]++
		}
	}
	for i := range sentences {
		s := &sentences[i]
		if len(s.tokens) == 0 {
			continue
		}
		var total float64
		for _, t := range s.tokens {
			total += math.Log1p(float64(global[t]))
		}
		s.score = total / float64(len(s.tokens))
	}
}

func uniq(tokens []string) []string {
	out := slices.Clone(tokens)
	slices.Sort(out)
	return slices.Compact(out)
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	inter := 0
	for _, v := range b {
		if _, ok := set[v]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(a)+len(b)-inter)
}

func truncateWords(text string, maxWords int) string {
	if maxWords <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ")
}
