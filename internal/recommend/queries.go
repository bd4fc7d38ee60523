package recommend

import (
	"fmt"
	"strings"

	"learnloop/internal/model"
)

// Keyword vocabularies keyed by survey answers. Unknown answers fall
// back to the beginner/visual/comprehensive rows via the AnswerSet
// defaults, so synthesis never produces an empty base set.
var (
	levelKeywords = map[string][]string{
		"beginner":     {"basics", "introduction", "fundamental", "tutorial for beginners"},
		"intermediate": {"intermediate", "in-depth", "detailed explanation"},
		"advanced":     {"advanced", "expert", "deep dive", "complex"},
	}

	styleKeywords = map[string][]string{
		"visual":      {"visual explanation", "animated", "illustration"},
		"theoretical": {"theoretical", "concept explanation", "lecture"},
		"practical":   {"hands-on", "practical example", "demonstration"},
	}

	focusKeywords = map[string][]string{
		"comprehensive": {"comprehensive", "complete guide", "full course"},
		"specific":      {"specific topic", "focused explanation"},
		"practical":     {"practical application", "real-world example"},
	}

	educationPlatforms = []string{
		"freeCodeCamp",
		"Khan Academy",
		"MIT OpenCourseWare",
		"Coursera",
		"edX",
	}
)

func keywordsFor(table map[string][]string, answer, fallback string) []string {
	if kws, ok := table[strings.ToLower(answer)]; ok {
		return kws
	}
	return table[fallback]
}

// SynthesizeQueries builds the full, deduplicated search-query list for
// one pipeline run. Order is fixed: base queries from the keyword
// tables, interest queries, goal queries, model-suggested queries, then
// platform-qualified queries. Duplicates are dropped by exact match
// after whitespace trimming, keeping the first occurrence; matching is
// deliberately case-sensitive so differently-cased platform names stay
// distinct.
func SynthesizeQueries(topic string, answers model.AnswerSet, aiQueries []string) []string {
	level := keywordsFor(levelKeywords, answers.ExperienceLevel(), "beginner")
	style := keywordsFor(styleKeywords, answers.LearningStyle(), "visual")
	focus := keywordsFor(focusKeywords, answers.LearningFocus(), "comprehensive")

	var queries []string

	queries = append(queries,
		fmt.Sprintf("%s %s %s", topic, level[0], style[0]),
		fmt.Sprintf("%s %s %s", topic, focus[0], level[0]),
		fmt.Sprintf("learn %s %s", topic, level[0]),
	)

	for _, interest := range answers.Interests() {
		queries = append(queries, fmt.Sprintf("%s %s %s", topic, interest, level[0]))
	}
	for _, goal := range answers.Goals() {
		queries = append(queries, fmt.Sprintf("%s how to %s %s", topic, goal, level[0]))
	}

	queries = append(queries, aiQueries...)

	for _, platform := range educationPlatforms {
		queries = append(queries, fmt.Sprintf("%s %s %s", topic, level[0], platform))
	}

	return dedupeQueries(queries)
}

func dedupeQueries(queries []string) []string {
	seen := make(map[string]struct{}, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}
