package recommend

import (
	"strings"

	"learnloop/internal/model"
)

// Relevance weights. Title hits outweigh description hits for every
// term class; red flags subtract; final scores never go below zero.
const (
	requiredTitleWeight = 5
	requiredDescWeight  = 3
	bonusTitleWeight    = 3
	bonusDescWeight     = 2
	redFlagTitlePenalty = 5
	redFlagDescPenalty  = 3

	durationFitBonus     = 5
	durationShortPenalty = 3
	durationLongPenalty  = 2

	channelTitleWeight = 3
	channelDescWeight  = 2

	popularViewThreshold = 10_000
	popularLikeThreshold = 1_000
	popularityBonus      = 2
)

// ScoreVideo computes the relevance score of a candidate against the
// run's criteria. Matching is case-insensitive substring containment.
// A candidate with neither title nor description scores zero.
func ScoreVideo(v model.VideoCandidate, criteria model.EvaluationCriteria) int {
	title := strings.ToLower(v.Title)
	desc := strings.ToLower(v.Description)
	channel := strings.ToLower(v.ChannelTitle)

	if title == "" && desc == "" {
		return 0
	}

	score := 0

	for _, term := range criteria.RequiredTerms {
		t := strings.ToLower(term)
		if t == "" {
			continue
		}
		if strings.Contains(title, t) {
			score += requiredTitleWeight
		}
		if strings.Contains(desc, t) {
			score += requiredDescWeight
		}
	}

	for _, term := range criteria.BonusTerms {
		t := strings.ToLower(term)
		if t == "" {
			continue
		}
		if strings.Contains(title, t) {
			score += bonusTitleWeight
		}
		if strings.Contains(desc, t) {
			score += bonusDescWeight
		}
	}

	for _, term := range criteria.RedFlags {
		t := strings.ToLower(term)
		if t == "" {
			continue
		}
		if strings.Contains(title, t) {
			score -= redFlagTitlePenalty
		}
		if strings.Contains(desc, t) {
			score -= redFlagDescPenalty
		}
	}

	switch {
	case v.DurationMinutes >= criteria.MinDuration && v.DurationMinutes <= criteria.MaxDuration:
		score += durationFitBonus
	case v.DurationMinutes < criteria.MinDuration:
		score -= durationShortPenalty
	default:
		score -= durationLongPenalty
	}

	for _, ch := range criteria.PreferredChannels {
		c := strings.ToLower(ch)
		if c == "" {
			continue
		}
		if strings.Contains(channel, c) {
			score += channelTitleWeight
		}
		if strings.Contains(desc, c) {
			score += channelDescWeight
		}
	}

	if v.ViewCount > popularViewThreshold {
		score += popularityBonus
	}
	if v.LikeCount > popularLikeThreshold {
		score += popularityBonus
	}

	if score < 0 {
		score = 0
	}
	return score
}
