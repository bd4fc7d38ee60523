package recommend

import (
	"sort"

	"learnloop/internal/model"
)

// TargetCount is the playlist length the assembler aims for, derived
// from the user's time budget.
func TargetCount(timelineDays, minutesPerDay int) int {
	return model.CalculateTimeFrames(timelineDays, minutesPerDay).TotalVideos
}

// AssemblePlaylist merges per-query result sets into a single playlist:
// flattened, sorted by relevance score descending (stable, so ties keep
// their arrival order), deduplicated by video ID keeping the
// highest-scored occurrence, and truncated to target.
func AssemblePlaylist(results [][]model.VideoCandidate, target int) model.Playlist {
	if target < 1 {
		target = 1
	}

	var all []model.VideoCandidate
	for _, set := range results {
		all = append(all, set...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].RelevanceScore > all[j].RelevanceScore
	})

	seen := make(map[string]struct{}, len(all))
	playlist := make(model.Playlist, 0, target)
	for _, v := range all {
		if _, dup := seen[v.ID]; dup {
			continue
		}
		seen[v.ID] = struct{}{}
		playlist = append(playlist, v)
		if len(playlist) == target {
			break
		}
	}
	return playlist
}
