package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"learnloop/internal/model"
)

func TestTargetCount(t *testing.T) {
	assert.Equal(t, 28, TargetCount(7, 60)) // 420 / 15
	assert.Equal(t, 10, TargetCount(5, 30)) // 150 / 15
	assert.Equal(t, 1, TargetCount(1, 10))  // ceil(10 / 15)
}

func TestAssemblePlaylistSortsByScoreDesc(t *testing.T) {
	results := [][]model.VideoCandidate{
		{{ID: "a", RelevanceScore: 3}, {ID: "b", RelevanceScore: 9}},
		{{ID: "c", RelevanceScore: 6}},
	}

	playlist := AssemblePlaylist(results, 10)
	assert.Equal(t, []string{"b", "c", "a"}, ids(playlist))
}

func TestAssemblePlaylistDedupesKeepingHighestScore(t *testing.T) {
	results := [][]model.VideoCandidate{
		{{ID: "a", RelevanceScore: 2}},
		{{ID: "a", RelevanceScore: 8}, {ID: "b", RelevanceScore: 5}},
	}

	playlist := AssemblePlaylist(results, 10)
	assert.Equal(t, []string{"a", "b"}, ids(playlist))
	assert.Equal(t, 8, playlist[0].RelevanceScore)
}

func TestAssemblePlaylistTruncatesToTarget(t *testing.T) {
	results := [][]model.VideoCandidate{{
		{ID: "a", RelevanceScore: 5},
		{ID: "b", RelevanceScore: 4},
		{ID: "c", RelevanceScore: 3},
	}}

	playlist := AssemblePlaylist(results, 2)
	assert.Equal(t, []string{"a", "b"}, ids(playlist))
}

func TestAssemblePlaylistStableForTies(t *testing.T) {
	results := [][]model.VideoCandidate{{
		{ID: "first", RelevanceScore: 5},
		{ID: "second", RelevanceScore: 5},
	}}

	playlist := AssemblePlaylist(results, 10)
	assert.Equal(t, []string{"first", "second"}, ids(playlist))
}

func TestAssemblePlaylistEmptyInput(t *testing.T) {
	assert.Empty(t, AssemblePlaylist(nil, 5))
	assert.Empty(t, AssemblePlaylist([][]model.VideoCandidate{{}, {}}, 5))
}

func ids(p model.Playlist) []string {
	out := make([]string, len(p))
	for i, v := range p {
		out[i] = v.ID
	}
	return out
}
