package recommend

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"learnloop/internal/model"
)

// Pipeline runs the full recommendation flow for one topic and answer
// set: profile, criteria, query synthesis, concurrent search, scoring,
// assembly and roadmap.
type Pipeline struct {
	gen    Generator
	search VideoSearcher

	// SearchConcurrency bounds the number of in-flight search calls.
	SearchConcurrency int
}

// NewPipeline wires a pipeline over a model generator and a video
// search client.
func NewPipeline(gen Generator, search VideoSearcher) *Pipeline {
	return &Pipeline{gen: gen, search: search, SearchConcurrency: 4}
}

// Result is everything one pipeline run produces.
type Result struct {
	Profile  string                   `json:"profile"`
	Criteria model.EvaluationCriteria `json:"criteria"`
	Queries  []string                 `json:"queries"`
	Playlist model.Playlist           `json:"playlist"`
	Roadmap  model.Roadmap            `json:"roadmap"`
	Frames   model.TimeFrames         `json:"frames"`
}

// Run executes the pipeline. Profile and criteria failures abort the
// run; a failed query-suggestion call and individual search failures do
// not. If the first search round yields nothing usable, one round of
// broader fallback queries is attempted before giving up with
// NoResultsError.
func (p *Pipeline) Run(ctx context.Context, topic string, answers model.AnswerSet) (*Result, error) {
	frames := model.CalculateTimeFrames(answers.TimelineDays(), answers.MinutesPerDay())

	profile, err := p.gen.Generate(ctx, TaskProfile, ProfilePrompt(topic, answers, frames))
	if err != nil {
		return nil, err
	}

	criteria, err := p.generateCriteria(ctx, topic, answers)
	if err != nil {
		return nil, err
	}

	aiQueries := p.suggestQueries(ctx, TaskQueries, ExtraQueriesPrompt(topic, answers))
	queries := SynthesizeQueries(topic, answers, aiQueries)

	playlist := p.searchAndScore(ctx, queries, criteria, frames.TotalVideos)

	attempted := queries
	if len(playlist) == 0 {
		fallback := p.suggestQueries(ctx, TaskQueries, FallbackQueriesPrompt(topic, queries))
		fallback = dedupeQueries(fallback)
		if len(fallback) > 0 {
			log.Printf("[Pipeline] no results for %q, retrying with %d fallback queries", topic, len(fallback))
			playlist = p.searchAndScore(ctx, fallback, criteria, frames.TotalVideos)
			attempted = append(attempted, fallback...)
		}
	}
	if len(playlist) == 0 {
		return nil, &NoResultsError{Queries: attempted}
	}

	roadmap, err := p.generateRoadmap(ctx, topic, answers.TimelineDays(), frames.VideosPerDay, playlist, profile)
	if err != nil {
		return nil, err
	}

	return &Result{
		Profile:  profile,
		Criteria: criteria,
		Queries:  queries,
		Playlist: playlist,
		Roadmap:  roadmap,
		Frames:   frames,
	}, nil
}

func (p *Pipeline) generateCriteria(ctx context.Context, topic string, answers model.AnswerSet) (model.EvaluationCriteria, error) {
	var criteria model.EvaluationCriteria
	out, err := p.gen.Generate(ctx, TaskCriteria, CriteriaPrompt(topic, answers))
	if err != nil {
		return criteria, err
	}
	if err := Decode(out, &criteria); err != nil {
		return criteria, err
	}
	criteria.Normalize()
	return criteria, nil
}

// suggestQueries tolerates failure: the template-derived queries are
// always available, so a broken suggestion call just narrows the run.
func (p *Pipeline) suggestQueries(ctx context.Context, task Task, prompt string) []string {
	out, err := p.gen.Generate(ctx, task, prompt)
	if err != nil {
		log.Printf("[Pipeline] query suggestion failed: %v", err)
		return nil
	}
	var queries []string
	if err := Decode(out, &queries); err != nil {
		log.Printf("[Pipeline] query suggestion unparseable: %v", err)
		return nil
	}
	return queries
}

// searchAndScore fans the queries out concurrently. A failed query
// contributes an empty result set rather than failing the round.
func (p *Pipeline) searchAndScore(ctx context.Context, queries []string, criteria model.EvaluationCriteria, target int) model.Playlist {
	results := make([][]model.VideoCandidate, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	limit := p.SearchConcurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			videos, err := p.search.Search(gctx, q)
			if err != nil {
				log.Printf("[Pipeline] search %q failed: %v", q, err)
				return nil
			}
			for j := range videos {
				videos[j].RelevanceScore = ScoreVideo(videos[j], criteria)
			}
			results[i] = videos
			return nil
		})
	}
	// Errors are swallowed per task, so Wait only orders completion.
	_ = g.Wait()

	return AssemblePlaylist(results, target)
}

func (p *Pipeline) generateRoadmap(ctx context.Context, topic string, days, perDay int, playlist model.Playlist, profile string) (model.Roadmap, error) {
	titles := make([]string, 0, len(playlist))
	for _, v := range playlist {
		titles = append(titles, v.Title)
	}

	narrative, err := p.gen.Generate(ctx, TaskRoadmap, RoadmapPrompt(topic, days, perDay, titles, profile))
	if err != nil {
		return model.Roadmap{}, err
	}
	if strings.TrimSpace(narrative) == "" {
		return model.Roadmap{}, &MalformedModelOutputError{Raw: narrative}
	}

	return model.Roadmap{
		Topic:        topic,
		TimelineDays: days,
		VideosPerDay: perDay,
		Narrative:    narrative,
	}, nil
}
