package service

import (
	"context"
	"log"

	"learnloop/internal/model"
	"learnloop/internal/repository"
)

// defaultCatalog is seeded into Mongo on startup so the catalog is
// never empty for a fresh deployment.
var defaultCatalog = []model.LearningPath{
	{
		Title:       "Web Development Fundamentals",
		Description: "HTML, CSS and JavaScript from zero to building real pages.",
		Category:    "Programming",
		Duration:    "8 weeks",
		Level:       "beginner",
	},
	{
		Title:       "Data Science Essentials",
		Description: "Statistics, Python and data wrangling for aspiring analysts.",
		Category:    "Data",
		Duration:    "10 weeks",
		Level:       "intermediate",
	},
	{
		Title:       "UI/UX Design Principles",
		Description: "Design thinking, wireframing and usability fundamentals.",
		Category:    "Design",
		Duration:    "6 weeks",
		Level:       "beginner",
	},
	{
		Title:       "Digital Marketing Strategy",
		Description: "SEO, content and analytics for growing an audience.",
		Category:    "Marketing",
		Duration:    "6 weeks",
		Level:       "beginner",
	},
}

// PathService serves the curated learning-path catalog.
type PathService struct {
	pathRepo repository.PathRepo
}

// NewPathService creates a new path service
func NewPathService(pathRepo repository.PathRepo) *PathService {
	return &PathService{pathRepo: pathRepo}
}

// SeedCatalog upserts the built-in catalog entries. Safe to run on
// every startup.
func (s *PathService) SeedCatalog(ctx context.Context) error {
	for i := range defaultCatalog {
		entry := defaultCatalog[i]
		if err := s.pathRepo.UpsertCatalogEntry(ctx, &entry); err != nil {
			return err
		}
	}
	log.Printf("[Path] catalog seeded with %d entries", len(defaultCatalog))
	return nil
}

// ListCatalog returns all curated paths.
func (s *PathService) ListCatalog(ctx context.Context) ([]model.LearningPath, error) {
	paths, err := s.pathRepo.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if paths == nil {
		paths = []model.LearningPath{}
	}
	return paths, nil
}
