package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"learnloop/internal/model"
)

// PathRepo handles MongoDB operations for the learning-path catalog and
// per-user saved paths
type PathRepo interface {
	ListCatalog(ctx context.Context) ([]model.LearningPath, error)
	UpsertCatalogEntry(ctx context.Context, path *model.LearningPath) error

	SavePath(ctx context.Context, path *model.SavedPath) (string, error)
	GetSavedByID(ctx context.Context, id string) (*model.SavedPath, error)
	GetSavedByUserID(ctx context.Context, userID string) ([]model.SavedPath, error)
	DeleteSaved(ctx context.Context, id string) error
}

type pathRepo struct {
	catalog *mongo.Collection
	saved   *mongo.Collection
}

// NewPathRepo creates a new path repository
func NewPathRepo(db *mongo.Database) PathRepo {
	return &pathRepo{
		catalog: db.Collection("learning_paths"),
		saved:   db.Collection("saved_paths"),
	}
}

func (r *pathRepo) ListCatalog(ctx context.Context) ([]model.LearningPath, error) {
	opts := options.Find().SetSort(bson.M{"title": 1})
	cursor, err := r.catalog.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var paths []model.LearningPath
	if err := cursor.All(ctx, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *pathRepo) UpsertCatalogEntry(ctx context.Context, path *model.LearningPath) error {
	if path.ID == "" {
		path.ID = primitive.NewObjectID().Hex()
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.catalog.ReplaceOne(ctx, bson.M{"title": path.Title}, path, opts)
	return err
}

func (r *pathRepo) SavePath(ctx context.Context, path *model.SavedPath) (string, error) {
	if path.ID == "" {
		path.ID = primitive.NewObjectID().Hex()
	}
	path.CreatedAt = time.Now()
	path.UpdatedAt = time.Now()

	if _, err := r.saved.InsertOne(ctx, path); err != nil {
		return "", err
	}
	return path.ID, nil
}

func (r *pathRepo) GetSavedByID(ctx context.Context, id string) (*model.SavedPath, error) {
	var path model.SavedPath
	err := r.saved.FindOne(ctx, bson.M{"_id": id}).Decode(&path)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func (r *pathRepo) GetSavedByUserID(ctx context.Context, userID string) ([]model.SavedPath, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.saved.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var paths []model.SavedPath
	if err := cursor.All(ctx, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *pathRepo) DeleteSaved(ctx context.Context, id string) error {
	_, err := r.saved.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
