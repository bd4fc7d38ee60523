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

// ConversationRepo handles MongoDB operations for chat conversations
type ConversationRepo interface {
	Create(ctx context.Context, conversation *model.Conversation) (string, error)
	GetByID(ctx context.Context, id string) (*model.Conversation, error)
	GetByUserID(ctx context.Context, userID string) ([]model.Conversation, error)
	AppendMessages(ctx context.Context, id string, messages ...model.Message) error
	Update(ctx context.Context, conversation *model.Conversation) error
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}

type conversationRepo struct {
	collection *mongo.Collection
}

// NewConversationRepo creates a new conversation repository
func NewConversationRepo(db *mongo.Database) ConversationRepo {
	return &conversationRepo{
		collection: db.Collection("conversations"),
	}
}

func (r *conversationRepo) Create(ctx context.Context, conversation *model.Conversation) (string, error) {
	if conversation.ID == "" {
		conversation.ID = primitive.NewObjectID().Hex()
	}
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, conversation); err != nil {
		return "", err
	}
	return conversation.ID, nil
}

func (r *conversationRepo) GetByID(ctx context.Context, id string) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&conversation)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepo) GetByUserID(ctx context.Context, userID string) ([]model.Conversation, error) {
	opts := options.Find().SetSort(bson.M{"updatedAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conversations []model.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *conversationRepo) AppendMessages(ctx context.Context, id string, messages ...model.Message) error {
	update := bson.M{
		"$push": bson.M{"messages": bson.M{"$each": messages}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *conversationRepo) Update(ctx context.Context, conversation *model.Conversation) error {
	conversation.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": conversation.ID}, conversation)
	return err
}

func (r *conversationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *conversationRepo) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
