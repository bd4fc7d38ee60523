package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"learnloop/internal/cache"
	"learnloop/internal/model"
	"learnloop/internal/recommend"
	"learnloop/internal/repository"
)

// chatHistoryWindow bounds how many prior turns are sent as model
// context per message.
const chatHistoryWindow = 20

const helpText = `Available commands:
/create-playlist <topic> - build a video playlist for a topic
/clear - clear this conversation
/help - show this message

Anything else is sent to the learning assistant.`

// ChatService handles conversation turns: slash commands locally,
// everything else through the model with recent history as context.
type ChatService struct {
	convRepo  repository.ConversationRepo
	histCache cache.HistoryCache
	gemini    *GeminiClient
	playlists *PlaylistService
}

// NewChatService creates a new chat service
func NewChatService(convRepo repository.ConversationRepo, histCache cache.HistoryCache, gemini *GeminiClient, playlists *PlaylistService) *ChatService {
	return &ChatService{
		convRepo:  convRepo,
		histCache: histCache,
		gemini:    gemini,
		playlists: playlists,
	}
}

// StartConversation creates an empty conversation for the user.
func (s *ChatService) StartConversation(ctx context.Context, userID, topic string) (*model.Conversation, error) {
	conversation := &model.Conversation{
		UserID:   userID,
		Topic:    strings.TrimSpace(topic),
		Messages: []model.Message{},
	}
	if _, err := s.convRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return conversation, nil
}

// GetConversation returns a conversation, enforcing ownership.
func (s *ChatService) GetConversation(ctx context.Context, userID, id string) (*model.Conversation, error) {
	conversation, err := s.convRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrNotFound
	}
	if conversation.UserID != userID {
		return nil, ErrUnauthorized
	}
	return conversation, nil
}

// SendMessage processes one user turn and returns the assistant reply.
// Both turns are appended to the conversation before returning.
func (s *ChatService) SendMessage(ctx context.Context, userID, conversationID, text string) (*model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty message", ErrValidation)
	}

	conversation, err := s.GetConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	userMsg := newMessage(model.RoleUser, text)

	var replyText string
	if strings.HasPrefix(text, "/") {
		replyText, err = s.runCommand(ctx, userID, conversation, text)
	} else {
		replyText, err = s.generateReply(ctx, conversation, text)
	}
	if err != nil {
		return nil, err
	}

	reply := newMessage(model.RoleAssistant, replyText)
	if err := s.convRepo.AppendMessages(ctx, conversationID, userMsg, reply); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return &reply, nil
}

// runCommand dispatches slash commands. Unknown commands get the help
// text rather than an error, matching what a chat UI expects.
func (s *ChatService) runCommand(ctx context.Context, userID string, conversation *model.Conversation, text string) (string, error) {
	cmd, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/help":
		return helpText, nil

	case "/clear":
		conversation.Messages = []model.Message{}
		if err := s.convRepo.Update(ctx, conversation); err != nil {
			return "", err
		}
		return "Conversation cleared.", nil

	case "/create-playlist":
		topic := arg
		if topic == "" {
			topic = conversation.Topic
		}
		if topic == "" {
			return "", fmt.Errorf("%w: /create-playlist needs a topic", ErrValidation)
		}
		path, err := s.playlists.Create(ctx, userID, topic, nil)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Created a playlist for %q: %d videos across %d days. Open it from your saved paths (id %s).",
			topic, len(path.Playlist), path.Roadmap.TimelineDays, path.ID), nil

	default:
		return helpText, nil
	}
}

func (s *ChatService) generateReply(ctx context.Context, conversation *model.Conversation, text string) (string, error) {
	messages := conversation.Messages
	if len(messages) > chatHistoryWindow {
		messages = messages[len(messages)-chatHistoryWindow:]
	}

	history := make([]ChatTurn, 0, len(messages))
	for _, m := range messages {
		history = append(history, ChatTurn{
			Text:      m.Content,
			FromModel: m.Role == model.RoleAssistant,
		})
	}
	return s.gemini.GenerateChat(ctx, recommend.TaskChat, history, text)
}

func (s *ChatService) invalidate(ctx context.Context, userID string) {
	if s.histCache != nil {
		_ = s.histCache.Invalidate(ctx, userID)
	}
}

func newMessage(role, content string) model.Message {
	return model.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
