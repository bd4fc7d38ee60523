package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnloop/internal/model"
)

// memUserRepo is an in-memory UserRepo for tests.
type memUserRepo struct {
	users map[string]*model.User // by ID
	next  int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) (string, error) {
	r.next++
	user.ID = strings.Repeat("0", 23) + string(rune('a'+r.next))
	copied := *user
	r.users[user.ID] = &copied
	return user.ID, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, user *model.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc := NewAuthService(newMemUserRepo())
	ctx := context.Background()

	reg, err := svc.Register(ctx, &model.RegisterRequest{
		Email:       "Alex@Example.com",
		Password:    "correct-horse",
		DisplayName: "Alex",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.NotEmpty(t, reg.UserID)

	login, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "alex@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, login.UserID)

	userID, err := svc.VerifyToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, userID)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newMemUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{Email: "not-an-email", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, &model.RegisterRequest{Email: "a@b.com", Password: "short"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newMemUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{Email: "a@b.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &model.RegisterRequest{Email: "A@B.com", Password: "password2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newMemUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{Email: "a@b.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "a@b.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "unknown@b.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenGarbage(t *testing.T) {
	svc := NewAuthService(newMemUserRepo())

	_, err := svc.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
