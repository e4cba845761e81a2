package usecase_test

import (
	"context"
	"testing"
	"time"

	"shop/internal/apperr"
	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type fakeVerifier struct{}

func (fakeVerifier) Verify(plain, hashed string) bool { return hashed == "hashed:"+plain }

func newAuthUsecase(users *UserRepoMock, bl *fakeBlacklist) *usecase.AuthUsecase {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return usecase.NewAuthUsecase(users, fakeHasher{}, fakeVerifier{}, fakeIssuer{}, bl, fakeClock{now: now})
}

func TestRegister_Success(t *testing.T) {
	users := &UserRepoMock{}
	users.On("FindByUsername", mock.Anything, "user1").Return(nil, repo.ErrNotFound)
	users.On("FindByEmail", mock.Anything, "user1@example.com").Return(nil, repo.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//平文は保存しない。USERロールでアクティブ開始
		return u.Username == "user1" &&
			u.PasswordHash == "hashed:password123" &&
			u.Role == model.RoleUser &&
			u.IsActive
	})).Return(nil)

	uc := newAuthUsecase(users, newFakeBlacklist())
	out, err := uc.Register(context.Background(), usecase.RegisterInput{
		Username: "user1",
		Email:    "user1@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "user1", out.Username)
	assert.Equal(t, string(model.RoleUser), out.Role)
	users.AssertExpectations(t)
}

func TestRegister_Validation(t *testing.T) {
	uc := newAuthUsecase(&UserRepoMock{}, newFakeBlacklist())
	cases := []struct {
		name string
		in   usecase.RegisterInput
	}{
		{"empty username", usecase.RegisterInput{Username: "  ", Email: "a@example.com", Password: "password123"}},
		{"bad email", usecase.RegisterInput{Username: "user1", Email: "not-an-email", Password: "password123"}},
		{"short password", usecase.RegisterInput{Username: "user1", Email: "a@example.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), tc.in)
			assertKind(t, err, apperr.KindInvalidInput)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := &UserRepoMock{}
	users.On("FindByUsername", mock.Anything, "user1").
		Return(&model.User{ID: 1, Username: "user1"}, nil)

	uc := newAuthUsecase(users, newFakeBlacklist())
	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Username: "user1",
		Email:    "new@example.com",
		Password: "password123",
	})

	assertKind(t, err, apperr.KindAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &UserRepoMock{}
	users.On("FindByUsername", mock.Anything, "user2").Return(nil, repo.ErrNotFound)
	users.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&model.User{ID: 1, Email: "taken@example.com"}, nil)

	uc := newAuthUsecase(users, newFakeBlacklist())
	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Username: "user2",
		Email:    "taken@example.com",
		Password: "password123",
	})

	assertKind(t, err, apperr.KindAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	users := &UserRepoMock{}
	users.On("FindByUsername", mock.Anything, "user1").
		Return(&model.User{ID: 1, Username: "user1", PasswordHash: "hashed:password123",
			Role: model.RoleUser, IsActive: true}, nil)

	uc := newAuthUsecase(users, newFakeBlacklist())
	out, err := uc.Login(context.Background(), usecase.LoginInput{Username: "user1", Password: "password123"})

	assert.NoError(t, err)
	assert.Equal(t, "token-user1", out.AccessToken)
	assert.Equal(t, "Bearer", out.TokenType)
	assert.Equal(t, int((15 * time.Minute).Seconds()), out.ExpiresIn)
}

// usernameの有無もパスワード不一致も同じ応答にする
func TestLogin_InvalidCredentials(t *testing.T) {
	users := &UserRepoMock{}
	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, repo.ErrNotFound)
	users.On("FindByUsername", mock.Anything, "user1").
		Return(&model.User{ID: 1, Username: "user1", PasswordHash: "hashed:password123",
			Role: model.RoleUser, IsActive: true}, nil)

	uc := newAuthUsecase(users, newFakeBlacklist())

	_, err := uc.Login(context.Background(), usecase.LoginInput{Username: "ghost", Password: "whatever1"})
	assertKind(t, err, apperr.KindUnauthorized)
	assertErrContains(t, err, "invalid credentials")

	_, err = uc.Login(context.Background(), usecase.LoginInput{Username: "user1", Password: "wrongpass"})
	assertKind(t, err, apperr.KindUnauthorized)
	assertErrContains(t, err, "invalid credentials")
}

func TestLogin_InactiveUser(t *testing.T) {
	users := &UserRepoMock{}
	users.On("FindByUsername", mock.Anything, "user1").
		Return(&model.User{ID: 1, Username: "user1", PasswordHash: "hashed:password123",
			Role: model.RoleUser, IsActive: false}, nil)

	uc := newAuthUsecase(users, newFakeBlacklist())
	_, err := uc.Login(context.Background(), usecase.LoginInput{Username: "user1", Password: "password123"})

	assertKind(t, err, apperr.KindForbidden)
}

func TestLogout_AddsJTIToBlacklist(t *testing.T) {
	bl := newFakeBlacklist()
	uc := newAuthUsecase(&UserRepoMock{}, bl)

	expiresAt := time.Date(2026, 8, 1, 12, 15, 0, 0, time.UTC)
	err := uc.Logout(context.Background(), "jti-abc", expiresAt)

	assert.NoError(t, err)
	assert.Equal(t, expiresAt, bl.added["jti-abc"])
}

func TestLogout_EmptyJTI(t *testing.T) {
	bl := newFakeBlacklist()
	uc := newAuthUsecase(&UserRepoMock{}, bl)

	err := uc.Logout(context.Background(), "", time.Now())

	assertKind(t, err, apperr.KindUnauthorized)
	assert.Empty(t, bl.added)
}
