package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"shop/internal/apperr"
	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 平文パスワードからハッシュへ
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(username string, role model.Role, now time.Time) (token string, jti string, expiresAt time.Time, err error)
}

// ログアウト済みトークンを期限付きで覚える約束
type TokenBlacklist interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

type AuthUsecase struct {
	users     repo.UserRepository
	hasher    PasswordHasher
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	blacklist TokenBlacklist
	clock     Clock
}

// DI
func NewAuthUsecase(
	users repo.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	blacklist TokenBlacklist,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		hasher:    hasher,
		verifier:  verifier,
		issuer:    issuer,
		blacklist: blacklist,
		clock:     clock,
	}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserOutput struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Register は会員登録。username/emailは重複不可
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserOutput, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || len(username) > 100 {
		return UserOutput{}, apperr.New(apperr.KindInvalidInput, "invalid username")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return UserOutput{}, apperr.New(apperr.KindInvalidInput, "invalid email format")
	}

	// password の長さチェック（最小8文字）
	if len(in.Password) < 8 {
		return UserOutput{}, apperr.New(apperr.KindInvalidInput, "password too short")
	}

	//username重複チェック
	if _, err := u.users.FindByUsername(ctx, username); err == nil {
		return UserOutput{}, apperr.Newf(apperr.KindAlreadyExists, "username %s is already taken", username)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return UserOutput{}, apperr.Internal(err)
	}

	//email重複チェック
	if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
		return UserOutput{}, apperr.Newf(apperr.KindAlreadyExists, "email %s is already registered", in.Email)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return UserOutput{}, apperr.Internal(err)
	}

	//ハッシュを保存（平文は保存しない）
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserOutput{}, apperr.Internal(err)
	}

	user := &model.User{
		Username:     username,
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         model.RoleUser,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return UserOutput{}, apperr.Internal(err)
	}

	return toUserOutput(user), nil
}

// Login はパスワード照合してアクセストークンを返す
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	user, err := u.users.FindByUsername(ctx, in.Username)
	if errors.Is(err, repo.ErrNotFound) {
		//usernameの存在は漏らさない
		return LoginOutput{}, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, apperr.Internal(err)
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return LoginOutput{}, apperr.New(apperr.KindForbidden, "user is inactive")
	}

	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return LoginOutput{}, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}

	now := u.clock.Now()
	token, _, expiresAt, err := u.issuer.Issue(user.Username, user.Role, now)
	if err != nil {
		return LoginOutput{}, apperr.Internal(err)
	}

	return LoginOutput{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}, nil
}

// Logout は使用中トークンのjtiを期限までブラックリストに入れる
func (u *AuthUsecase) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return apperr.New(apperr.KindUnauthorized, "unauthorized")
	}
	if err := u.blacklist.Add(ctx, jti, expiresAt); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func toUserOutput(u *model.User) UserOutput {
	return UserOutput{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}
