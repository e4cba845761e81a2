package usecase

import (
	"context"
	"errors"
	"net/mail"

	"shop/internal/apperr"
	repo "shop/internal/repository"
)

type UserUsecase struct {
	users repo.UserRepository
}

func NewUserUsecase(users repo.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

type UpdateProfileInput struct {
	Email string `json:"email"`
}

func (u *UserUsecase) GetProfile(ctx context.Context, username string) (UserOutput, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return UserOutput{}, apperr.Newf(apperr.KindUserNotFound, "user not found with username: %s", username)
	}
	if err != nil {
		return UserOutput{}, apperr.Internal(err)
	}
	return toUserOutput(user), nil
}

// UpdateProfile は自分のメールアドレスを変更する
func (u *UserUsecase) UpdateProfile(ctx context.Context, username string, in UpdateProfileInput) (UserOutput, error) {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return UserOutput{}, apperr.New(apperr.KindInvalidInput, "invalid email format")
	}

	user, err := u.users.FindByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return UserOutput{}, apperr.Newf(apperr.KindUserNotFound, "user not found with username: %s", username)
	}
	if err != nil {
		return UserOutput{}, apperr.Internal(err)
	}

	//他ユーザーのemailと衝突しないか
	if other, err := u.users.FindByEmail(ctx, in.Email); err == nil {
		if other.ID != user.ID {
			return UserOutput{}, apperr.Newf(apperr.KindAlreadyExists, "email %s is already registered", in.Email)
		}
	} else if !errors.Is(err, repo.ErrNotFound) {
		return UserOutput{}, apperr.Internal(err)
	}

	user.Email = in.Email
	if err := u.users.Update(ctx, user); err != nil {
		return UserOutput{}, apperr.Internal(err)
	}
	return toUserOutput(user), nil
}
