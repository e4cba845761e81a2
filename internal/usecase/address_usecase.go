package usecase

import (
	"context"
	"errors"
	"strings"

	"shop/internal/apperr"
	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type AddressUsecase struct {
	users     repo.UserRepository
	addresses repo.AddressRepository
}

func NewAddressUsecase(users repo.UserRepository, addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{users: users, addresses: addresses}
}

type AddressInput struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

func (in AddressInput) validate() error {
	if strings.TrimSpace(in.Street) == "" {
		return apperr.New(apperr.KindInvalidInput, "street is required")
	}
	if strings.TrimSpace(in.City) == "" {
		return apperr.New(apperr.KindInvalidInput, "city is required")
	}
	if strings.TrimSpace(in.PostalCode) == "" {
		return apperr.New(apperr.KindInvalidInput, "postal_code is required")
	}
	if strings.TrimSpace(in.Country) == "" {
		return apperr.New(apperr.KindInvalidInput, "country is required")
	}
	return nil
}

// Create は住所を追加する。is_defaultなら既定住所を切り替える
func (u *AddressUsecase) Create(ctx context.Context, username string, in AddressInput) (model.Address, error) {
	user, err := u.findUser(ctx, username)
	if err != nil {
		return model.Address{}, err
	}
	if err := in.validate(); err != nil {
		return model.Address{}, err
	}

	created, err := u.addresses.Create(ctx, model.Address{
		UserID:     user.ID,
		Street:     in.Street,
		City:       in.City,
		State:      in.State,
		PostalCode: in.PostalCode,
		Country:    in.Country,
	})
	if err != nil {
		return model.Address{}, apperr.Internal(err)
	}

	if in.IsDefault {
		if err := u.addresses.SetDefault(ctx, user.ID, created.ID); err != nil {
			return model.Address{}, apperr.Internal(err)
		}
		created.IsDefault = true
	}
	return created, nil
}

func (u *AddressUsecase) List(ctx context.Context, username string) ([]model.Address, error) {
	user, err := u.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	list, err := u.addresses.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return list, nil
}

// Update は自分の住所だけ更新できる
func (u *AddressUsecase) Update(ctx context.Context, username string, addressID int64, in AddressInput) (model.Address, error) {
	user, err := u.findUser(ctx, username)
	if err != nil {
		return model.Address{}, err
	}
	if err := in.validate(); err != nil {
		return model.Address{}, err
	}

	err = u.addresses.Update(ctx, model.Address{
		ID:         addressID,
		UserID:     user.ID,
		Street:     in.Street,
		City:       in.City,
		State:      in.State,
		PostalCode: in.PostalCode,
		Country:    in.Country,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Address{}, addressNotFound(addressID)
	}
	if err != nil {
		return model.Address{}, apperr.Internal(err)
	}

	updated, err := u.addresses.FindByIDAndUserID(ctx, addressID, user.ID)
	if err != nil {
		return model.Address{}, apperr.Internal(err)
	}
	return updated, nil
}

func (u *AddressUsecase) Delete(ctx context.Context, username string, addressID int64) error {
	user, err := u.findUser(ctx, username)
	if err != nil {
		return err
	}

	err = u.addresses.Delete(ctx, addressID, user.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return addressNotFound(addressID)
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (u *AddressUsecase) SetDefault(ctx context.Context, username string, addressID int64) error {
	user, err := u.findUser(ctx, username)
	if err != nil {
		return err
	}

	err = u.addresses.SetDefault(ctx, user.ID, addressID)
	if errors.Is(err, repo.ErrNotFound) {
		return addressNotFound(addressID)
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (u *AddressUsecase) findUser(ctx context.Context, username string) (*model.User, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.Newf(apperr.KindUserNotFound, "user not found with username: %s", username)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func addressNotFound(addressID int64) error {
	return apperr.Newf(apperr.KindAddressNotFound, "address not found with id: %d", addressID)
}
