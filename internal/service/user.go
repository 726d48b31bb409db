package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"microblog/internal/store"
)

type UserService struct {
	store    *store.Store
	hashCost int
}

func NewUserService(s *store.Store) *UserService {
	return &UserService{store: s, hashCost: bcrypt.DefaultCost}
}

// Register inserts a new user. The password is stored as a bcrypt hash and
// a taken api key is reported as ErrBadUser.
func (s *UserService) Register(ctx context.Context, name, password, apiKey string) (*store.User, error) {
	if name == "" || apiKey == "" {
		return nil, &Error{Type: TypeBadUser, Message: "name and api_key are required", Kind: KindBadRequest}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, &Error{Type: TypeBadUser, Message: "password must not exceed 72 bytes", Kind: KindBadRequest}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &store.User{Name: name, APIKey: apiKey, Password: string(hash)}
	err = s.store.WithTx(ctx, func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).Create(user).Error
		if store.IsUniqueViolation(err) {
			return ErrBadUser
		}
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckPassword reports whether password matches the stored hash of user.
func CheckPassword(user *store.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*Profile, error) {
	var profile *Profile
	err := s.store.WithTx(ctx, func(tx *gorm.DB) error {
		var user store.User
		err := tx.Where("id = ?", id).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNoUserByID
		}
		if err != nil {
			return fmt.Errorf("failed to fetch user %d: %w", id, err)
		}
		profile, err = loadProfile(tx, &user)
		return err
	})
	return profile, err
}

func (s *UserService) GetByAPIKey(ctx context.Context, apiKey string) (*Profile, error) {
	var profile *Profile
	err := s.store.WithTx(ctx, func(tx *gorm.DB) error {
		user, err := resolveIdentity(tx, apiKey)
		if err != nil {
			return err
		}
		profile, err = loadProfile(tx, user)
		return err
	})
	return profile, err
}
