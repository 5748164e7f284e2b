package usecase

import (
	"context"
	"fmt"

	"blog_backend/internal/feature/auth/domain/entity"
)

// MaxPasswordBytes is bcrypt's input limit. Multi-byte characters count per byte.
const MaxPasswordBytes = 72

// userUsecase implements account management for authenticated users.
type userUsecase struct {
	users  UserRepository
	hasher PasswordHasher
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, hasher PasswordHasher) *userUsecase {
	return &userUsecase{users: users, hasher: hasher}
}

// Register creates an active user with a hashed password.
func (u *userUsecase) Register(ctx context.Context, name, username, email, password string) (*entity.User, error) {
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}
	digest, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     name,
		Username: username,
		Email:    email,
		Password: digest,
		IsActive: true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns all active users.
func (u *userUsecase) List(ctx context.Context) ([]*entity.User, error) {
	return u.users.ListActive(ctx)
}

// Get returns the user with id, active or not.
func (u *userUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// UpdateProfile replaces the name, username and email of user id.
func (u *userUsecase) UpdateProfile(ctx context.Context, id uint, name, username, email string) (*entity.User, error) {
	if err := u.users.UpdateProfile(ctx, id, name, username, email); err != nil {
		return nil, err
	}
	return u.users.FindByID(ctx, id)
}

// ChangePassword replaces the password of user id after checking the old one.
func (u *userUsecase) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	if len(newPassword) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !u.hasher.Verify(oldPassword, user.Password) {
		return ErrWrongPassword
	}

	digest, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := u.users.UpdatePassword(ctx, id, digest); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Deactivate disables user id. Posts and comments are kept.
func (u *userUsecase) Deactivate(ctx context.Context, id uint) error {
	return u.users.Deactivate(ctx, id)
}
