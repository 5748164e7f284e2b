package usecase

import (
	"context"
	"time"

	"blog_backend/internal/feature/auth/domain/entity"
	jwtmw "blog_backend/internal/platform/jwt"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
type mockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *entity.User) error
	FindByEmailFunc    func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc       func(ctx context.Context, id uint) (*entity.User, error)
	ListActiveFunc     func(ctx context.Context) ([]*entity.User, error)
	UpdateProfileFunc  func(ctx context.Context, id uint, name, username, email string) error
	UpdatePasswordFunc func(ctx context.Context, id uint, digest string) error
	DeactivateFunc     func(ctx context.Context, id uint) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) ListActive(ctx context.Context) ([]*entity.User, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id uint, name, username, email string) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, name, username, email)
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id uint, digest string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, digest)
	}
	return nil
}

func (m *mockUserRepository) Deactivate(ctx context.Context, id uint) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return nil
}

// mockTokenService is a mock implementation of the TokenService interface.
type mockTokenService struct {
	IssueFunc  func(subject string, ttl time.Duration) (jwtmw.Token, error)
	VerifyFunc func(token string) (string, error)
}

func (m *mockTokenService) Issue(subject string, ttl time.Duration) (jwtmw.Token, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(subject, ttl)
	}
	return jwtmw.Token{Value: "mock-jwt-token:" + subject}, nil
}

func (m *mockTokenService) Verify(token string) (string, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	return "", jwtmw.ErrInvalidToken
}
