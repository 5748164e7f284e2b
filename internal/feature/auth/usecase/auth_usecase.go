package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"blog_backend/internal/feature/auth/domain/entity"
	jwtmw "blog_backend/internal/platform/jwt"
	"blog_backend/internal/shared/identity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。
	// ユーザー名またはメールアドレスが重複する場合、ErrDuplicateIdentityを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// ListActive は有効なユーザーをID昇順で返します。
	ListActive(ctx context.Context) ([]*entity.User, error)

	// UpdateProfile は名前・ユーザー名・メールアドレスを更新します。
	UpdateProfile(ctx context.Context, id uint, name, username, email string) error

	// UpdatePassword はパスワードのハッシュを置き換えます。
	UpdatePassword(ctx context.Context, id uint, digest string) error

	// Deactivate はユーザーを無効化します。
	Deactivate(ctx context.Context, id uint) error
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenService issues and verifies access tokens.
type TokenService interface {
	Issue(subject string, ttl time.Duration) (jwtmw.Token, error)
	Verify(token string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	hasher   PasswordHasher
	tokens   TokenService
	tokenTTL time.Duration
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenService, tokenTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// Login はメールアドレスとパスワードでユーザーを認証し、アクセストークンを返します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (jwtmw.Token, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return jwtmw.Token{}, ErrAccountNotFound
		}
		return jwtmw.Token{}, fmt.Errorf("failed to find user: %w", err)
	}

	if !u.hasher.Verify(password, user.Password) {
		return jwtmw.Token{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return jwtmw.Token{}, ErrInactiveAccount
	}

	token, err := u.tokens.Issue(strconv.FormatUint(uint64(user.ID), 10), u.tokenTTL)
	if err != nil {
		return jwtmw.Token{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// VerifyToken reports whether token is currently valid. It never fails.
func (u *authUsecase) VerifyToken(token string) bool {
	_, err := u.tokens.Verify(token)
	return err == nil
}

// Identify resolves a token subject to an identity snapshot for the authentication guard.
func (u *authUsecase) Identify(ctx context.Context, id uint) (identity.Identity, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return identity.Identity{}, fmt.Errorf("user %d: %w", id, identity.ErrUnknown)
		}
		return identity.Identity{}, err
	}
	return user.Identity(), nil
}
