// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/auth/usecase"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// userRepository はUserRepositoryインターフェースのGORM実装です。
type userRepository struct {
	db *gorm.DB
}

// userRepositoryがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userRepository)(nil)

// NewUserRepository は指定されたgorm.DB接続でuserRepositoryの新しいインスタンスを生成します。
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

// Create はユーザーをデータベースに追加します。
// ユーザー名またはメールアドレスが重複する場合、usecase.ErrDuplicateIdentityを返します。
func (r *userRepository) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

// ListActive は有効なユーザーをID昇順で取得します。
func (r *userRepository) ListActive(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile は名前・ユーザー名・メールアドレスを更新します。
func (r *userRepository) UpdateProfile(ctx context.Context, id uint, name, username, email string) error {
	return r.updates(ctx, id, map[string]any{"name": name, "username": username, "email": email})
}

// UpdatePassword はパスワードのハッシュを更新します。
func (r *userRepository) UpdatePassword(ctx context.Context, id uint, digest string) error {
	return r.updates(ctx, id, map[string]any{"password": digest})
}

// Deactivate はis_activeをfalseにします。
func (r *userRepository) Deactivate(ctx context.Context, id uint) error {
	return r.updates(ctx, id, map[string]any{"is_active": false})
}

func (r *userRepository) updates(ctx context.Context, id uint, values map[string]any) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// translateError maps driver errors onto usecase errors.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usecase.ErrUserNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usecase.ErrDuplicateIdentity
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return usecase.ErrDuplicateIdentity
	}
	return err
}
