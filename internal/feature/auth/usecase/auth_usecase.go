// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"wastemap_backend/internal/feature/auth/domain/entity"
	"wastemap_backend/internal/platform/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 6

	// maxPasswordBytes はbcryptが受け付けるパスワードの最大バイト数です。
	maxPasswordBytes = 72

	adminFirstName = "Admin"
	adminLastName  = "User"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// FindByEmail は指定されたメールアドレスに完全一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// Upsert はIDをキーにユーザーを挿入または更新し、updatedAtを更新します。
	// 別IDで同じメールアドレスが存在する場合、ErrEmailAlreadyExistsを返します。
	Upsert(ctx context.Context, user *entity.User) error
}

// PasswordHasher はパスワードのハッシュ化と検証を行います。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer はアクセストークンを発行します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	Issue(userID, email string, role entity.Role) (string, error)
}

// AdminConfig は起動時に作成する管理者アカウントの設定です。
type AdminConfig struct {
	Email    string
	Password string
}

// RegisterInput はユーザー登録の入力です。
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult はログイン・登録成功時の結果です。
type AuthResult struct {
	User  *entity.User
	Token string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	admin    AdminConfig
	validate *validator.Validate
	newID    func() string
	// dummyHash はユーザーが存在しない場合に比較するハッシュです。
	// 注入されたhasherで生成するため、実際のハッシュと同じコストになります。
	dummyHash string
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer, admin AdminConfig) *authUsecase {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		// Verifyは不正なハッシュに対してfalseを返すため、ログインは失敗側に倒れる
		slog.Error("failed to generate dummy password hash", "error", err)
	}
	return &authUsecase{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		admin:     admin,
		validate:  validator.New(),
		newID:     uuid.NewString,
		dummyHash: dummy,
	}
}

// validateRegistration は入力がストアに触れる前に形式を検証します。
func (u *authUsecase) validateRegistration(in RegisterInput) error {
	if err := u.validate.Var(in.Email, "required,email"); err != nil {
		return errors.New("a valid email is required")
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if len(in.Password) > maxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes long", maxPasswordBytes)
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Register はハッシュ化されたパスワードで新規ユーザー（role=user）を登録し、トークンを発行します。
// メールアドレスは保存された文字列との完全一致で重複判定します。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	const op = "auth.Register"

	if err := u.validateRegistration(in); err != nil {
		return nil, apperr.E(apperr.Validation, op, err)
	}

	_, err := u.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperr.E(apperr.DuplicateEmail, op, ErrEmailAlreadyExists)
	case !errors.Is(err, ErrUserNotFound):
		return nil, apperr.E(apperr.Storage, op, err)
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.E(apperr.Validation, op, err)
	}

	user := &entity.User{
		ID:        u.newID(),
		Email:     in.Email,
		Password:  &hashed,
		FirstName: optional(in.FirstName),
		LastName:  optional(in.LastName),
		Role:      entity.RoleUser,
	}
	if err := u.users.Upsert(ctx, user); err != nil {
		// 同時登録による一意制約違反
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, apperr.E(apperr.DuplicateEmail, op, err)
		}
		return nil, apperr.E(apperr.Storage, op, err)
	}

	return u.issue(op, user)
}

// Login はユーザーを認証し、成功時にトークンを返します。
// メール未登録・パスワード未設定・パスワード不一致はすべて同じErrInvalidCredentialsになります。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "auth.Login"

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, apperr.E(apperr.Storage, op, err)
	}

	passwordHash := u.dummyHash
	if err == nil && user.HasPassword() {
		passwordHash = *user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	matched := u.hasher.Verify(password, passwordHash)

	// 失敗理由はログにのみ残し、呼び出し元には汎用エラーを返す
	switch {
	case err != nil:
		slog.Warn("login rejected", "reason", "unknown_email", "email", email)
	case !user.HasPassword():
		slog.Warn("login rejected", "reason", "no_password", "email", email, "user_id", user.ID)
	case !matched:
		slog.Warn("login rejected", "reason", "wrong_password", "email", email, "user_id", user.ID)
	default:
		return u.issue(op, user)
	}

	return nil, apperr.E(apperr.InvalidCredentials, op, ErrInvalidCredentials)
}

// BootstrapAdmin は設定された管理者アカウントを冪等に作成します。
// 既に存在する場合はパスワードを上書きせず、そのまま返します。
func (u *authUsecase) BootstrapAdmin(ctx context.Context) (*entity.User, error) {
	const op = "auth.BootstrapAdmin"

	if u.admin.Email == "" || u.admin.Password == "" {
		return nil, apperr.E(apperr.Configuration, op, ErrMissingAdminConfig)
	}

	existing, err := u.users.FindByEmail(ctx, u.admin.Email)
	if err == nil {
		slog.Info("admin user already exists", "email", existing.Email, "user_id", existing.ID)
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, apperr.E(apperr.Storage, op, err)
	}

	hashed, err := u.hasher.Hash(u.admin.Password)
	if err != nil {
		return nil, apperr.E(apperr.Configuration, op, err)
	}

	first, last := adminFirstName, adminLastName
	admin := &entity.User{
		ID:              u.newID(),
		Email:           u.admin.Email,
		Password:        &hashed,
		FirstName:       &first,
		LastName:        &last,
		Role:            entity.RoleAdmin,
		IsEmailVerified: true,
	}
	if err := u.users.Upsert(ctx, admin); err != nil {
		// 別インスタンスが先に作成した場合は、その管理者を返す
		if errors.Is(err, ErrEmailAlreadyExists) {
			if existing, ferr := u.users.FindByEmail(ctx, u.admin.Email); ferr == nil {
				return existing, nil
			}
		}
		return nil, apperr.E(apperr.Storage, op, err)
	}

	slog.Info("admin user created", "email", admin.Email, "user_id", admin.ID)
	return admin, nil
}

// CurrentUser はIDでユーザーを取得します。存在しない場合はNotFoundを返します。
func (u *authUsecase) CurrentUser(ctx context.Context, id string) (*entity.User, error) {
	const op = "auth.CurrentUser"

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.E(apperr.NotFound, op, err)
		}
		return nil, apperr.E(apperr.Storage, op, err)
	}
	return user, nil
}

func (u *authUsecase) issue(op string, user *entity.User) (*AuthResult, error) {
	token, err := u.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperr.E(apperr.Storage, op, fmt.Errorf("failed to generate token: %w", err))
	}
	return &AuthResult{User: user, Token: token}, nil
}
