// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"conversation_backend/internal/feature/auth/domain/entity"
)

const (
	// sessionTTL は通常ログイン時のセッション有効期間です。
	sessionTTL = 24 * time.Hour

	// rememberSessionTTL は「ログイン状態を保持する」を選択した場合のセッション有効期間です。
	rememberSessionTTL = 30 * 24 * time.Hour

	// maxSessionsPerUser はユーザーごとの同時セッション数の上限です。
	// 上限に達した場合、最も古いセッションが削除されます。
	maxSessionsPerUser = 5

	// sessionIDBytes はセッションIDの乱数バイト長です（hex表現で64文字）。
	sessionIDBytes = 32
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じユーザー名のユーザーが既に存在する場合、ErrUsernameTakenを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Delete は指定されたIDのユーザーを削除します。
	// 所有するルームはストレージ層の外部キー制約によって連鎖削除されます。
	Delete(ctx context.Context, id uint) error
}

// TokenGenerator は署名付きトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	// GenerateToken は指定されたユーザーとセッションの署名済みトークンを生成します。
	GenerateToken(userID uint, username, sessionID string, ttl time.Duration) (string, error)
}

// LoginInput はログイン試行の入力をまとめたものです。
// UserAgentとIPAddressはセッション記録の監査用メタデータです。
type LoginInput struct {
	Username  string
	Password  string
	Remember  bool
	UserAgent string
	IPAddress string
}

// LoginResult はログイン成功時に発行されたトークンとその有効期間を保持します。
type LoginResult struct {
	Token    string
	TTL      time.Duration
	Remember bool
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator) *authUsecase {
	return &authUsecase{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// 構造的なバリデーション（必須・長さ・メール形式）はトランスポート層で完了している前提で、
// ここではストア依存の一意性チェックのみを行います。ユニークインデックスが
// 最終的な防衛線となり、競合時はアダプタがErrUsernameTakenへ変換します。
func (u *authUsecase) Register(ctx context.Context, username, email, password string) error {
	// ユーザー名の一意性チェック
	if _, err := u.users.FindByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	// メールアドレスの一意性チェック
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Username: username, Email: email, PasswordHash: string(hashed)}
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、成功時に署名済みトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// Remember指定時はセッションとトークンの有効期間が延長されます。
func (u *authUsecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := u.users.FindByUsername(ctx, in.Username)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(in.Password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	ttl := sessionTTL
	if in.Remember {
		ttl = rememberSessionTTL
	}

	// セッション数が上限に達していれば最も古いものを追い出す
	if count, err := u.sessions.CountByUserID(ctx, user.ID); err == nil && count >= maxSessionsPerUser {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to evict oldest session: %w", err)
		}
	}

	id, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := time.Now()
	session := &entity.Session{
		ID:        id,
		UserID:    user.ID,
		Remember:  in.Remember,
		UserAgent: in.UserAgent,
		IPAddress: in.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Username, session.ID, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{Token: token, TTL: ttl, Remember: in.Remember}, nil
}

// Logout は指定されたセッションを失効させます。
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	return u.sessions.Revoke(ctx, sessionID)
}

// newSessionID は暗号論的乱数からセッションIDを生成します。
func newSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
