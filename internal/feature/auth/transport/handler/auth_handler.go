// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"conversation_backend/internal/feature/auth/transport/http/dto"
	"conversation_backend/internal/feature/auth/usecase"
	"conversation_backend/internal/platform/http/validation"
	jwtmw "conversation_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定されたユーザー名・メールアドレス・パスワードで新規ユーザーを登録します。
	Register(ctx context.Context, username, email, password string) error
	// Login はユーザーを認証し、成功時に署名済みトークンを返します。
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginResult, error)
	// Logout は指定されたセッションを失効させます。
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、フォーム/JSONリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
	mw   *jwtmw.Middleware
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseと認証ミドルウェアを注入します。
func NewAuthHandler(auth AuthUsecase, mw *jwtmw.Middleware) *AuthHandler {
	return &AuthHandler{auth: auth, mw: mw}
}

// ShowRegister は登録フォームのGETリクエストを処理します。
// 認証済みユーザーはホームへリダイレクトされます。
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if h.mw.Authenticated(c) {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "register with username, email, password and confirm_password"})
}

// Register はユーザー登録エンドポイントを処理します。
// - 構造バリデーション違反時はフィールド別エラーと共に400を返却
// - ユーザー名またはメールの重複時は409を返却
// - 成功時はログインページへ303リダイレクト
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.FieldErrorResponse{Errors: validation.FieldErrors(err)})
		return
	}

	if err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUsernameTaken):
			c.JSON(http.StatusConflict, dto.FieldErrorResponse{Errors: map[string]string{"username": err.Error()}})
		case errors.Is(err, usecase.ErrEmailTaken):
			c.JSON(http.StatusConflict, dto.FieldErrorResponse{Errors: map[string]string{"email": err.Error()}})
		default:
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "registration failed"})
		}
		return
	}

	slog.Info("user registered", "username", req.Username, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusSeeOther, "/login")
}

// ShowLogin はログインフォームのGETリクエストを処理します。
// 認証済みユーザーはホームへリダイレクトされます。
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if h.mw.Authenticated(c) {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "login with username and password"})
}

// Login はログインエンドポイントを処理します。
// - バリデーションエラー時はフィールド別エラーと共に400を返却
// - 認証失敗時は汎用メッセージと共に401を返却（どちらの項目が誤りかは漏らさない）
// - 成功時はセッションクッキーを設定しホームへ303リダイレクト
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.FieldErrorResponse{Errors: validation.FieldErrors(err)})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), usecase.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		Remember:  req.Remember,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "login failed, check username and password"})
		return
	}

	// Remember指定時のみ永続クッキーにする（Max-Age省略でブラウザ終了時に破棄）
	maxAge := 0
	if res.Remember {
		maxAge = int(res.TTL.Seconds())
	}
	c.SetCookie(jwtmw.CookieName, res.Token, maxAge, "/", "", false, true)

	slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusSeeOther, "/home")
}

// Logout は現在のセッションを失効させ、クッキーを破棄します。
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid := c.GetString(jwtmw.ContextSessionID); sid != "" {
		if err := h.auth.Logout(c.Request.Context(), sid); err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
			slog.Warn("session revocation failed", "error", err)
		}
	}
	c.SetCookie(jwtmw.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
