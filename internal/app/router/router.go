package router

import (
	"github.com/gin-gonic/gin"

	authhandler "conversation_backend/internal/feature/auth/transport/handler"
	convhandler "conversation_backend/internal/feature/conversations/transport/handler"
	"conversation_backend/internal/platform/http/handler"
	jwtmw "conversation_backend/internal/platform/jwt"
)

func NewRouter(authHandler *authhandler.AuthHandler, convHandler *convhandler.ConversationHandler, mw *jwtmw.Middleware) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	// ログイン（セッショントークン発行）
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// mw.AuthRequired() ミドルウェアを適用
	// → 未認証・失効済みセッションのリクエストは /login へリダイレクトされる
	auth.Use(mw.AuthRequired())
	{
		// ホーム＝ルーム作成フォーム
		auth.GET("/", convHandler.ShowCreate)
		auth.POST("/", convHandler.Create)
		auth.GET("/home", convHandler.ShowCreate)
		auth.POST("/home", convHandler.Create)
		// ルーム一覧
		auth.GET("/conversations", convHandler.List)
		// ルーム入室（ブローカー購読＋配信）
		auth.GET("/conversation/:name", convHandler.Enter)
		auth.POST("/conversation/:name", convHandler.Enter)
		// ログアウト
		auth.POST("/logout", authHandler.Logout)
	}

	return r
}
