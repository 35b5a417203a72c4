package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"conversation_backend/internal/app/di"
	"conversation_backend/internal/app/router"
	authadapters "conversation_backend/internal/feature/auth/adapters"
	authhandler "conversation_backend/internal/feature/auth/transport/handler"
	authusecase "conversation_backend/internal/feature/auth/usecase"
	convadapters "conversation_backend/internal/feature/conversations/adapters"
	convhandler "conversation_backend/internal/feature/conversations/transport/handler"
	convusecase "conversation_backend/internal/feature/conversations/usecase"
	"conversation_backend/internal/platform/cache"
	infradb "conversation_backend/internal/platform/db"
	jwtmw "conversation_backend/internal/platform/jwt"
	infraredis "conversation_backend/internal/platform/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis（ブローカー・セッション・キャッシュ共用）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without broker and cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	convRepo := convadapters.NewConversationGorm(db)

	// Redisキャッシュでラップ
	cachedConvRepo := cache.NewCachingConversationRepository(rdb, 5*time.Minute, convRepo, "conversations")

	// セッションストア（Redis、なければDBフォールバック）
	sessionRepo := di.NewSessionRepository(rdb, db)

	// ブローカーブリッジ
	bridge := di.NewBroker(rdb)
	defer func() {
		if err := bridge.Close(); err != nil {
			log.Println("[ERROR] Failed to close broker subscriptions:", err)
		}
	}()

	// トークン生成器・認証ミドルウェア
	tokens := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret))
	authMW := jwtmw.NewMiddleware(sessionRepo)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokens)
	convUC := convusecase.NewConversationUsecase(cachedConvRepo, bridge)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, authMW)
	convH := convhandler.NewConversationHandler(convUC)

	// ルータ生成
	router := router.NewRouter(authH, convH, authMW)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
