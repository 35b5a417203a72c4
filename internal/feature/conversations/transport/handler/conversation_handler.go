// Package handler はconversationsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"conversation_backend/internal/feature/conversations/domain/entity"
	"conversation_backend/internal/feature/conversations/transport/http/dto"
	"conversation_backend/internal/feature/conversations/usecase"
	"conversation_backend/internal/platform/http/validation"
	jwtmw "conversation_backend/internal/platform/jwt"
)

// ConversationUsecase はルーム操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ConversationUsecase interface {
	// Create は新しいルームを作成します。
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Conversation, error)
	// List はすべてのルームを返します。
	List(ctx context.Context) ([]entity.Conversation, error)
	// Enter は名前でルームを検索し、トピックの購読と配信を行います。
	Enter(ctx context.Context, name string) (*entity.Conversation, error)
}

// ConversationHandler はルーム操作のHTTPリクエストを処理します。
type ConversationHandler struct {
	rooms ConversationUsecase
}

// NewConversationHandler はConversationHandlerの新しいインスタンスを生成します。
func NewConversationHandler(rooms ConversationUsecase) *ConversationHandler {
	return &ConversationHandler{rooms: rooms}
}

// ShowCreate はルーム作成フォームのGETリクエストを処理します。
func (h *ConversationHandler) ShowCreate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "create a conversation with name, password and confirm_password"})
}

// Create はルーム作成エンドポイントを処理します。
// - 構造バリデーション違反時はフィールド別エラーと共に400を返却
// - 名前の重複時は409を返却
// - 成功時は新しいルームのページへ303リダイレクト
func (h *ConversationHandler) Create(c *gin.Context) {
	var req dto.CreateConversationReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("conversation validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"errors": validation.FieldErrors(err)})
		return
	}

	userID := c.GetUint(jwtmw.ContextUserID)
	conv, err := h.rooms.Create(c.Request.Context(), usecase.CreateInput{
		Name:      req.Name,
		Password:  req.Password,
		CreatedBy: userID,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrNameTaken) {
			c.JSON(http.StatusConflict, gin.H{"errors": gin.H{"name": err.Error()}})
			return
		}
		slog.Error("conversation create failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create conversation"})
		return
	}

	slog.Info("conversation created", "name", conv.Name, "user_id", userID)
	c.Redirect(http.StatusSeeOther, "/conversation/"+url.PathEscape(conv.Name))
}

// List はすべてのルームの一覧を返します。所有者によるフィルタリングは行いません。
func (h *ConversationHandler) List(c *gin.Context) {
	convs, err := h.rooms.List(c.Request.Context())
	if err != nil {
		slog.Error("conversation list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list conversations"})
		return
	}

	out := make([]dto.ConversationItem, 0, len(convs))
	for _, conv := range convs {
		out = append(out, dto.ConversationItem{ID: conv.ID, Name: conv.Name, CreatedBy: conv.CreatedBy})
	}
	c.JSON(http.StatusOK, out)
}

// Enter は名前で指定されたルームへの入室を処理します。
// ルームにはパスワードハッシュが保存されていますが、入室時には照合されません。
// TODO: 入室フローが固まったらルームパスワードの照合を必須にする。
func (h *ConversationHandler) Enter(c *gin.Context) {
	name := c.Param("name")

	conv, err := h.rooms.Enter(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, usecase.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		}
		slog.Error("conversation enter failed", "error", err, "name", name)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not enter conversation"})
		return
	}

	c.JSON(http.StatusOK, dto.ConversationPage{
		Conversation: dto.ConversationItem{ID: conv.ID, Name: conv.Name, CreatedBy: conv.CreatedBy},
		Topic:        usecase.TopicPrefix + conv.Name,
	})
}
