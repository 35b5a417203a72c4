// Package usecase はconversationsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"conversation_backend/internal/feature/conversations/domain/entity"
)

// TopicPrefix はルームごとのブローカートピック名のプレフィックスです。
// ルーム名ごとにトピックが1つ対応します。
const TopicPrefix = "conversations/"

// enterPayload はルーム入室時に配信されるプレースホルダーメッセージです。
const enterPayload = "weather,location=us-midwest temperature=82"

// ConversationRepository はルームエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ConversationRepository interface {
	// Create は新しいルームをストレージに永続化します。
	// 同名のルームが既に存在する場合、ErrNameTakenを返します。
	Create(ctx context.Context, conv *entity.Conversation) error

	// FindByName は指定された名前に一致するルームを取得します。
	FindByName(ctx context.Context, name string) (*entity.Conversation, error)

	// List はすべてのルームを作成日時昇順で取得します。
	List(ctx context.Context) ([]entity.Conversation, error)

	// Delete は指定されたIDのルームを削除します。
	Delete(ctx context.Context, id uint) error
}

// Broker はpublish/subscribeブローカーへの薄い橋渡しを抽象化します。
// 配信はベストエフォートで、再送・順序・到達保証はブローカー任せです。
type Broker interface {
	// Subscribe は指定トピックの購読を開始します。
	Subscribe(ctx context.Context, topic string) error

	// Publish は指定トピックへメッセージを1件配信します。
	Publish(ctx context.Context, topic, payload string) error
}

// CreateInput はルーム作成の入力をまとめたものです。
type CreateInput struct {
	Name      string
	Password  string
	CreatedBy uint
}

// conversationUsecase はルームのビジネスロジックを実装します。
type conversationUsecase struct {
	rooms  ConversationRepository
	broker Broker
}

// NewConversationUsecase はconversationUsecaseの新しいインスタンスを生成します。
func NewConversationUsecase(rooms ConversationRepository, broker Broker) *conversationUsecase {
	return &conversationUsecase{
		rooms:  rooms,
		broker: broker,
	}
}

// Create はパスワードをハッシュ化して新しいルームを永続化します。
// 名前の一意性はストア参照で事前チェックし、ユニークインデックスが
// 最終的な防衛線となります。作成者は変更されません。
func (u *conversationUsecase) Create(ctx context.Context, in CreateInput) (*entity.Conversation, error) {
	// ルーム名の一意性チェック
	if _, err := u.rooms.FindByName(ctx, in.Name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, ErrConversationNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	conv := &entity.Conversation{
		Name:         in.Name,
		PasswordHash: string(hashed),
		CreatedBy:    in.CreatedBy,
	}
	if err := u.rooms.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// List はすべてのルームを返します。所有者によるフィルタリングは行いません。
func (u *conversationUsecase) List(ctx context.Context) ([]entity.Conversation, error) {
	return u.rooms.List(ctx)
}

// Enter は名前でルームを検索し、対応するトピックの購読とプレースホルダー
// メッセージの配信を行います。ブローカー操作はベストエフォートで、失敗は
// ログに残すだけで入室自体は成功させます。
func (u *conversationUsecase) Enter(ctx context.Context, name string) (*entity.Conversation, error) {
	conv, err := u.rooms.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	topic := TopicPrefix + conv.Name
	if err := u.broker.Subscribe(ctx, topic); err != nil {
		slog.Warn("broker subscribe failed", "topic", topic, "error", err)
	}
	if err := u.broker.Publish(ctx, topic, enterPayload); err != nil {
		slog.Warn("broker publish failed", "topic", topic, "error", err)
	}

	return conv, nil
}
