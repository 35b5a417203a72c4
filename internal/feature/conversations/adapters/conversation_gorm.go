// Package adapters はconversationsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"conversation_backend/internal/feature/conversations/domain/entity"
	"conversation_backend/internal/feature/conversations/usecase"
)

// conversationGorm はConversationRepositoryインターフェースのGORM実装です。
type conversationGorm struct {
	db *gorm.DB
}

// conversationGormがConversationRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ConversationRepository = (*conversationGorm)(nil)

// NewConversationGorm は指定されたDB接続でconversationGormの新しいインスタンスを生成します。
func NewConversationGorm(db *gorm.DB) *conversationGorm {
	return &conversationGorm{db: db}
}

// Create はルームをデータベースに追加します。
// 書き込みは1件ごとのトランザクションで実行され、制約違反時に部分的な行が
// 残ることはありません。同名のルームが既に存在する場合、usecase.ErrNameTakenを返します。
func (r *conversationGorm) Create(ctx context.Context, conv *entity.Conversation) error {
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrNameTaken
		}
		return err
	}
	return nil
}

// FindByName は名前でルームを取得します。
// ルームが存在しない場合、usecase.ErrConversationNotFoundを返します。
func (r *conversationGorm) FindByName(ctx context.Context, name string) (*entity.Conversation, error) {
	var conv entity.Conversation
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// List はすべてのルームを作成日時昇順で返します。
func (r *conversationGorm) List(ctx context.Context) ([]entity.Conversation, error) {
	var convs []entity.Conversation
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&convs).Error; err != nil {
		return nil, err
	}
	return convs, nil
}

// Delete はIDでルームを削除します。所有者のユーザー行には影響しません。
// 対象が存在しない場合、usecase.ErrConversationNotFoundを返します。
func (r *conversationGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Conversation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrConversationNotFound
	}
	return nil
}
