package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/wyfcoding/optionpricing/pkg/db"
	"github.com/wyfcoding/optionpricing/pkg/mq"
)

const (
	statusPending = "pending"
	statusSent    = "sent"
)

// OutboxMessage Outbox 消息记录
type OutboxMessage struct {
	ID        string    `gorm:"type:varchar(36);primary_key"`
	EventID   string    `gorm:"type:varchar(36);index"`
	EventType string    `gorm:"type:varchar(100);index"`
	Key       string    `gorm:"column:message_key;type:varchar(64)"`
	Payload   string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(20);index;default:'pending'"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName 指定表名
func (OutboxMessage) TableName() string {
	return "pricing_outbox_messages"
}

// OutboxEventPublisher 实现 domain.EventPublisher，使用 Outbox 模式
// 若 context 携带事务，消息写入与业务写入处于同一事务。
type OutboxEventPublisher struct {
	db *gorm.DB
}

// NewOutboxEventPublisher 创建 OutboxEventPublisher 实例
func NewOutboxEventPublisher(db *gorm.DB) *OutboxEventPublisher {
	return &OutboxEventPublisher{db: db}
}

// Publish 将事件序列化后写入 Outbox 表
func (p *OutboxEventPublisher) Publish(ctx context.Context, eventType, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	message := OutboxMessage{
		ID:        uuid.NewString(),
		EventID:   uuid.NewString(),
		EventType: eventType,
		Key:       key,
		Payload:   string(payload),
		Status:    statusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return p.getDB(ctx).WithContext(ctx).Create(&message).Error
}

func (p *OutboxEventPublisher) getDB(ctx context.Context) *gorm.DB {
	if tx := pkgdb.TxFromContext(ctx); tx != nil {
		return tx
	}
	return p.db
}

// OutboxRelay 轮询 Outbox 并投递到 Kafka
type OutboxRelay struct {
	db        *gorm.DB
	producer  *mq.Producer
	topic     string
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

// NewOutboxRelay 创建 Outbox 投递器
func NewOutboxRelay(db *gorm.DB, producer *mq.Producer, topic string, interval time.Duration, batchSize int, logger *slog.Logger) *OutboxRelay {
	if batchSize <= 0 {
		batchSize = 100
	}
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &OutboxRelay{
		db:        db,
		producer:  producer,
		topic:     topic,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run 周期性投递待处理消息，直到 context 取消
func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.dispatchPending(ctx); err != nil {
				r.logger.ErrorContext(ctx, "outbox dispatch failed", "error", err)
			}
		}
	}
}

// dispatchPending 投递一批待处理消息，失败的消息保持 pending 等待重试
func (r *OutboxRelay) dispatchPending(ctx context.Context) error {
	var messages []OutboxMessage
	if err := r.db.WithContext(ctx).
		Where("status = ?", statusPending).
		Order("created_at").
		Limit(r.batchSize).
		Find(&messages).Error; err != nil {
		return err
	}

	for i := range messages {
		msg := &messages[i]
		if err := r.producer.SendRaw(ctx, r.topic, msg.Key, []byte(msg.Payload)); err != nil {
			r.logger.WarnContext(ctx, "failed to relay outbox message",
				"id", msg.ID, "event_type", msg.EventType, "error", err)
			continue
		}
		if err := r.db.WithContext(ctx).Model(msg).Update("status", statusSent).Error; err != nil {
			return err
		}
	}
	return nil
}

// CleanupSent 清理已投递且早于 before 的消息
func (r *OutboxRelay) CleanupSent(ctx context.Context, before time.Time) error {
	return r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", statusSent, before).
		Delete(&OutboxMessage{}).Error
}
