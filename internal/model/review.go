package model

import "time"

// 审核报告类型
const (
	ReviewTypeHandler   = "HANDLER"
	ReviewTypeTrainer   = "TRAINER"
	ReviewTypeVet       = "VET"
	ReviewTypeCaretaker = "CARETAKER"
)

// 审核动作
const (
	ReviewActionSubmit       = "SUBMIT"
	ReviewActionApprove      = "APPROVE"
	ReviewActionForward      = "APPROVE_AND_FORWARD"
	ReviewActionRequestEdits = "REQUEST_EDITS"
	ReviewActionReject       = "REJECT"
	ReviewActionAdminApprove = "ADMIN_APPROVE"
	ReviewActionAdminReject  = "ADMIN_REJECT"
)

// ReportReview 报告审核审计记录，仅追加，不更新不删除
// 每次成功的状态迁移恰好写入一行
type ReportReview struct {
	ReviewID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"review_id"`
	ReportType       string    `gorm:"type:varchar(16);index:idx_report_reviews_report;not null" json:"report_type"`
	ReportID         string    `gorm:"type:uuid;index:idx_report_reviews_report;not null" json:"report_id"`
	Action           string    `gorm:"type:varchar(32);not null" json:"action"`
	PreviousStatus   string    `gorm:"type:varchar(32);not null" json:"previous_status"`
	NewStatus        string    `gorm:"type:varchar(32);not null" json:"new_status"`
	ReviewedByUserID string    `gorm:"type:uuid;index;not null" json:"reviewed_by_user_id"`
	ReviewNotes      *string   `gorm:"type:text" json:"review_notes,omitempty"`
	ProjectID        *string   `gorm:"type:uuid;index" json:"project_id,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ReportReview) TableName() string { return "report_reviews" }

// [自证通过] internal/model/review.go
