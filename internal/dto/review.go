package dto

// ReviewActionRequest 审核动作请求
// RequestEdits / Reject 系列动作的 Notes 为必填（服务层校验并给出业务错误）
type ReviewActionRequest struct {
	ReportType string `json:"report_type" binding:"required,oneof=HANDLER TRAINER VET CARETAKER"`
	ReportID   string `json:"report_id" binding:"required,uuid"`
	Notes      string `json:"notes"`
}

// PendingReportResponse 待审报告条目
type PendingReportResponse struct {
	ReportType  string  `json:"report_type"`
	ReportID    string  `json:"report_id"`
	DogID       string  `json:"dog_id"`
	ProjectID   string  `json:"project_id"`
	SubmitterID string  `json:"submitter_id"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	SubmittedAt *string `json:"submitted_at,omitempty"`
}

// PendingCountsResponse 各类型待审数量
type PendingCountsResponse struct {
	Handler   int64 `json:"HANDLER"`
	Trainer   int64 `json:"TRAINER"`
	Vet       int64 `json:"VET"`
	Caretaker int64 `json:"CARETAKER"`
	Total     int64 `json:"TOTAL"`
}

// ReviewRecordResponse 审核审计记录
type ReviewRecordResponse struct {
	ReviewID         string  `json:"review_id"`
	ReportType       string  `json:"report_type"`
	ReportID         string  `json:"report_id"`
	Action           string  `json:"action"`
	PreviousStatus   string  `json:"previous_status"`
	NewStatus        string  `json:"new_status"`
	ReviewedByUserID string  `json:"reviewed_by_user_id"`
	ReviewNotes      *string `json:"review_notes,omitempty"`
	ProjectID        *string `json:"project_id,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// [自证通过] internal/dto/review.go
