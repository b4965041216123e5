package model

import "time"

// 日报类型（当前仅 DAILY；唯一索引含类型以便扩展周报等）
const (
	ReportTypeDaily = "DAILY"
)

// 日报状态
const (
	DailyReportStatusDraft            = "DRAFT"
	DailyReportStatusSubmitted        = "SUBMITTED"
	DailyReportStatusForwardedToAdmin = "FORWARDED_TO_ADMIN"
	DailyReportStatusRejectedByPM     = "REJECTED_BY_PM"
	DailyReportStatusApprovedByAdmin  = "APPROVED_BY_ADMIN"
	DailyReportStatusRejectedByAdmin  = "REJECTED_BY_ADMIN"
)

// HandlerReport 训导员日报
// 每犬每天最多一份（dog_id + date + report_type 唯一索引）
type HandlerReport struct {
	ReportID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"report_id"`
	ReportType  string     `gorm:"type:varchar(16);not null;default:'DAILY';uniqueIndex:uidx_handler_report_dog_date" json:"report_type"`
	DogID       string     `gorm:"type:uuid;not null;uniqueIndex:uidx_handler_report_dog_date" json:"dog_id"`
	Date        time.Time  `gorm:"type:date;not null;uniqueIndex:uidx_handler_report_dog_date" json:"date"`
	HandlerID   string     `gorm:"type:uuid;index;not null" json:"handler_id"`
	ProjectID   string     `gorm:"type:uuid;index;not null" json:"project_id"`
	Status      string     `gorm:"type:varchar(32);not null;default:'DRAFT'" json:"status"`
	Summary     string     `gorm:"type:text" json:"summary,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ReviewedBy  *string    `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes string     `gorm:"type:text" json:"review_notes,omitempty"`

	Health           *ReportHealth     `gorm:"polymorphic:Owner;polymorphicValue:DAILY" json:"health,omitempty"`
	Behavior         *ReportBehavior   `gorm:"polymorphic:Owner;polymorphicValue:DAILY" json:"behavior,omitempty"`
	Incidents        []ReportIncident  `gorm:"polymorphic:Owner;polymorphicValue:DAILY" json:"incidents,omitempty"`
	Care             *ReportCare       `gorm:"foreignKey:ReportID" json:"care,omitempty"`
	TrainingSessions []TrainingSession `gorm:"foreignKey:ReportID" json:"training_sessions,omitempty"`

	BaseModel
}

func (HandlerReport) TableName() string { return "handler_reports" }

// ReportCare 日常护理记录（仅日报）
type ReportCare struct {
	CareID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"care_id"`
	ReportID string `gorm:"type:uuid;uniqueIndex;not null" json:"report_id"`

	FoodAmountKG    *float64 `json:"food_amount_kg,omitempty"`
	WaterNormal     bool     `gorm:"not null;default:true" json:"water_normal"`
	GroomingDone    bool     `gorm:"not null;default:false" json:"grooming_done"`
	ExerciseMinutes *int     `json:"exercise_minutes,omitempty"`
	Notes           string   `gorm:"type:text" json:"notes,omitempty"`

	BaseModel
}

func (ReportCare) TableName() string { return "report_cares" }

// TrainingSession 训练记录（仅日报）
type TrainingSession struct {
	SessionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	ReportID  string `gorm:"type:uuid;index;not null" json:"report_id"`

	TrainingType    string `gorm:"type:varchar(64);not null" json:"training_type"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	Performance     string `gorm:"type:varchar(16)" json:"performance,omitempty"`
	Notes           string `gorm:"type:text" json:"notes,omitempty"`

	BaseModel
}

func (TrainingSession) TableName() string { return "training_sessions" }

// [自证通过] internal/model/handler_report.go
