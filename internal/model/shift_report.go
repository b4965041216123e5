package model

import "time"

// 班次报告状态
const (
	ShiftReportStatusDraft     = "DRAFT"
	ShiftReportStatusSubmitted = "SUBMITTED"
	ShiftReportStatusApproved  = "APPROVED"
	ShiftReportStatusRejected  = "REJECTED"
)

// ShiftReport 班次报告：一个排班项对应最多一份（schedule_item_id 唯一索引）
type ShiftReport struct {
	ShiftReportID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_report_id"`
	ScheduleItemID string     `gorm:"type:uuid;uniqueIndex;not null" json:"schedule_item_id"`
	HandlerID      string     `gorm:"type:uuid;index;not null" json:"handler_id"`
	DogID          string     `gorm:"type:uuid;index;not null" json:"dog_id"`
	ProjectID      string     `gorm:"type:uuid;index;not null" json:"project_id"`
	ShiftID        string     `gorm:"type:uuid;index;not null" json:"shift_id"`
	Date           time.Time  `gorm:"type:date;index;not null" json:"date"`
	Status         string     `gorm:"type:varchar(16);not null;default:'DRAFT'" json:"status"`
	Summary        string     `gorm:"type:text" json:"summary,omitempty"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
	ReviewedBy     *string    `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes    string     `gorm:"type:text" json:"review_notes,omitempty"`

	Health    *ReportHealth    `gorm:"polymorphic:Owner;polymorphicValue:SHIFT" json:"health,omitempty"`
	Behavior  *ReportBehavior  `gorm:"polymorphic:Owner;polymorphicValue:SHIFT" json:"behavior,omitempty"`
	Incidents []ReportIncident `gorm:"polymorphic:Owner;polymorphicValue:SHIFT" json:"incidents,omitempty"`

	BaseModel
}

func (ShiftReport) TableName() string { return "shift_reports" }

// ReportHealth 犬只健康分部位检查记录
// 班次报告与日报共用（OwnerType = SHIFT | DAILY）
type ReportHealth struct {
	HealthID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"health_id"`
	OwnerID   string `gorm:"type:uuid;index:idx_report_health_owner;not null" json:"owner_id"`
	OwnerType string `gorm:"type:varchar(16);index:idx_report_health_owner;not null" json:"owner_type"`

	EyesStatus     string `gorm:"type:varchar(16)" json:"eyes_status,omitempty"`
	EyesNotes      string `gorm:"type:text" json:"eyes_notes,omitempty"`
	EarsStatus     string `gorm:"type:varchar(16)" json:"ears_status,omitempty"`
	EarsNotes      string `gorm:"type:text" json:"ears_notes,omitempty"`
	NoseStatus     string `gorm:"type:varchar(16)" json:"nose_status,omitempty"`
	NoseNotes      string `gorm:"type:text" json:"nose_notes,omitempty"`
	CoatStatus     string `gorm:"type:varchar(16)" json:"coat_status,omitempty"`
	CoatNotes      string `gorm:"type:text" json:"coat_notes,omitempty"`
	PawsStatus     string `gorm:"type:varchar(16)" json:"paws_status,omitempty"`
	PawsNotes      string `gorm:"type:text" json:"paws_notes,omitempty"`
	AppetiteStatus string `gorm:"type:varchar(16)" json:"appetite_status,omitempty"`
	AppetiteNotes  string `gorm:"type:text" json:"appetite_notes,omitempty"`
	GeneralNotes   string `gorm:"type:text" json:"general_notes,omitempty"`

	BaseModel
}

func (ReportHealth) TableName() string { return "report_healths" }

// ReportBehavior 犬只行为观察记录
type ReportBehavior struct {
	BehaviorID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"behavior_id"`
	OwnerID    string `gorm:"type:uuid;index:idx_report_behavior_owner;not null" json:"owner_id"`
	OwnerType  string `gorm:"type:varchar(16);index:idx_report_behavior_owner;not null" json:"owner_type"`

	Mood            string `gorm:"type:varchar(32)" json:"mood,omitempty"`
	AggressionSigns bool   `gorm:"not null;default:false" json:"aggression_signs"`
	AnxietySigns    bool   `gorm:"not null;default:false" json:"anxiety_signs"`
	Notes           string `gorm:"type:text" json:"notes,omitempty"`

	BaseModel
}

func (ReportBehavior) TableName() string { return "report_behaviors" }

// ReportIncident 事件记录
type ReportIncident struct {
	IncidentID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"incident_id"`
	OwnerID    string     `gorm:"type:uuid;index:idx_report_incident_owner;not null" json:"owner_id"`
	OwnerType  string     `gorm:"type:varchar(16);index:idx_report_incident_owner;not null" json:"owner_type"`

	IncidentType string     `gorm:"type:varchar(32);not null" json:"incident_type"`
	Severity     string     `gorm:"type:varchar(16)" json:"severity,omitempty"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	OccurredAt   *time.Time `json:"occurred_at,omitempty"`

	Attachments []Attachment `gorm:"foreignKey:IncidentID" json:"attachments,omitempty"`

	BaseModel
}

func (ReportIncident) TableName() string { return "report_incidents" }

// [自证通过] internal/model/shift_report.go
