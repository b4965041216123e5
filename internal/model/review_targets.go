package model

import "time"

// 训练师/兽医/饲养员报告与日报走同一套审核流水线，
// 状态集合与 HandlerReport 一致（DRAFT → SUBMITTED → ...）

// TrainerReport 训练师报告
type TrainerReport struct {
	ReportID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"report_id"`
	DogID       string     `gorm:"type:uuid;index;not null" json:"dog_id"`
	ProjectID   string     `gorm:"type:uuid;index;not null" json:"project_id"`
	SubmitterID string     `gorm:"type:uuid;index;not null" json:"submitter_id"`
	Date        time.Time  `gorm:"type:date;index;not null" json:"date"`
	Status      string     `gorm:"type:varchar(32);not null;default:'DRAFT'" json:"status"`
	Summary     string     `gorm:"type:text" json:"summary,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ReviewedBy  *string    `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes string     `gorm:"type:text" json:"review_notes,omitempty"`

	BaseModel
}

func (TrainerReport) TableName() string { return "trainer_reports" }

// VetReport 兽医报告
type VetReport struct {
	ReportID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"report_id"`
	DogID       string     `gorm:"type:uuid;index;not null" json:"dog_id"`
	ProjectID   string     `gorm:"type:uuid;index;not null" json:"project_id"`
	SubmitterID string     `gorm:"type:uuid;index;not null" json:"submitter_id"`
	Date        time.Time  `gorm:"type:date;index;not null" json:"date"`
	Status      string     `gorm:"type:varchar(32);not null;default:'DRAFT'" json:"status"`
	Diagnosis   string     `gorm:"type:text" json:"diagnosis,omitempty"`
	Treatment   string     `gorm:"type:text" json:"treatment,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ReviewedBy  *string    `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes string     `gorm:"type:text" json:"review_notes,omitempty"`

	BaseModel
}

func (VetReport) TableName() string { return "vet_reports" }

// CaretakerReport 饲养员报告
type CaretakerReport struct {
	ReportID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"report_id"`
	DogID       string     `gorm:"type:uuid;index;not null" json:"dog_id"`
	ProjectID   string     `gorm:"type:uuid;index;not null" json:"project_id"`
	SubmitterID string     `gorm:"type:uuid;index;not null" json:"submitter_id"`
	Date        time.Time  `gorm:"type:date;index;not null" json:"date"`
	Status      string     `gorm:"type:varchar(32);not null;default:'DRAFT'" json:"status"`
	Summary     string     `gorm:"type:text" json:"summary,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ReviewedBy  *string    `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes string     `gorm:"type:text" json:"review_notes,omitempty"`

	BaseModel
}

func (CaretakerReport) TableName() string { return "caretaker_reports" }

// [自证通过] internal/model/review_targets.go
