package dto

// HealthSection 犬只健康分部位记录
type HealthSection struct {
	EyesStatus     string `json:"eyes_status,omitempty"`
	EyesNotes      string `json:"eyes_notes,omitempty"`
	EarsStatus     string `json:"ears_status,omitempty"`
	EarsNotes      string `json:"ears_notes,omitempty"`
	NoseStatus     string `json:"nose_status,omitempty"`
	NoseNotes      string `json:"nose_notes,omitempty"`
	CoatStatus     string `json:"coat_status,omitempty"`
	CoatNotes      string `json:"coat_notes,omitempty"`
	PawsStatus     string `json:"paws_status,omitempty"`
	PawsNotes      string `json:"paws_notes,omitempty"`
	AppetiteStatus string `json:"appetite_status,omitempty"`
	AppetiteNotes  string `json:"appetite_notes,omitempty"`
	GeneralNotes   string `json:"general_notes,omitempty"`
}

// BehaviorSection 犬只行为记录
type BehaviorSection struct {
	Mood            string `json:"mood,omitempty"`
	AggressionSigns bool   `json:"aggression_signs"`
	AnxietySigns    bool   `json:"anxiety_signs"`
	Notes           string `json:"notes,omitempty"`
}

// CareSection 日常护理记录
type CareSection struct {
	FoodAmountKG    *float64 `json:"food_amount_kg,omitempty"`
	WaterNormal     bool     `json:"water_normal"`
	GroomingDone    bool     `json:"grooming_done"`
	ExerciseMinutes *int     `json:"exercise_minutes,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// TrainingSection 训练记录
type TrainingSection struct {
	TrainingType    string `json:"training_type" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	Performance     string `json:"performance,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// IncidentSection 事件记录
type IncidentSection struct {
	IncidentType string `json:"incident_type" binding:"required"`
	Severity     string `json:"severity,omitempty"`
	Description  string `json:"description" binding:"required"`
	OccurredAt   string `json:"occurred_at,omitempty"`
}

// ReportGateResponse 报告创建窗口校验结果
type ReportGateResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// ── 班次报告 ──

// CreateShiftReportRequest 创建班次报告请求
type CreateShiftReportRequest struct {
	ScheduleItemID string            `json:"schedule_item_id" binding:"required,uuid"`
	Summary        string            `json:"summary"`
	Health         *HealthSection    `json:"health,omitempty"`
	Behavior       *BehaviorSection  `json:"behavior,omitempty"`
	Incidents      []IncidentSection `json:"incidents,omitempty"`
}

// UpdateShiftReportRequest 更新班次报告草稿请求
type UpdateShiftReportRequest struct {
	Summary   string            `json:"summary"`
	Health    *HealthSection    `json:"health,omitempty"`
	Behavior  *BehaviorSection  `json:"behavior,omitempty"`
	Incidents []IncidentSection `json:"incidents,omitempty"`
}

// ReviewShiftReportRequest 班次报告审核请求
type ReviewShiftReportRequest struct {
	Notes string `json:"notes"`
}

// ShiftReportResponse 班次报告响应
type ShiftReportResponse struct {
	ShiftReportID  string            `json:"shift_report_id"`
	ScheduleItemID string            `json:"schedule_item_id"`
	HandlerID      string            `json:"handler_id"`
	DogID          string            `json:"dog_id"`
	ProjectID      string            `json:"project_id"`
	ShiftID        string            `json:"shift_id"`
	Date           string            `json:"date"`
	Status         string            `json:"status"`
	Summary        string            `json:"summary,omitempty"`
	Health         *HealthSection    `json:"health,omitempty"`
	Behavior       *BehaviorSection  `json:"behavior,omitempty"`
	Incidents      []IncidentSection `json:"incidents,omitempty"`
	SubmittedAt    *string           `json:"submitted_at,omitempty"`
	ReviewedBy     *string           `json:"reviewed_by,omitempty"`
	ReviewedAt     *string           `json:"reviewed_at,omitempty"`
	ReviewNotes    string            `json:"review_notes,omitempty"`
}

// ── 训导员日报 ──

// CreateDailyReportRequest 创建日报请求
// Prepopulate 为 true 时，将当日该犬的班次报告合并预填到日报各部分
type CreateDailyReportRequest struct {
	DogID            string            `json:"dog_id" binding:"required,uuid"`
	Date             string            `json:"date" binding:"required,len=10"`
	ScheduleItemID   *string           `json:"schedule_item_id" binding:"omitempty,uuid"`
	Prepopulate      bool              `json:"prepopulate"`
	Summary          string            `json:"summary"`
	Health           *HealthSection    `json:"health,omitempty"`
	Behavior         *BehaviorSection  `json:"behavior,omitempty"`
	Care             *CareSection      `json:"care,omitempty"`
	TrainingSessions []TrainingSection `json:"training_sessions,omitempty"`
	Incidents        []IncidentSection `json:"incidents,omitempty"`
}

// UpdateDailyReportRequest 更新日报草稿请求
type UpdateDailyReportRequest struct {
	Summary          string            `json:"summary"`
	Health           *HealthSection    `json:"health,omitempty"`
	Behavior         *BehaviorSection  `json:"behavior,omitempty"`
	Care             *CareSection      `json:"care,omitempty"`
	TrainingSessions []TrainingSection `json:"training_sessions,omitempty"`
	Incidents        []IncidentSection `json:"incidents,omitempty"`
}

// DailyReportResponse 日报响应
type DailyReportResponse struct {
	ReportID         string            `json:"report_id"`
	ReportType       string            `json:"report_type"`
	DogID            string            `json:"dog_id"`
	Date             string            `json:"date"`
	HandlerID        string            `json:"handler_id"`
	ProjectID        string            `json:"project_id"`
	Status           string            `json:"status"`
	Summary          string            `json:"summary,omitempty"`
	Health           *HealthSection    `json:"health,omitempty"`
	Behavior         *BehaviorSection  `json:"behavior,omitempty"`
	Care             *CareSection      `json:"care,omitempty"`
	TrainingSessions []TrainingSection `json:"training_sessions,omitempty"`
	Incidents        []IncidentSection `json:"incidents,omitempty"`
	SubmittedAt      *string           `json:"submitted_at,omitempty"`
	ReviewedBy       *string           `json:"reviewed_by,omitempty"`
	ReviewedAt       *string           `json:"reviewed_at,omitempty"`
	ReviewNotes      string            `json:"review_notes,omitempty"`
}

// ── 专项报告（训练师/兽医/饲养员） ──

// CreateSpecialistReportRequest 创建专项报告请求
// Diagnosis/Treatment 仅兽医报告使用，Summary 供训练师与饲养员报告使用
type CreateSpecialistReportRequest struct {
	ReportType string `json:"report_type" binding:"required,oneof=TRAINER VET CARETAKER"`
	DogID      string `json:"dog_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required,len=10"`
	Summary    string `json:"summary"`
	Diagnosis  string `json:"diagnosis"`
	Treatment  string `json:"treatment"`
}

// SpecialistReportResponse 专项报告响应
type SpecialistReportResponse struct {
	ReportID    string  `json:"report_id"`
	ReportType  string  `json:"report_type"`
	DogID       string  `json:"dog_id"`
	ProjectID   string  `json:"project_id"`
	SubmitterID string  `json:"submitter_id"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	Summary     string  `json:"summary,omitempty"`
	Diagnosis   string  `json:"diagnosis,omitempty"`
	Treatment   string  `json:"treatment,omitempty"`
	SubmittedAt *string `json:"submitted_at,omitempty"`
	ReviewedBy  *string `json:"reviewed_by,omitempty"`
	ReviewedAt  *string `json:"reviewed_at,omitempty"`
	ReviewNotes string  `json:"review_notes,omitempty"`
}

// ── 附件 ──

// AttachmentResponse 附件元数据响应
type AttachmentResponse struct {
	AttachmentID string  `json:"attachment_id"`
	ReportType   string  `json:"report_type"`
	ReportID     string  `json:"report_id"`
	IncidentID   *string `json:"incident_id,omitempty"`
	FileName     string  `json:"file_name"`
	OriginalName string  `json:"original_name"`
	FileType     string  `json:"file_type"`
	FileSize     int64   `json:"file_size"`
	SHA256       string  `json:"sha256"`
	Description  string  `json:"description,omitempty"`
}

// [自证通过] internal/dto/report.go
