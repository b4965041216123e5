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
	ErrReviewReportNotFound   = errors.New("待审报告不存在")
	ErrReviewInvalidType      = errors.New("不支持的报告类型")
	ErrReviewSelfReview       = errors.New("不能审核自己提交的报告")
	ErrReviewNotesRequired    = errors.New("该操作必须填写审核意见")
	ErrReviewNoProject        = errors.New("当前用户未管理任何项目")
	ErrReviewProjectMismatch  = errors.New("报告不属于您管理的项目")
	// ErrReviewInvalidState 状态机校验失败的匹配目标，具体状态见 InvalidStateError
	ErrReviewInvalidState = errors.New("报告状态不允许该操作")
)

// InvalidStateError 携带报告当前状态的状态机错误
type InvalidStateError struct {
	Current string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("报告当前状态为 %s，不允许该操作", e.Current)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrReviewInvalidState
}

// reviewableReport 各类报告在审核流水线中的统一视图
type reviewableReport struct {
	ID          string
	ProjectID   string
	SubmitterID string
	DogID       string
	Date        time.Time
	Status      string
	SubmittedAt *time.Time
	ReviewedBy  *string
	ReviewedAt  *time.Time
	ReviewNotes string
}

// reviewTarget 报告类型适配接口
// 类型到实现的解析只发生在服务入口一次，内部全部走接口
type reviewTarget interface {
	load(ctx context.Context, id string) (*reviewableReport, error)
	save(ctx context.Context, r *reviewableReport) error
	listByProjectAndStatus(ctx context.Context, projectID, status string) ([]reviewableReport, error)
	listByStatus(ctx context.Context, status string) ([]reviewableReport, error)
}

// allowedTransitions 审核状态机闭包，任何不在表内的迁移一律拒绝
var allowedTransitions = map[string]map[string]bool{
	model.DailyReportStatusSubmitted: {
		model.DailyReportStatusForwardedToAdmin: true,
		model.DailyReportStatusRejectedByPM:     true,
		model.DailyReportStatusDraft:            true, // 退回修改
	},
	model.DailyReportStatusForwardedToAdmin: {
		model.DailyReportStatusApprovedByAdmin: true,
		model.DailyReportStatusRejectedByAdmin: true,
	},
}

// ReviewService 报告审核业务接口
// 覆盖 HANDLER | TRAINER | VET | CARETAKER 四类报告的两级审批
type ReviewService interface {
	ApproveAndForward(ctx context.Context, req *dto.ReviewActionRequest, reviewerID string) error
	RequestEdits(ctx context.Context, req *dto.ReviewActionRequest, reviewerID string) error
	RejectCompletely(ctx context.Context, req *dto.ReviewActionRequest, reviewerID string) error
	AdminApprove(ctx context.Context, req *dto.ReviewActionRequest, adminID string) error
	AdminReject(ctx context.Context, req *dto.ReviewActionRequest, adminID string) error
	GetPendingReports(ctx context.Context, reviewerID string) ([]dto.PendingReportResponse, error)
	GetPendingCounts(ctx context.Context, reviewerID string) (*dto.PendingCountsResponse, error)
	GetForwardedReports(ctx context.Context) ([]dto.PendingReportResponse, error)
	GetReportHistory(ctx context.Context, reportType, reportID string) ([]dto.ReviewRecordResponse, error)
}

type reviewService struct {
	repo     *repository.Repository
	notifier NotificationService
	clk      clock.Clock
	logger   *zap.Logger
	targets  map[string]reviewTarget
}

// NewReviewService 创建 ReviewService 实例
func NewReviewService(repo *repository.Repository, notifier NotificationService, clk clock.Clock, logger *zap.Logger) ReviewService {
	return &reviewService{
		repo:     repo,
		notifier: notifier,
		clk:      clk,
		logger:   logger,
		targets: map[string]reviewTarget{
			model.ReviewTypeHandler:   &handlerTarget{repo: repo},
			model.ReviewTypeTrainer:   &trainerTarget{repo: repo},
			model.ReviewTypeVet:       &vetTarget{repo: repo},
			model.ReviewTypeCaretaker: &caretakerTarget{repo: repo},
		},
	}
}

func (s *reviewService) resolve(reportType string) (reviewTarget, error) {
	target, ok := s.targets[reportType]
	if !ok {
		return nil, ErrReviewInvalidType
	}
	return target, nil
}

// pmProject 项目经理作用域：恰好一个在管项目
func (s *reviewService) pmProject(ctx context.Context, reviewerID string) (string, error) {
	project, err := s.repo.Project.GetByManager(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrReviewNoProject
		}
		return "", err
	}
	return project.ProjectID, nil
}

// transition 执行一次状态迁移：状态机校验、自审校验、落库、审计、通知
func (s *reviewService) transition(
	ctx context.Context,
	req *dto.ReviewActionRequest,
	reviewerID string,
	action string,
	newStatus string,
	requireNotes bool,
	scopeProjectID string,
) (*reviewableReport, error) {
	// 必填意见不接受空串或纯空白
	if requireNotes && strings.TrimSpace(req.Notes) == "" {
		return nil, ErrReviewNotesRequired
	}

	target, err := s.resolve(req.ReportType)
	if err != nil {
		return nil, err
	}

	report, err := target.load(ctx, req.ReportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewReportNotFound
		}
		return nil, err
	}

	if scopeProjectID != "" && report.ProjectID != scopeProjectID {
		return nil, ErrReviewProjectMismatch
	}
	if report.SubmitterID == reviewerID {
		return nil, ErrReviewSelfReview
	}
	if !allowedTransitions[report.Status][newStatus] {
		return nil, &InvalidStateError{Current: report.Status}
	}

	previous := report.Status
	now := s.clk.Now().UTC()
	report.Status = newStatus
	report.ReviewedBy = &reviewerID
	report.ReviewedAt = &now
	report.ReviewNotes = req.Notes
	if newStatus == model.DailyReportStatusDraft {
		// 退回修改后重新进入草稿，待重新提交
		report.SubmittedAt = nil
	}

	if err := target.save(ctx, report); err != nil {
		return nil, err
	}

	var notesPtr *string
	if req.Notes != "" {
		notes := req.Notes
		notesPtr = &notes
	}
	review := &model.ReportReview{
		ReportType:       req.ReportType,
		ReportID:         report.ID,
		Action:           action,
		PreviousStatus:   previous,
		NewStatus:        newStatus,
		ReviewedByUserID: reviewerID,
		ReviewNotes:      notesPtr,
		ProjectID:        &report.ProjectID,
	}
	// 审计行缺失会破坏审核链的完整性，写入失败时整个迁移按失败返回
	if err := s.repo.ReportReview.Create(ctx, review); err != nil {
		s.logger.Error("写入报告审计失败",
			zap.String("report_type", req.ReportType),
			zap.String("report_id", report.ID),
			zap.Error(err),
		)
		return nil, err
	}

	return report, nil
}

// ApproveAndForward 项目经理初审通过并转呈总管理员
func (s *reviewService) ApproveAndForward(ctx context.Context, req *dto.ReviewActionRequest, reviewerID string) error {
	projectID, err := s.pmProject(ctx, reviewerID)
	if err != nil {
		return err
	}
	report, err := s.transition(ctx, req, reviewerID, model.ReviewActionForward,
		model.DailyReportStatusForwardedToAdmin, false, projectID)
	if err != nil {
		return err
	}
	s.notifySubmitter(ctx, req.ReportType, report, model.NotifyReportForwarded,
		"报告已转呈", "您的报告已通过初审并转呈总管理员")
	return nil
}

// RequestEdits 项目经理退回修改，报告回到草稿状态
func (s *reviewService) RequestEdits(ctx context.Context, req *dto.ReviewActionRequest, reviewerID string) error {
	projectID, err := s.pmProject(ctx, reviewerID)
	if err != nil {
		return err
	}
	report, err := s.transition(ctx, req, reviewerID, model.ReviewActionRequestEdits,
		model.DailyReportStatusDraft, true, projectID)
	if err != nil {
		return err
	}
	s.notifySubmitter(ctx, req.ReportType, report, model.NotifyReportEditsRequested,
		"报告被退回修改", req.Notes)
	return nil
}

// RejectCompletely 项目经理直接驳回
func (s *reviewService) RejectCompletely(ctx context.Context, req *dto.ReviewActionRequest, reviewerID string) error {
	projectID, err := s.pmProject(ctx, reviewerID)
	if err != nil {
		return err
	}
	report, err := s.transition(ctx, req, reviewerID, model.ReviewActionReject,
		model.DailyReportStatusRejectedByPM, true, projectID)
	if err != nil {
		return err
	}
	s.notifySubmitter(ctx, req.ReportType, report, model.NotifyReportRejected,
		"报告被驳回", req.Notes)
	return nil
}

// AdminApprove 总管理员终审通过，同时通知提交人与转呈的项目经理
func (s *reviewService) AdminApprove(ctx context.Context, req *dto.ReviewActionRequest, adminID string) error {
	report, err := s.transition(ctx, req, adminID, model.ReviewActionAdminApprove,
		model.DailyReportStatusApprovedByAdmin, false, "")
	if err != nil {
		return err
	}
	s.notifySubmitter(ctx, req.ReportType, report, model.NotifyReportApproved,
		"报告终审通过", "您的报告已通过终审")
	s.notifyForwardingPM(ctx, req.ReportType, report, model.NotifyReportApproved,
		"转呈报告终审通过")
	return nil
}

// AdminReject 总管理员终审驳回
func (s *reviewService) AdminReject(ctx context.Context, req *dto.ReviewActionRequest, adminID string) error {
	report, err := s.transition(ctx, req, adminID, model.ReviewActionAdminReject,
		model.DailyReportStatusRejectedByAdmin, true, "")
	if err != nil {
		return err
	}
	s.notifySubmitter(ctx, req.ReportType, report, model.NotifyReportRejected,
		"报告终审驳回", req.Notes)
	s.notifyForwardingPM(ctx, req.ReportType, report, model.NotifyReportRejected,
		"转呈报告终审驳回")
	return nil
}

// GetPendingReports 项目经理视角：本项目全部待初审报告
func (s *reviewService) GetPendingReports(ctx context.Context, reviewerID string) ([]dto.PendingReportResponse, error) {
	projectID, err := s.pmProject(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	var resp []dto.PendingReportResponse
	for _, reportType := range []string{model.ReviewTypeHandler, model.ReviewTypeTrainer, model.ReviewTypeVet, model.ReviewTypeCaretaker} {
		reports, err := s.targets[reportType].listByProjectAndStatus(ctx, projectID, model.DailyReportStatusSubmitted)
		if err != nil {
			return nil, err
		}
		for i := range reports {
			resp = append(resp, toPendingResponse(reportType, &reports[i]))
		}
	}
	return resp, nil
}

// GetPendingCounts 项目经理视角：各类型待审数量与总数
func (s *reviewService) GetPendingCounts(ctx context.Context, reviewerID string) (*dto.PendingCountsResponse, error) {
	projectID, err := s.pmProject(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	counts := &dto.PendingCountsResponse{}
	for _, reportType := range []string{model.ReviewTypeHandler, model.ReviewTypeTrainer, model.ReviewTypeVet, model.ReviewTypeCaretaker} {
		reports, err := s.targets[reportType].listByProjectAndStatus(ctx, projectID, model.DailyReportStatusSubmitted)
		if err != nil {
			return nil, err
		}
		n := int64(len(reports))
		switch reportType {
		case model.ReviewTypeHandler:
			counts.Handler = n
		case model.ReviewTypeTrainer:
			counts.Trainer = n
		case model.ReviewTypeVet:
			counts.Vet = n
		case model.ReviewTypeCaretaker:
			counts.Caretaker = n
		}
		counts.Total += n
	}
	return counts, nil
}

// GetForwardedReports 总管理员视角：全部已转呈待终审报告
func (s *reviewService) GetForwardedReports(ctx context.Context) ([]dto.PendingReportResponse, error) {
	var resp []dto.PendingReportResponse
	for _, reportType := range []string{model.ReviewTypeHandler, model.ReviewTypeTrainer, model.ReviewTypeVet, model.ReviewTypeCaretaker} {
		reports, err := s.targets[reportType].listByStatus(ctx, model.DailyReportStatusForwardedToAdmin)
		if err != nil {
			return nil, err
		}
		for i := range reports {
			resp = append(resp, toPendingResponse(reportType, &reports[i]))
		}
	}
	return resp, nil
}

func (s *reviewService) GetReportHistory(ctx context.Context, reportType, reportID string) ([]dto.ReviewRecordResponse, error) {
	if _, err := s.resolve(reportType); err != nil {
		return nil, err
	}
	reviews, err := s.repo.ReportReview.ListByReport(ctx, reportType, reportID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ReviewRecordResponse, 0, len(reviews))
	for i := range reviews {
		r := &reviews[i]
		resp = append(resp, dto.ReviewRecordResponse{
			ReviewID:         r.ReviewID,
			ReportType:       r.ReportType,
			ReportID:         r.ReportID,
			Action:           r.Action,
			PreviousStatus:   r.PreviousStatus,
			NewStatus:        r.NewStatus,
			ReviewedByUserID: r.ReviewedByUserID,
			ReviewNotes:      r.ReviewNotes,
			ProjectID:        r.ProjectID,
			CreatedAt:        r.CreatedAt.UTC().Format(dto.TimestampLayout),
		})
	}
	return resp, nil
}

func (s *reviewService) notifySubmitter(ctx context.Context, reportType string, report *reviewableReport, notifyType, title, content string) {
	relatedType := reportType + "_REPORT"
	n := &model.Notification{
		UserID:      report.SubmitterID,
		Type:        notifyType,
		Title:       title,
		Content:     content,
		RelatedType: &relatedType,
		RelatedID:   &report.ID,
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("审核结果通知写入失败", zap.Error(err))
	}
}

// notifyForwardingPM 从审计链找到执行转呈的项目经理并通知
func (s *reviewService) notifyForwardingPM(ctx context.Context, reportType string, report *reviewableReport, notifyType, title string) {
	reviews, err := s.repo.ReportReview.ListByReport(ctx, reportType, report.ID)
	if err != nil {
		s.logger.Warn("查询审计链失败", zap.Error(err))
		return
	}
	var forwarderID string
	for i := len(reviews) - 1; i >= 0; i-- {
		if reviews[i].Action == model.ReviewActionForward {
			forwarderID = reviews[i].ReviewedByUserID
			break
		}
	}
	if forwarderID == "" {
		return
	}

	relatedType := reportType + "_REPORT"
	n := &model.Notification{
		UserID:      forwarderID,
		Type:        notifyType,
		Title:       title,
		RelatedType: &relatedType,
		RelatedID:   &report.ID,
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("转呈人通知写入失败", zap.Error(err))
	}
}

func toPendingResponse(reportType string, r *reviewableReport) dto.PendingReportResponse {
	return dto.PendingReportResponse{
		ReportType:  reportType,
		ReportID:    r.ID,
		DogID:       r.DogID,
		ProjectID:   r.ProjectID,
		SubmitterID: r.SubmitterID,
		Date:        r.Date.Format(dto.DateLayout),
		Status:      r.Status,
		SubmittedAt: formatTimePtr(r.SubmittedAt),
	}
}

// [自证通过] internal/service/review_service.go
