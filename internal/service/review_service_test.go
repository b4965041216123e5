package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"k9ops/backend/internal/dto"
	"k9ops/backend/internal/model"
	"k9ops/backend/pkg/clock"
)

func setupTestReviewService() (ReviewService, *mockRepos) {
	m := newMockRepos()
	notifier := NewNotificationService(m.repo, nil, zap.NewNop())
	svc := NewReviewService(m.repo, notifier, clock.Fixed{T: testNow}, zap.NewNop())
	return svc, m
}

// seedSubmittedDaily 造一份 project-001 下已提交的日报
func seedSubmittedDaily(m *mockRepos, id string) *model.HandlerReport {
	submittedAt := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	report := &model.HandlerReport{
		ReportID:    id,
		ReportType:  model.ReportTypeDaily,
		DogID:       "dog-001",
		Date:        time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		HandlerID:   "handler-001",
		ProjectID:   "project-001",
		Status:      model.DailyReportStatusSubmitted,
		SubmittedAt: &submittedAt,
	}
	m.handlerReport.reports[id] = report
	m.handlerReport.order = append(m.handlerReport.order, id)
	return report
}

func handlerAction(id string) *dto.ReviewActionRequest {
	return &dto.ReviewActionRequest{ReportType: model.ReviewTypeHandler, ReportID: id}
}

// ── 初审测试 ──

func TestReviewService_ApproveAndForward_Success(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	report := seedSubmittedDaily(m, "dreport-001")

	if err := svc.ApproveAndForward(context.Background(), handlerAction("dreport-001"), "pm-001"); err != nil {
		t.Fatalf("ApproveAndForward 应成功: %v", err)
	}
	if report.Status != model.DailyReportStatusForwardedToAdmin {
		t.Errorf("期望状态FORWARDED_TO_ADMIN，实际=%s", report.Status)
	}
	if report.ReviewedBy == nil || *report.ReviewedBy != "pm-001" {
		t.Errorf("ReviewedBy 应为pm-001，实际=%v", report.ReviewedBy)
	}

	reviews, _ := m.review.ListByReport(context.Background(), model.ReviewTypeHandler, "dreport-001")
	if len(reviews) != 1 {
		t.Fatalf("期望1条审计，实际=%d", len(reviews))
	}
	if reviews[0].Action != model.ReviewActionForward ||
		reviews[0].PreviousStatus != model.DailyReportStatusSubmitted ||
		reviews[0].NewStatus != model.DailyReportStatusForwardedToAdmin {
		t.Errorf("审计内容不正确: %+v", reviews[0])
	}

	ns := m.notification.forUser("handler-001")
	if len(ns) != 1 || ns[0].Type != model.NotifyReportForwarded {
		t.Errorf("期望1条转呈通知，实际: %+v", ns)
	}
}

func TestReviewService_ApproveAndForward_ProjectMismatch(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	report := seedSubmittedDaily(m, "dreport-001")
	report.ProjectID = "project-002"

	err := svc.ApproveAndForward(context.Background(), handlerAction("dreport-001"), "pm-001")
	if !errors.Is(err, ErrReviewProjectMismatch) {
		t.Errorf("期望 ErrReviewProjectMismatch，实际: %v", err)
	}
}

func TestReviewService_ApproveAndForward_NoProject(t *testing.T) {
	svc, m := setupTestReviewService()
	seedSubmittedDaily(m, "dreport-001")

	err := svc.ApproveAndForward(context.Background(), handlerAction("dreport-001"), "pm-unmanaged")
	if !errors.Is(err, ErrReviewNoProject) {
		t.Errorf("期望 ErrReviewNoProject，实际: %v", err)
	}
}

func TestReviewService_ApproveAndForward_InvalidState(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	report := seedSubmittedDaily(m, "dreport-001")
	report.Status = model.DailyReportStatusDraft

	err := svc.ApproveAndForward(context.Background(), handlerAction("dreport-001"), "pm-001")
	if !errors.Is(err, ErrReviewInvalidState) {
		t.Errorf("期望 ErrReviewInvalidState，实际: %v", err)
	}
	var stateErr *InvalidStateError
	if !errors.As(err, &stateErr) || stateErr.Current != model.DailyReportStatusDraft {
		t.Errorf("错误应携带当前状态DRAFT，实际: %v", err)
	}
}

func TestReviewService_SelfReview(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	report := seedSubmittedDaily(m, "dreport-001")
	report.HandlerID = "pm-001"

	err := svc.ApproveAndForward(context.Background(), handlerAction("dreport-001"), "pm-001")
	if !errors.Is(err, ErrReviewSelfReview) {
		t.Errorf("期望 ErrReviewSelfReview，实际: %v", err)
	}
}

func TestReviewService_RequestEdits_NotesRequired(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	seedSubmittedDaily(m, "dreport-001")

	err := svc.RequestEdits(context.Background(), handlerAction("dreport-001"), "pm-001")
	if !errors.Is(err, ErrReviewNotesRequired) {
		t.Errorf("期望 ErrReviewNotesRequired，实际: %v", err)
	}
}

func TestReviewService_RequestEdits_WhitespaceNotes(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	report := seedSubmittedDaily(m, "dreport-001")

	// 纯空白意见视同未填写，报告不得回到草稿
	req := handlerAction("dreport-001")
	req.Notes = "   \t  "
	err := svc.RequestEdits(context.Background(), req, "pm-001")
	if !errors.Is(err, ErrReviewNotesRequired) {
		t.Errorf("期望 ErrReviewNotesRequired，实际: %v", err)
	}
	if report.Status != model.DailyReportStatusSubmitted {
		t.Errorf("报告应保持SUBMITTED，实际=%s", report.Status)
	}
	if report.SubmittedAt == nil {
		t.Error("SubmittedAt 不应被清空")
	}
}

func TestReviewService_RequestEdits_BackToDraft(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	report := seedSubmittedDaily(m, "dreport-001")

	req := handlerAction("dreport-001")
	req.Notes = "训练记录缺时长"
	if err := svc.RequestEdits(context.Background(), req, "pm-001"); err != nil {
		t.Fatalf("RequestEdits 应成功: %v", err)
	}
	if report.Status != model.DailyReportStatusDraft {
		t.Errorf("期望退回DRAFT，实际=%s", report.Status)
	}
	if report.SubmittedAt != nil {
		t.Error("退回修改后 SubmittedAt 应清空")
	}

	ns := m.notification.forUser("handler-001")
	if len(ns) != 1 || ns[0].Type != model.NotifyReportEditsRequested {
		t.Errorf("期望1条退回通知，实际: %+v", ns)
	}
}

func TestReviewService_RejectCompletely_Success(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	report := seedSubmittedDaily(m, "dreport-001")

	req := handlerAction("dreport-001")
	req.Notes = "内容与排班不符"
	if err := svc.RejectCompletely(context.Background(), req, "pm-001"); err != nil {
		t.Fatalf("RejectCompletely 应成功: %v", err)
	}
	if report.Status != model.DailyReportStatusRejectedByPM {
		t.Errorf("期望状态REJECTED_BY_PM，实际=%s", report.Status)
	}
}

func TestReviewService_AuditWriteFailure_FailsTransition(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	seedSubmittedDaily(m, "dreport-001")

	// 审计行写不进去时整个审核动作按失败返回
	auditErr := errors.New("数据库连接中断")
	m.review.createErr = auditErr

	err := svc.ApproveAndForward(context.Background(), handlerAction("dreport-001"), "pm-001")
	if !errors.Is(err, auditErr) {
		t.Errorf("期望透传审计写入错误，实际: %v", err)
	}
}

// ── 终审测试 ──

func TestReviewService_AdminApprove_NotifiesForwardingPM(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	report := seedSubmittedDaily(m, "dreport-001")

	// 完整走两级流程，确保审计链里有转呈记录
	if err := svc.ApproveAndForward(context.Background(), handlerAction("dreport-001"), "pm-001"); err != nil {
		t.Fatalf("ApproveAndForward 应成功: %v", err)
	}
	if err := svc.AdminApprove(context.Background(), handlerAction("dreport-001"), "admin-001"); err != nil {
		t.Fatalf("AdminApprove 应成功: %v", err)
	}
	if report.Status != model.DailyReportStatusApprovedByAdmin {
		t.Errorf("期望状态APPROVED_BY_ADMIN，实际=%s", report.Status)
	}

	// 提交人：转呈 + 终审通过两条
	if n := len(m.notification.forUser("handler-001")); n != 2 {
		t.Errorf("期望提交人收到2条通知，实际=%d", n)
	}
	// 转呈的项目经理收到终审结果
	ns := m.notification.forUser("pm-001")
	if len(ns) != 1 || ns[0].Type != model.NotifyReportApproved {
		t.Errorf("期望转呈人收到1条终审通过通知，实际: %+v", ns)
	}

	reviews, _ := m.review.ListByReport(context.Background(), model.ReviewTypeHandler, "dreport-001")
	if len(reviews) != 2 {
		t.Fatalf("期望2条审计（转呈+终审），实际=%d", len(reviews))
	}
	if reviews[1].Action != model.ReviewActionAdminApprove ||
		reviews[1].PreviousStatus != model.DailyReportStatusForwardedToAdmin {
		t.Errorf("终审审计不正确: %+v", reviews[1])
	}
}

func TestReviewService_AdminApprove_InvalidFromSubmitted(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	seedSubmittedDaily(m, "dreport-001")

	// 未经转呈不能直接终审
	err := svc.AdminApprove(context.Background(), handlerAction("dreport-001"), "admin-001")
	if !errors.Is(err, ErrReviewInvalidState) {
		t.Errorf("期望 ErrReviewInvalidState，实际: %v", err)
	}
}

func TestReviewService_AdminReject_NotesRequired(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	report := seedSubmittedDaily(m, "dreport-001")
	report.Status = model.DailyReportStatusForwardedToAdmin

	err := svc.AdminReject(context.Background(), handlerAction("dreport-001"), "admin-001")
	if !errors.Is(err, ErrReviewNotesRequired) {
		t.Errorf("期望 ErrReviewNotesRequired，实际: %v", err)
	}
}

func TestReviewService_AdminReject_Success(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	report := seedSubmittedDaily(m, "dreport-001")
	report.Status = model.DailyReportStatusForwardedToAdmin

	req := handlerAction("dreport-001")
	req.Notes = "证据不足"
	if err := svc.AdminReject(context.Background(), req, "admin-001"); err != nil {
		t.Fatalf("AdminReject 应成功: %v", err)
	}
	if report.Status != model.DailyReportStatusRejectedByAdmin {
		t.Errorf("期望状态REJECTED_BY_ADMIN，实际=%s", report.Status)
	}
}

func TestReviewService_InvalidReportType(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)

	req := &dto.ReviewActionRequest{ReportType: "SHIFT", ReportID: "whatever"}
	err := svc.ApproveAndForward(context.Background(), req, "pm-001")
	if !errors.Is(err, ErrReviewInvalidType) {
		t.Errorf("期望 ErrReviewInvalidType，实际: %v", err)
	}
}

// ── 训练师报告走同一流水线 ──

func TestReviewService_TrainerReport_Forward(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	submittedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	report := &model.TrainerReport{
		ReportID:    "treport-001",
		DogID:       "dog-001",
		ProjectID:   "project-001",
		SubmitterID: "trainer-001",
		Date:        time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:      model.DailyReportStatusSubmitted,
		SubmittedAt: &submittedAt,
	}
	m.trainerReport.reports["treport-001"] = report
	m.trainerReport.order = append(m.trainerReport.order, "treport-001")

	req := &dto.ReviewActionRequest{ReportType: model.ReviewTypeTrainer, ReportID: "treport-001"}
	if err := svc.ApproveAndForward(context.Background(), req, "pm-001"); err != nil {
		t.Fatalf("训练师报告转呈应成功: %v", err)
	}
	if report.Status != model.DailyReportStatusForwardedToAdmin {
		t.Errorf("期望状态FORWARDED_TO_ADMIN，实际=%s", report.Status)
	}
}

// ── 待审查询测试 ──

func TestReviewService_GetPendingCounts(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	seedSubmittedDaily(m, "dreport-001")
	seedSubmittedDaily(m, "dreport-002")

	submittedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	m.vetReport.reports["vreport-001"] = &model.VetReport{
		ReportID:    "vreport-001",
		DogID:       "dog-001",
		ProjectID:   "project-001",
		SubmitterID: "vet-001",
		Date:        time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:      model.DailyReportStatusSubmitted,
		SubmittedAt: &submittedAt,
	}
	m.vetReport.order = append(m.vetReport.order, "vreport-001")

	// 其他项目的报告不计入
	m.caretakerReport.reports["creport-001"] = &model.CaretakerReport{
		ReportID:    "creport-001",
		DogID:       "dog-002",
		ProjectID:   "project-002",
		SubmitterID: "caretaker-001",
		Date:        time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:      model.DailyReportStatusSubmitted,
	}
	m.caretakerReport.order = append(m.caretakerReport.order, "creport-001")

	counts, err := svc.GetPendingCounts(context.Background(), "pm-001")
	if err != nil {
		t.Fatalf("GetPendingCounts 应成功: %v", err)
	}
	if counts.Handler != 2 || counts.Vet != 1 || counts.Trainer != 0 || counts.Caretaker != 0 {
		t.Errorf("分类计数不正确: %+v", counts)
	}
	if counts.Total != 3 {
		t.Errorf("期望总数3，实际=%d", counts.Total)
	}
}

func TestReviewService_GetPendingReports_ScopedToProject(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	seedSubmittedDaily(m, "dreport-001")
	other := seedSubmittedDaily(m, "dreport-002")
	other.ProjectID = "project-002"

	reports, err := svc.GetPendingReports(context.Background(), "pm-001")
	if err != nil {
		t.Fatalf("GetPendingReports 应成功: %v", err)
	}
	if len(reports) != 1 || reports[0].ReportID != "dreport-001" {
		t.Errorf("应只返回本项目待审报告，实际: %+v", reports)
	}
}

func TestReviewService_GetForwardedReports(t *testing.T) {
	svc, m := setupTestReviewService()
	seedProject(m)
	report := seedSubmittedDaily(m, "dreport-001")
	report.Status = model.DailyReportStatusForwardedToAdmin
	seedSubmittedDaily(m, "dreport-002")

	reports, err := svc.GetForwardedReports(context.Background())
	if err != nil {
		t.Fatalf("GetForwardedReports 应成功: %v", err)
	}
	if len(reports) != 1 || reports[0].ReportID != "dreport-001" {
		t.Errorf("应只返回已转呈报告，实际: %+v", reports)
	}
}

func TestReviewService_GetReportHistory_InvalidType(t *testing.T) {
	svc, _ := setupTestReviewService()

	_, err := svc.GetReportHistory(context.Background(), "UNKNOWN", "whatever")
	if !errors.Is(err, ErrReviewInvalidType) {
		t.Errorf("期望 ErrReviewInvalidType，实际: %v", err)
	}
}

// [自证通过] internal/service/review_service_test.go
