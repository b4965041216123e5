package service

import (
	"context"

	"k9ops/backend/internal/model"
	"k9ops/backend/internal/repository"
)

// 四类报告各自的 reviewTarget 适配器
// load 把具体模型压平成 reviewableReport，save 把审核结果写回

// ── 训导员日报 ──

type handlerTarget struct {
	repo *repository.Repository
}

func (t *handlerTarget) load(ctx context.Context, id string) (*reviewableReport, error) {
	report, err := t.repo.HandlerReport.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &reviewableReport{
		ID:          report.ReportID,
		ProjectID:   report.ProjectID,
		SubmitterID: report.HandlerID,
		DogID:       report.DogID,
		Date:        report.Date,
		Status:      report.Status,
		SubmittedAt: report.SubmittedAt,
		ReviewedBy:  report.ReviewedBy,
		ReviewedAt:  report.ReviewedAt,
		ReviewNotes: report.ReviewNotes,
	}, nil
}

func (t *handlerTarget) save(ctx context.Context, r *reviewableReport) error {
	report, err := t.repo.HandlerReport.GetByID(ctx, r.ID)
	if err != nil {
		return err
	}
	report.Status = r.Status
	report.SubmittedAt = r.SubmittedAt
	report.ReviewedBy = r.ReviewedBy
	report.ReviewedAt = r.ReviewedAt
	report.ReviewNotes = r.ReviewNotes
	return t.repo.HandlerReport.Update(ctx, report)
}

func (t *handlerTarget) listByProjectAndStatus(ctx context.Context, projectID, status string) ([]reviewableReport, error) {
	reports, err := t.repo.HandlerReport.ListByProjectAndStatus(ctx, projectID, status)
	if err != nil {
		return nil, err
	}
	out := make([]reviewableReport, 0, len(reports))
	for i := range reports {
		out = append(out, reviewableReport{
			ID:          reports[i].ReportID,
			ProjectID:   reports[i].ProjectID,
			SubmitterID: reports[i].HandlerID,
			DogID:       reports[i].DogID,
			Date:        reports[i].Date,
			Status:      reports[i].Status,
			SubmittedAt: reports[i].SubmittedAt,
		})
	}
	return out, nil
}

func (t *handlerTarget) listByStatus(ctx context.Context, status string) ([]reviewableReport, error) {
	reports, err := t.repo.HandlerReport.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]reviewableReport, 0, len(reports))
	for i := range reports {
		out = append(out, reviewableReport{
			ID:          reports[i].ReportID,
			ProjectID:   reports[i].ProjectID,
			SubmitterID: reports[i].HandlerID,
			DogID:       reports[i].DogID,
			Date:        reports[i].Date,
			Status:      reports[i].Status,
			SubmittedAt: reports[i].SubmittedAt,
		})
	}
	return out, nil
}

// ── 训练师报告 ──

type trainerTarget struct {
	repo *repository.Repository
}

func (t *trainerTarget) load(ctx context.Context, id string) (*reviewableReport, error) {
	report, err := t.repo.TrainerReport.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromTrainerReport(report), nil
}

func (t *trainerTarget) save(ctx context.Context, r *reviewableReport) error {
	report, err := t.repo.TrainerReport.GetByID(ctx, r.ID)
	if err != nil {
		return err
	}
	report.Status = r.Status
	report.SubmittedAt = r.SubmittedAt
	report.ReviewedBy = r.ReviewedBy
	report.ReviewedAt = r.ReviewedAt
	report.ReviewNotes = r.ReviewNotes
	return t.repo.TrainerReport.Update(ctx, report)
}

func (t *trainerTarget) listByProjectAndStatus(ctx context.Context, projectID, status string) ([]reviewableReport, error) {
	reports, err := t.repo.TrainerReport.ListByProjectAndStatus(ctx, projectID, status)
	if err != nil {
		return nil, err
	}
	out := make([]reviewableReport, 0, len(reports))
	for i := range reports {
		out = append(out, *fromTrainerReport(&reports[i]))
	}
	return out, nil
}

func (t *trainerTarget) listByStatus(ctx context.Context, status string) ([]reviewableReport, error) {
	reports, err := t.repo.TrainerReport.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]reviewableReport, 0, len(reports))
	for i := range reports {
		out = append(out, *fromTrainerReport(&reports[i]))
	}
	return out, nil
}

func fromTrainerReport(report *model.TrainerReport) *reviewableReport {
	return &reviewableReport{
		ID:          report.ReportID,
		ProjectID:   report.ProjectID,
		SubmitterID: report.SubmitterID,
		DogID:       report.DogID,
		Date:        report.Date,
		Status:      report.Status,
		SubmittedAt: report.SubmittedAt,
		ReviewedBy:  report.ReviewedBy,
		ReviewedAt:  report.ReviewedAt,
		ReviewNotes: report.ReviewNotes,
	}
}

// ── 兽医报告 ──

type vetTarget struct {
	repo *repository.Repository
}

func (t *vetTarget) load(ctx context.Context, id string) (*reviewableReport, error) {
	report, err := t.repo.VetReport.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromVetReport(report), nil
}

func (t *vetTarget) save(ctx context.Context, r *reviewableReport) error {
	report, err := t.repo.VetReport.GetByID(ctx, r.ID)
	if err != nil {
		return err
	}
	report.Status = r.Status
	report.SubmittedAt = r.SubmittedAt
	report.ReviewedBy = r.ReviewedBy
	report.ReviewedAt = r.ReviewedAt
	report.ReviewNotes = r.ReviewNotes
	return t.repo.VetReport.Update(ctx, report)
}

func (t *vetTarget) listByProjectAndStatus(ctx context.Context, projectID, status string) ([]reviewableReport, error) {
	reports, err := t.repo.VetReport.ListByProjectAndStatus(ctx, projectID, status)
	if err != nil {
		return nil, err
	}
	out := make([]reviewableReport, 0, len(reports))
	for i := range reports {
		out = append(out, *fromVetReport(&reports[i]))
	}
	return out, nil
}

func (t *vetTarget) listByStatus(ctx context.Context, status string) ([]reviewableReport, error) {
	reports, err := t.repo.VetReport.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]reviewableReport, 0, len(reports))
	for i := range reports {
		out = append(out, *fromVetReport(&reports[i]))
	}
	return out, nil
}

func fromVetReport(report *model.VetReport) *reviewableReport {
	return &reviewableReport{
		ID:          report.ReportID,
		ProjectID:   report.ProjectID,
		SubmitterID: report.SubmitterID,
		DogID:       report.DogID,
		Date:        report.Date,
		Status:      report.Status,
		SubmittedAt: report.SubmittedAt,
		ReviewedBy:  report.ReviewedBy,
		ReviewedAt:  report.ReviewedAt,
		ReviewNotes: report.ReviewNotes,
	}
}

// ── 饲养员报告 ──

type caretakerTarget struct {
	repo *repository.Repository
}

func (t *caretakerTarget) load(ctx context.Context, id string) (*reviewableReport, error) {
	report, err := t.repo.CaretakerReport.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromCaretakerReport(report), nil
}

func (t *caretakerTarget) save(ctx context.Context, r *reviewableReport) error {
	report, err := t.repo.CaretakerReport.GetByID(ctx, r.ID)
	if err != nil {
		return err
	}
	report.Status = r.Status
	report.SubmittedAt = r.SubmittedAt
	report.ReviewedBy = r.ReviewedBy
	report.ReviewedAt = r.ReviewedAt
	report.ReviewNotes = r.ReviewNotes
	return t.repo.CaretakerReport.Update(ctx, report)
}

func (t *caretakerTarget) listByProjectAndStatus(ctx context.Context, projectID, status string) ([]reviewableReport, error) {
	reports, err := t.repo.CaretakerReport.ListByProjectAndStatus(ctx, projectID, status)
	if err != nil {
		return nil, err
	}
	out := make([]reviewableReport, 0, len(reports))
	for i := range reports {
		out = append(out, *fromCaretakerReport(&reports[i]))
	}
	return out, nil
}

func (t *caretakerTarget) listByStatus(ctx context.Context, status string) ([]reviewableReport, error) {
	reports, err := t.repo.CaretakerReport.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]reviewableReport, 0, len(reports))
	for i := range reports {
		out = append(out, *fromCaretakerReport(&reports[i]))
	}
	return out, nil
}

func fromCaretakerReport(report *model.CaretakerReport) *reviewableReport {
	return &reviewableReport{
		ID:          report.ReportID,
		ProjectID:   report.ProjectID,
		SubmitterID: report.SubmitterID,
		DogID:       report.DogID,
		Date:        report.Date,
		Status:      report.Status,
		SubmittedAt: report.SubmittedAt,
		ReviewedBy:  report.ReviewedBy,
		ReviewedAt:  report.ReviewedAt,
		ReviewNotes: report.ReviewNotes,
	}
}

// [自证通过] internal/service/review_targets.go
