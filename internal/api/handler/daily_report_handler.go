package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"k9ops/backend/internal/dto"
	"k9ops/backend/internal/service"
	"k9ops/backend/pkg/response"
)

// DailyReportHandler 训导员日报 HTTP 处理器
type DailyReportHandler struct {
	reportSvc service.HandlerReportService
}

// NewDailyReportHandler 创建 DailyReportHandler
func NewDailyReportHandler(reportSvc service.HandlerReportService) *DailyReportHandler {
	return &DailyReportHandler{reportSvc: reportSvc}
}

// CanCreate 校验日报创建条件
// GET /api/v1/daily-reports/can-create?dog_id=xxx&date=YYYY-MM-DD
func (h *DailyReportHandler) CanCreate(c *gin.Context) {
	dogID := c.Query("dog_id")
	date := c.Query("date")
	if dogID == "" || date == "" {
		response.BadRequest(c, 15001, "dog_id 与 date 不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	gate, err := h.reportSvc.CanCreate(c.Request.Context(), dogID, date, userID)
	if err != nil {
		h.handleDailyReportError(c, err)
		return
	}

	response.OK(c, gate)
}

// Create 创建日报草稿（可选从当日班次报告预填）
// POST /api/v1/daily-reports
func (h *DailyReportHandler) Create(c *gin.Context) {
	var req dto.CreateDailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleDailyReportError(c, err)
		return
	}

	response.Created(c, report)
}

// Get 获取日报详情
// GET /api/v1/daily-reports/:id
func (h *DailyReportHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "报告ID不能为空")
		return
	}

	report, err := h.reportSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleDailyReportError(c, err)
		return
	}

	response.OK(c, report)
}

// Update 更新日报草稿
// PUT /api/v1/daily-reports/:id
func (h *DailyReportHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "报告ID不能为空")
		return
	}

	var req dto.UpdateDailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.UpdateDraft(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleDailyReportError(c, err)
		return
	}

	response.OK(c, report)
}

// Delete 删除日报草稿
// DELETE /api/v1/daily-reports/:id
func (h *DailyReportHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "报告ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.reportSvc.DeleteDraft(c.Request.Context(), id, userID); err != nil {
		h.handleDailyReportError(c, err)
		return
	}

	response.OK(c, nil)
}

// Submit 提交日报进入审批流
// POST /api/v1/daily-reports/:id/submit
func (h *DailyReportHandler) Submit(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "报告ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.Submit(c.Request.Context(), id, userID)
	if err != nil {
		h.handleDailyReportError(c, err)
		return
	}

	response.OK(c, report)
}

// ListByProject 按项目查询日报
// GET /api/v1/daily-reports?project_id=xxx&status=SUBMITTED
func (h *DailyReportHandler) ListByProject(c *gin.Context) {
	projectID := c.Query("project_id")
	if projectID == "" {
		response.BadRequest(c, 15001, "project_id不能为空")
		return
	}

	reports, err := h.reportSvc.ListByProject(c.Request.Context(), projectID, c.Query("status"))
	if err != nil {
		h.handleDailyReportError(c, err)
		return
	}

	response.OK(c, gin.H{"list": reports})
}

// handleDailyReportError 统一处理日报模块业务错误
func (h *DailyReportHandler) handleDailyReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDailyReportNotFound):
		response.NotFound(c, 15101, "日报不存在")
	case errors.Is(err, service.ErrDailyReportExists):
		response.BadRequest(c, 15102, "该犬当日日报已存在")
	case errors.Is(err, service.ErrDailyReportNotAssigned):
		response.Forbidden(c, 15103, "您当日未带该犬执勤，不能填写日报")
	case errors.Is(err, service.ErrDailyReportNotOwner):
		response.Forbidden(c, 15104, "只有报告提交人可以操作")
	case errors.Is(err, service.ErrDailyReportNotDraft):
		response.BadRequest(c, 15105, "日报已提交，不可再编辑")
	case errors.Is(err, service.ErrDogNotFound):
		response.NotFound(c, 15106, "犬只不存在")
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 15107, "日期格式无效，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/daily_report_handler.go
