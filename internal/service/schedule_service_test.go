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

var testNow = time.Date(2026, 3, 2, 18, 0, 0, 0, time.Local)

func setupTestScheduleService() (ScheduleService, *mockRepos) {
	m := newMockRepos()
	notifier := NewNotificationService(m.repo, nil, zap.NewNop())
	svc := NewScheduleService(m.repo, notifier, clock.Fixed{T: testNow}, zap.NewNop())
	return svc, m
}

func seedProject(m *mockRepos) {
	managerID := "pm-001"
	m.project.projects["project-001"] = &model.Project{
		ProjectID: "project-001",
		Name:      "东站驻点",
		Code:      "EAST",
		Status:    model.ProjectStatusActive,
		ManagerID: &managerID,
	}
}

func seedHandler(m *mockRepos, id string) {
	m.user.users[id] = &model.User{
		UserID:   id,
		Username: id,
		Name:     "训导员" + id,
		Role:     model.RoleHandler,
		IsActive: true,
	}
}

func seedSchedule(m *mockRepos, id, status string) *model.DailySchedule {
	schedule := &model.DailySchedule{
		ScheduleID: id,
		ProjectID:  "project-001",
		Date:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:     status,
	}
	schedule.Version = 1
	m.schedule.schedules[id] = schedule
	return schedule
}

// ── Create 测试 ──

func TestScheduleService_Create_Success(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedProject(m)

	req := &dto.CreateScheduleRequest{ProjectID: "project-001", Date: "2026-03-02"}
	result, err := svc.Create(context.Background(), req, "pm-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != model.ScheduleStatusOpen {
		t.Errorf("期望状态OPEN，实际=%s", result.Status)
	}
	if result.Version != 1 {
		t.Errorf("期望初始版本1，实际=%d", result.Version)
	}
}

func TestScheduleService_Create_Duplicate(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedProject(m)
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)

	req := &dto.CreateScheduleRequest{ProjectID: "project-001", Date: "2026-03-02"}
	_, err := svc.Create(context.Background(), req, "pm-001")
	if !errors.Is(err, ErrScheduleExists) {
		t.Errorf("期望 ErrScheduleExists，实际: %v", err)
	}
}

func TestScheduleService_Create_InvalidDate(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedProject(m)

	req := &dto.CreateScheduleRequest{ProjectID: "project-001", Date: "02/03/2026"}
	_, err := svc.Create(context.Background(), req, "pm-001")
	if !errors.Is(err, ErrDateInvalid) {
		t.Errorf("期望 ErrDateInvalid，实际: %v", err)
	}
}

func TestScheduleService_Create_ProjectNotFound(t *testing.T) {
	svc, _ := setupTestScheduleService()

	req := &dto.CreateScheduleRequest{ProjectID: "nonexistent", Date: "2026-03-02"}
	_, err := svc.Create(context.Background(), req, "pm-001")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("期望 ErrProjectNotFound，实际: %v", err)
	}
}

// ── AddItem 测试 ──

func TestScheduleService_AddItem_NotifiesHandlerOnce(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedProject(m)
	seedHandler(m, "handler-001")
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)

	req := &dto.AddScheduleItemRequest{HandlerID: "handler-001"}
	if _, err := svc.AddItem(context.Background(), "schedule-001", req, "pm-001"); err != nil {
		t.Fatalf("AddItem 应成功: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), "schedule-001", req, "pm-001"); err != nil {
		t.Fatalf("第二次 AddItem 应成功: %v", err)
	}

	// 同一训导员同一排班表只通知一次
	ns := m.notification.forUser("handler-001")
	if len(ns) != 1 {
		t.Fatalf("期望1条排班通知，实际=%d", len(ns))
	}
	if ns[0].Type != model.NotifyScheduleCreated {
		t.Errorf("期望通知类型SCHEDULE_CREATED，实际=%s", ns[0].Type)
	}
}

func TestScheduleService_AddItem_Locked(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedHandler(m, "handler-001")
	seedSchedule(m, "schedule-001", model.ScheduleStatusLocked)

	req := &dto.AddScheduleItemRequest{HandlerID: "handler-001"}
	_, err := svc.AddItem(context.Background(), "schedule-001", req, "pm-001")
	if !errors.Is(err, ErrScheduleLocked) {
		t.Errorf("期望 ErrScheduleLocked，实际: %v", err)
	}
}

func TestScheduleService_AddItem_NotAHandler(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)
	m.user.users["pm-001"] = &model.User{UserID: "pm-001", Role: model.RolePM, IsActive: true}

	req := &dto.AddScheduleItemRequest{HandlerID: "pm-001"}
	_, err := svc.AddItem(context.Background(), "schedule-001", req, "pm-001")
	if !errors.Is(err, ErrHandlerRoleInvalid) {
		t.Errorf("期望 ErrHandlerRoleInvalid，实际: %v", err)
	}
}

// ── 出勤标记测试 ──

func TestScheduleService_MarkPresent_Success(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)
	item := &model.ScheduleItem{
		ScheduleItemID: "item-001",
		ScheduleID:     "schedule-001",
		HandlerID:      "handler-001",
		Status:         model.ItemStatusPlanned,
	}
	item.Version = 1
	m.item.items["item-001"] = item

	result, err := svc.MarkPresent(context.Background(), "item-001", "pm-001")
	if err != nil {
		t.Fatalf("MarkPresent 应成功: %v", err)
	}
	if result.Status != model.ItemStatusPresent {
		t.Errorf("期望状态PRESENT，实际=%s", result.Status)
	}
	if result.Version != 2 {
		t.Errorf("期望版本递增到2，实际=%d", result.Version)
	}
}

func TestScheduleService_MarkAbsent_RecordsReason(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)
	item := &model.ScheduleItem{
		ScheduleItemID: "item-001",
		ScheduleID:     "schedule-001",
		HandlerID:      "handler-001",
		Status:         model.ItemStatusPlanned,
	}
	item.Version = 1
	m.item.items["item-001"] = item

	result, err := svc.MarkAbsent(context.Background(), "item-001", &dto.MarkAbsentRequest{Reason: "病假"}, "pm-001")
	if err != nil {
		t.Fatalf("MarkAbsent 应成功: %v", err)
	}
	if result.Status != model.ItemStatusAbsent || result.AbsenceReason != "病假" {
		t.Errorf("缺勤标记未生效: %+v", result)
	}
}

func TestScheduleService_MarkPresent_NotPlanned(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)
	item := &model.ScheduleItem{
		ScheduleItemID: "item-001",
		ScheduleID:     "schedule-001",
		HandlerID:      "handler-001",
		Status:         model.ItemStatusAbsent,
	}
	item.Version = 1
	m.item.items["item-001"] = item

	_, err := svc.MarkPresent(context.Background(), "item-001", "pm-001")
	if !errors.Is(err, ErrItemNotPlanned) {
		t.Errorf("期望 ErrItemNotPlanned，实际: %v", err)
	}
}

func TestScheduleService_MarkPresent_LockedSchedule(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusLocked)
	item := &model.ScheduleItem{
		ScheduleItemID: "item-001",
		ScheduleID:     "schedule-001",
		HandlerID:      "handler-001",
		Status:         model.ItemStatusPlanned,
	}
	item.Version = 1
	m.item.items["item-001"] = item

	_, err := svc.MarkPresent(context.Background(), "item-001", "pm-001")
	if !errors.Is(err, ErrScheduleLocked) {
		t.Errorf("期望 ErrScheduleLocked，实际: %v", err)
	}
}

// ── ReplaceHandler 测试 ──

func TestScheduleService_ReplaceHandler_Success(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)
	seedHandler(m, "handler-002")
	item := &model.ScheduleItem{
		ScheduleItemID: "item-001",
		ScheduleID:     "schedule-001",
		HandlerID:      "handler-001",
		Status:         model.ItemStatusPlanned,
	}
	item.Version = 1
	m.item.items["item-001"] = item

	req := &dto.ReplaceHandlerRequest{ReplacementHandlerID: "handler-002", Reason: "病假", Notes: "当日顶满全班"}
	result, err := svc.ReplaceHandler(context.Background(), "item-001", req, "pm-001")
	if err != nil {
		t.Fatalf("ReplaceHandler 应成功: %v", err)
	}
	if result.Status != model.ItemStatusReplaced {
		t.Errorf("期望状态REPLACED，实际=%s", result.Status)
	}
	// 原班缺席原因与顶班说明分别落在各自字段
	if result.AbsenceReason != "病假" {
		t.Errorf("期望AbsenceReason=病假，实际=%s", result.AbsenceReason)
	}
	if result.ReplacementNotes != "当日顶满全班" {
		t.Errorf("期望ReplacementNotes=当日顶满全班，实际=%s", result.ReplacementNotes)
	}

	// 写入变更审计，理由取缺席原因
	logs, _ := m.changeLog.ListBySchedule(context.Background(), "schedule-001")
	if len(logs) != 1 || logs[0].ChangeType != model.ChangeTypeReplaceHandler {
		t.Errorf("期望1条REPLACE_HANDLER审计，实际: %+v", logs)
	}
	if len(logs) == 1 && logs[0].Reason != "病假" {
		t.Errorf("期望审计理由=病假，实际=%s", logs[0].Reason)
	}

	// 通知顶班人
	ns := m.notification.forUser("handler-002")
	if len(ns) != 1 || ns[0].Type != model.NotifyHandlerReplaced {
		t.Errorf("期望1条顶班通知，实际: %+v", ns)
	}
}

func TestScheduleService_ReplaceHandler_SameHandler(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)
	item := &model.ScheduleItem{
		ScheduleItemID: "item-001",
		ScheduleID:     "schedule-001",
		HandlerID:      "handler-001",
		Status:         model.ItemStatusPlanned,
	}
	item.Version = 1
	m.item.items["item-001"] = item

	req := &dto.ReplaceHandlerRequest{ReplacementHandlerID: "handler-001", Reason: "病假"}
	_, err := svc.ReplaceHandler(context.Background(), "item-001", req, "pm-001")
	if !errors.Is(err, ErrReplacementSame) {
		t.Errorf("期望 ErrReplacementSame，实际: %v", err)
	}
}

func TestScheduleService_ReplaceHandler_WhitespaceReason(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)
	seedHandler(m, "handler-002")
	item := &model.ScheduleItem{
		ScheduleItemID: "item-001",
		ScheduleID:     "schedule-001",
		HandlerID:      "handler-001",
		Status:         model.ItemStatusPlanned,
	}
	item.Version = 1
	m.item.items["item-001"] = item

	// 纯空白原因视同未填写
	req := &dto.ReplaceHandlerRequest{ReplacementHandlerID: "handler-002", Reason: "   \t  "}
	_, err := svc.ReplaceHandler(context.Background(), "item-001", req, "pm-001")
	if !errors.Is(err, ErrReasonRequired) {
		t.Errorf("期望 ErrReasonRequired，实际: %v", err)
	}
	if item.Status != model.ItemStatusPlanned {
		t.Errorf("被拒绝的顶班不应改变排班项状态，实际=%s", item.Status)
	}
}

// ── Lock / Unlock 测试 ──

func TestScheduleService_Lock_Success(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)

	if err := svc.Lock(context.Background(), "schedule-001", "pm-001"); err != nil {
		t.Fatalf("Lock 应成功: %v", err)
	}

	schedule := m.schedule.schedules["schedule-001"]
	if schedule.Status != model.ScheduleStatusLocked {
		t.Errorf("期望状态LOCKED，实际=%s", schedule.Status)
	}
	if schedule.LockedAt == nil || !schedule.LockedAt.Equal(testNow.UTC()) {
		t.Errorf("LockedAt 应为固定时钟时间，实际=%v", schedule.LockedAt)
	}

	logs, _ := m.changeLog.ListBySchedule(context.Background(), "schedule-001")
	if len(logs) != 1 || logs[0].ChangeType != model.ChangeTypeLock {
		t.Errorf("期望1条LOCK审计，实际: %+v", logs)
	}
}

func TestScheduleService_Lock_AlreadyLocked(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusLocked)

	err := svc.Lock(context.Background(), "schedule-001", "pm-001")
	if !errors.Is(err, ErrScheduleAlreadyLocked) {
		t.Errorf("期望 ErrScheduleAlreadyLocked，实际: %v", err)
	}
}

func TestScheduleService_Unlock_Success(t *testing.T) {
	svc, m := setupTestScheduleService()
	schedule := seedSchedule(m, "schedule-001", model.ScheduleStatusLocked)
	lockedAt := testNow.Add(-time.Hour)
	schedule.LockedAt = &lockedAt

	req := &dto.UnlockScheduleRequest{Reason: "临时调整排班"}
	if err := svc.Unlock(context.Background(), "schedule-001", req, "admin-001"); err != nil {
		t.Fatalf("Unlock 应成功: %v", err)
	}

	if schedule.Status != model.ScheduleStatusOpen || schedule.LockedAt != nil {
		t.Errorf("解锁未生效: status=%s lockedAt=%v", schedule.Status, schedule.LockedAt)
	}

	logs, _ := m.changeLog.ListBySchedule(context.Background(), "schedule-001")
	if len(logs) != 1 || logs[0].ChangeType != model.ChangeTypeUnlock || logs[0].Reason != "临时调整排班" {
		t.Errorf("期望1条带理由的UNLOCK审计，实际: %+v", logs)
	}
}

func TestScheduleService_Unlock_WhitespaceReason(t *testing.T) {
	svc, m := setupTestScheduleService()
	schedule := seedSchedule(m, "schedule-001", model.ScheduleStatusLocked)

	// 纯空白理由视同未填写
	err := svc.Unlock(context.Background(), "schedule-001", &dto.UnlockScheduleRequest{Reason: " \t "}, "admin-001")
	if !errors.Is(err, ErrReasonRequired) {
		t.Errorf("期望 ErrReasonRequired，实际: %v", err)
	}
	if schedule.Status != model.ScheduleStatusLocked {
		t.Errorf("被拒绝的解锁不应改变状态，实际=%s", schedule.Status)
	}
}

func TestScheduleService_MarkAbsent_WhitespaceReason(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)
	item := &model.ScheduleItem{
		ScheduleItemID: "item-001",
		ScheduleID:     "schedule-001",
		HandlerID:      "handler-001",
		Status:         model.ItemStatusPlanned,
	}
	item.Version = 1
	m.item.items["item-001"] = item

	_, err := svc.MarkAbsent(context.Background(), "item-001", &dto.MarkAbsentRequest{Reason: "   "}, "pm-001")
	if !errors.Is(err, ErrReasonRequired) {
		t.Errorf("期望 ErrReasonRequired，实际: %v", err)
	}
}

func TestScheduleService_Unlock_NotLocked(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)

	err := svc.Unlock(context.Background(), "schedule-001", &dto.UnlockScheduleRequest{Reason: "误操作"}, "admin-001")
	if !errors.Is(err, ErrScheduleNotLocked) {
		t.Errorf("期望 ErrScheduleNotLocked，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestScheduleService_Delete_Success(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)
	item := &model.ScheduleItem{
		ScheduleItemID: "item-001",
		ScheduleID:     "schedule-001",
		HandlerID:      "handler-001",
		Status:         model.ItemStatusPlanned,
	}
	item.Version = 1
	m.item.items["item-001"] = item

	if err := svc.Delete(context.Background(), "schedule-001", "admin-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := m.schedule.schedules["schedule-001"]; ok {
		t.Error("排班表应已删除")
	}
	if _, ok := m.item.items["item-001"]; ok {
		t.Error("排班项应随排班表一并删除")
	}
}

func TestScheduleService_Delete_Locked(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusLocked)

	err := svc.Delete(context.Background(), "schedule-001", "admin-001")
	if !errors.Is(err, ErrScheduleLocked) {
		t.Errorf("期望 ErrScheduleLocked，实际: %v", err)
	}
}

func TestScheduleService_Delete_HasReports(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)
	dogID := "dog-001"
	item := &model.ScheduleItem{
		ScheduleItemID: "item-001",
		ScheduleID:     "schedule-001",
		HandlerID:      "handler-001",
		DogID:          &dogID,
		Status:         model.ItemStatusPresent,
	}
	item.Version = 1
	m.item.items["item-001"] = item
	m.shiftReport.reports["sreport-001"] = &model.ShiftReport{
		ShiftReportID:  "sreport-001",
		ScheduleItemID: "item-001",
		DogID:          dogID,
	}
	m.shiftReport.order = append(m.shiftReport.order, "sreport-001")

	err := svc.Delete(context.Background(), "schedule-001", "admin-001")
	if !errors.Is(err, ErrScheduleHasReports) {
		t.Errorf("期望 ErrScheduleHasReports，实际: %v", err)
	}
}

// ── GetDogsWorkedToday 测试 ──

func TestScheduleService_GetDogsWorkedToday_DedupesAndFlags(t *testing.T) {
	svc, m := setupTestScheduleService()
	seedSchedule(m, "schedule-001", model.ScheduleStatusOpen)
	dogID := "dog-001"
	dog := &model.Dog{DogID: dogID, Name: "黑豹", Code: "K9-01"}

	// 同犬两个班次，应只出现一次
	for _, id := range []string{"item-001", "item-002"} {
		item := &model.ScheduleItem{
			ScheduleItemID: id,
			ScheduleID:     "schedule-001",
			HandlerID:      "handler-001",
			DogID:          &dogID,
			Dog:            dog,
			Status:         model.ItemStatusPresent,
		}
		item.Version = 1
		m.item.items[id] = item
	}
	m.shiftReport.reports["sreport-001"] = &model.ShiftReport{
		ShiftReportID:  "sreport-001",
		ScheduleItemID: "item-001",
		DogID:          dogID,
	}
	m.shiftReport.order = append(m.shiftReport.order, "sreport-001")

	result, err := svc.GetDogsWorkedToday(context.Background(), "handler-001", "2026-03-02")
	if err != nil {
		t.Fatalf("GetDogsWorkedToday 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("期望去重后1只犬，实际=%d", len(result))
	}
	if !result[0].HasShiftReport {
		t.Error("首个排班项已有班次报告，应标记HasShiftReport")
	}
	if result[0].HasDailyReport {
		t.Error("尚无日报，不应标记HasDailyReport")
	}
}

// ── GetChangeLogs 测试 ──

func TestScheduleService_GetChangeLogs_ScheduleNotFound(t *testing.T) {
	svc, _ := setupTestScheduleService()

	_, err := svc.GetChangeLogs(context.Background(), "nonexistent")
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("期望 ErrScheduleNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/schedule_service_test.go
