package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"k9ops/backend/internal/model"
	"k9ops/backend/internal/repository"
	pkgerrors "k9ops/backend/pkg/errors"
)

// 内存版 Repository 实现，行为对齐真实仓储：
// 查无记录返回 gorm.ErrRecordNotFound，唯一索引冲突返回 gorm.ErrDuplicatedKey，
// 乐观锁版本不匹配返回 pkgerrors.ErrOptimisticLock

// ── User ──

type mockUserRepo struct {
	users     map[string]*model.User
	idCounter int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if user.UserID == "" {
		m.idCounter++
		user.UserID = fmt.Sprintf("user-%03d", m.idCounter)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListActiveByRole(ctx context.Context, role string) ([]model.User, error) {
	var ids []string
	for id, user := range m.users {
		if user.Role == role && user.IsActive {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, *m.users[id])
	}
	return users, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.UserID] = user
	return nil
}

// ── Project ──

type mockProjectRepo struct {
	projects map[string]*model.Project
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	project, ok := m.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return project, nil
}

func (m *mockProjectRepo) GetByManager(ctx context.Context, managerID string) (*model.Project, error) {
	for _, project := range m.projects {
		if project.ManagerID != nil && *project.ManagerID == managerID && project.Status == model.ProjectStatusActive {
			return project, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) List(ctx context.Context) ([]model.Project, error) {
	var ids []string
	for id := range m.projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	projects := make([]model.Project, 0, len(ids))
	for _, id := range ids {
		projects = append(projects, *m.projects[id])
	}
	return projects, nil
}

// ── Dog ──

type mockDogRepo struct {
	dogs map[string]*model.Dog
}

func newMockDogRepo() *mockDogRepo {
	return &mockDogRepo{dogs: make(map[string]*model.Dog)}
}

func (m *mockDogRepo) GetByID(ctx context.Context, id string) (*model.Dog, error) {
	dog, ok := m.dogs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return dog, nil
}

func (m *mockDogRepo) ListByProject(ctx context.Context, projectID string) ([]model.Dog, error) {
	var dogs []model.Dog
	for _, dog := range m.dogs {
		if dog.ProjectID != nil && *dog.ProjectID == projectID {
			dogs = append(dogs, *dog)
		}
	}
	sort.Slice(dogs, func(i, j int) bool { return dogs[i].Code < dogs[j].Code })
	return dogs, nil
}

// ── Location ──

type mockLocationRepo struct {
	locations map[string]*model.Location
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{locations: make(map[string]*model.Location)}
}

func (m *mockLocationRepo) GetByID(ctx context.Context, id string) (*model.Location, error) {
	location, ok := m.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return location, nil
}

func (m *mockLocationRepo) ListByProject(ctx context.Context, projectID string) ([]model.Location, error) {
	var locations []model.Location
	for _, location := range m.locations {
		if location.ProjectID == projectID {
			locations = append(locations, *location)
		}
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].Name < locations[j].Name })
	return locations, nil
}

// ── Shift ──

type mockShiftRepo struct {
	shifts    map[string]*model.Shift
	idCounter int

	items   *mockScheduleItemRepo
	reports *mockShiftReportRepo
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		m.idCounter++
		shift.ShiftID = fmt.Sprintf("shift-%03d", m.idCounter)
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	shift, ok := m.shifts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return shift, nil
}

func (m *mockShiftRepo) GetActiveByName(ctx context.Context, name string) (*model.Shift, error) {
	for _, shift := range m.shifts {
		if shift.Name == name && shift.IsActive {
			return shift, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) List(ctx context.Context, includeInactive bool) ([]model.Shift, error) {
	var shifts []model.Shift
	for _, shift := range m.shifts {
		if !includeInactive && !shift.IsActive {
			continue
		}
		shifts = append(shifts, *shift)
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].StartTime < shifts[j].StartTime })
	return shifts, nil
}

func (m *mockShiftRepo) Update(ctx context.Context, shift *model.Shift) error {
	if _, ok := m.shifts[shift.ShiftID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) CountScheduleItems(ctx context.Context, shiftID string) (int64, error) {
	var n int64
	for _, item := range m.items.items {
		if item.ShiftID != nil && *item.ShiftID == shiftID {
			n++
		}
	}
	return n, nil
}

func (m *mockShiftRepo) CountShiftReports(ctx context.Context, shiftID string) (int64, error) {
	var n int64
	for _, report := range m.reports.reports {
		if report.ShiftID == shiftID {
			n++
		}
	}
	return n, nil
}

// ── Schedule ──

type mockScheduleRepo struct {
	schedules map[string]*model.DailySchedule
	idCounter int

	items *mockScheduleItemRepo
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.DailySchedule)}
}

func dateKey(t time.Time) string { return t.Format("2006-01-02") }

func (m *mockScheduleRepo) Create(ctx context.Context, schedule *model.DailySchedule) error {
	for _, existing := range m.schedules {
		if existing.ProjectID == schedule.ProjectID && dateKey(existing.Date) == dateKey(schedule.Date) {
			return gorm.ErrDuplicatedKey
		}
	}
	if schedule.ScheduleID == "" {
		m.idCounter++
		schedule.ScheduleID = fmt.Sprintf("schedule-%03d", m.idCounter)
	}
	if schedule.Version == 0 {
		schedule.Version = 1
	}
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id string) (*model.DailySchedule, error) {
	schedule, ok := m.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	schedule.Items = m.items.listForSchedule(id)
	return schedule, nil
}

func (m *mockScheduleRepo) GetByProjectAndDate(ctx context.Context, projectID string, date time.Time) (*model.DailySchedule, error) {
	for id, schedule := range m.schedules {
		if schedule.ProjectID == projectID && dateKey(schedule.Date) == dateKey(date) {
			schedule.Items = m.items.listForSchedule(id)
			return schedule, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) Update(ctx context.Context, schedule *model.DailySchedule) error {
	stored, ok := m.schedules[schedule.ScheduleID]
	if !ok || stored.Version != schedule.Version {
		return pkgerrors.ErrOptimisticLock
	}
	schedule.Version++
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) DeleteWithItems(ctx context.Context, scheduleID string) error {
	for id, item := range m.items.items {
		if item.ScheduleID == scheduleID {
			delete(m.items.items, id)
		}
	}
	delete(m.schedules, scheduleID)
	return nil
}

// ── ScheduleItem ──

type mockScheduleItemRepo struct {
	items     map[string]*model.ScheduleItem
	idCounter int

	schedules *mockScheduleRepo
}

func newMockScheduleItemRepo() *mockScheduleItemRepo {
	return &mockScheduleItemRepo{items: make(map[string]*model.ScheduleItem)}
}

func (m *mockScheduleItemRepo) Create(ctx context.Context, item *model.ScheduleItem) error {
	if item.ScheduleItemID == "" {
		m.idCounter++
		item.ScheduleItemID = fmt.Sprintf("item-%03d", m.idCounter)
	}
	if item.Version == 0 {
		item.Version = 1
	}
	m.items[item.ScheduleItemID] = item
	return nil
}

// attachSchedule 模拟 Schedule 关联预加载
func (m *mockScheduleItemRepo) attachSchedule(item *model.ScheduleItem) {
	if item.Schedule == nil {
		if schedule, ok := m.schedules.schedules[item.ScheduleID]; ok {
			item.Schedule = schedule
		}
	}
}

func (m *mockScheduleItemRepo) GetByID(ctx context.Context, id string) (*model.ScheduleItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	m.attachSchedule(item)
	return item, nil
}

func (m *mockScheduleItemRepo) listForSchedule(scheduleID string) []model.ScheduleItem {
	var ids []string
	for id, item := range m.items {
		if item.ScheduleID == scheduleID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	items := make([]model.ScheduleItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, *m.items[id])
	}
	return items
}

func (m *mockScheduleItemRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]model.ScheduleItem, error) {
	return m.listForSchedule(scheduleID), nil
}

func (m *mockScheduleItemRepo) ListByHandlerAndDate(ctx context.Context, handlerID string, date time.Time) ([]model.ScheduleItem, error) {
	var ids []string
	for id, item := range m.items {
		m.attachSchedule(item)
		if item.Schedule == nil || dateKey(item.Schedule.Date) != dateKey(date) {
			continue
		}
		if item.AssignedTo(handlerID) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	items := make([]model.ScheduleItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, *m.items[id])
	}
	return items, nil
}

func (m *mockScheduleItemRepo) ListByHandlerBetween(ctx context.Context, handlerID string, from, to time.Time) ([]model.ScheduleItem, error) {
	var ids []string
	for id, item := range m.items {
		m.attachSchedule(item)
		if item.Schedule == nil {
			continue
		}
		d := item.Schedule.Date
		if d.Before(from) || d.After(to) {
			continue
		}
		if item.AssignedTo(handlerID) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	items := make([]model.ScheduleItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, *m.items[id])
	}
	return items, nil
}

func (m *mockScheduleItemRepo) CountByScheduleAndHandler(ctx context.Context, scheduleID, handlerID string) (int64, error) {
	var n int64
	for _, item := range m.items {
		if item.ScheduleID == scheduleID && item.HandlerID == handlerID {
			n++
		}
	}
	return n, nil
}

func (m *mockScheduleItemRepo) Update(ctx context.Context, item *model.ScheduleItem) error {
	stored, ok := m.items[item.ScheduleItemID]
	if !ok || stored.Version != item.Version {
		return pkgerrors.ErrOptimisticLock
	}
	item.Version++
	m.items[item.ScheduleItemID] = item
	return nil
}

func (m *mockScheduleItemRepo) Delete(ctx context.Context, id string) error {
	delete(m.items, id)
	return nil
}

// ── ScheduleChangeLog ──

type mockChangeLogRepo struct {
	logs      []model.ScheduleChangeLog
	idCounter int
}

func newMockChangeLogRepo() *mockChangeLogRepo {
	return &mockChangeLogRepo{}
}

func (m *mockChangeLogRepo) Create(ctx context.Context, log *model.ScheduleChangeLog) error {
	m.idCounter++
	if log.ChangeLogID == "" {
		log.ChangeLogID = fmt.Sprintf("changelog-%03d", m.idCounter)
	}
	log.CreatedAt = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.idCounter) * time.Second)
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockChangeLogRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]model.ScheduleChangeLog, error) {
	var logs []model.ScheduleChangeLog
	for i := range m.logs {
		if m.logs[i].ScheduleID == scheduleID {
			logs = append(logs, m.logs[i])
		}
	}
	return logs, nil
}

// ── ShiftReport ──

type mockShiftReportRepo struct {
	reports   map[string]*model.ShiftReport
	order     []string
	idCounter int

	items *mockScheduleItemRepo
}

func newMockShiftReportRepo() *mockShiftReportRepo {
	return &mockShiftReportRepo{reports: make(map[string]*model.ShiftReport)}
}

func (m *mockShiftReportRepo) Create(ctx context.Context, report *model.ShiftReport) error {
	for _, existing := range m.reports {
		if existing.ScheduleItemID == report.ScheduleItemID {
			return gorm.ErrDuplicatedKey
		}
	}
	if report.ShiftReportID == "" {
		m.idCounter++
		report.ShiftReportID = fmt.Sprintf("sreport-%03d", m.idCounter)
	}
	m.reports[report.ShiftReportID] = report
	m.order = append(m.order, report.ShiftReportID)
	return nil
}

func (m *mockShiftReportRepo) GetByID(ctx context.Context, id string) (*model.ShiftReport, error) {
	report, ok := m.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (m *mockShiftReportRepo) GetByScheduleItem(ctx context.Context, scheduleItemID string) (*model.ShiftReport, error) {
	for _, report := range m.reports {
		if report.ScheduleItemID == scheduleItemID {
			return report, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ListByDogAndDate 已提交的按提交时间升序在前，草稿按创建顺序在后
func (m *mockShiftReportRepo) ListByDogAndDate(ctx context.Context, dogID string, date time.Time) ([]model.ShiftReport, error) {
	var submitted, drafts []model.ShiftReport
	for _, id := range m.order {
		report, ok := m.reports[id]
		if !ok || report.DogID != dogID || dateKey(report.Date) != dateKey(date) {
			continue
		}
		if report.SubmittedAt != nil {
			submitted = append(submitted, *report)
		} else {
			drafts = append(drafts, *report)
		}
	}
	sort.SliceStable(submitted, func(i, j int) bool {
		return submitted[i].SubmittedAt.Before(*submitted[j].SubmittedAt)
	})
	return append(submitted, drafts...), nil
}

func (m *mockShiftReportRepo) ListByProjectAndStatus(ctx context.Context, projectID, status string) ([]model.ShiftReport, error) {
	var reports []model.ShiftReport
	for _, id := range m.order {
		report, ok := m.reports[id]
		if !ok || report.ProjectID != projectID {
			continue
		}
		if status != "" && report.Status != status {
			continue
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (m *mockShiftReportRepo) CountBySchedule(ctx context.Context, scheduleID string) (int64, error) {
	var n int64
	for _, report := range m.reports {
		if item, ok := m.items.items[report.ScheduleItemID]; ok && item.ScheduleID == scheduleID {
			n++
		}
	}
	return n, nil
}

func (m *mockShiftReportRepo) Update(ctx context.Context, report *model.ShiftReport) error {
	if _, ok := m.reports[report.ShiftReportID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.reports[report.ShiftReportID] = report
	return nil
}

func (m *mockShiftReportRepo) Delete(ctx context.Context, id string) error {
	delete(m.reports, id)
	return nil
}

// ── HandlerReport ──

type mockHandlerReportRepo struct {
	reports   map[string]*model.HandlerReport
	order     []string
	idCounter int

	items *mockScheduleItemRepo
}

func newMockHandlerReportRepo() *mockHandlerReportRepo {
	return &mockHandlerReportRepo{reports: make(map[string]*model.HandlerReport)}
}

func (m *mockHandlerReportRepo) Create(ctx context.Context, report *model.HandlerReport) error {
	for _, existing := range m.reports {
		if existing.ReportType == report.ReportType &&
			existing.DogID == report.DogID &&
			dateKey(existing.Date) == dateKey(report.Date) {
			return gorm.ErrDuplicatedKey
		}
	}
	if report.ReportID == "" {
		m.idCounter++
		report.ReportID = fmt.Sprintf("dreport-%03d", m.idCounter)
	}
	m.reports[report.ReportID] = report
	m.order = append(m.order, report.ReportID)
	return nil
}

func (m *mockHandlerReportRepo) GetByID(ctx context.Context, id string) (*model.HandlerReport, error) {
	report, ok := m.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (m *mockHandlerReportRepo) GetDailyByDogAndDate(ctx context.Context, dogID string, date time.Time) (*model.HandlerReport, error) {
	for _, report := range m.reports {
		if report.ReportType == model.ReportTypeDaily && report.DogID == dogID && dateKey(report.Date) == dateKey(date) {
			return report, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHandlerReportRepo) ListByProjectAndStatus(ctx context.Context, projectID, status string) ([]model.HandlerReport, error) {
	var reports []model.HandlerReport
	for _, id := range m.order {
		report, ok := m.reports[id]
		if !ok || report.ProjectID != projectID {
			continue
		}
		if status != "" && report.Status != status {
			continue
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (m *mockHandlerReportRepo) ListByStatus(ctx context.Context, status string) ([]model.HandlerReport, error) {
	var reports []model.HandlerReport
	for _, id := range m.order {
		report, ok := m.reports[id]
		if !ok || report.Status != status {
			continue
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (m *mockHandlerReportRepo) CountBySchedule(ctx context.Context, scheduleID string) (int64, error) {
	var n int64
	for _, item := range m.items.items {
		if item.ScheduleID != scheduleID || item.DogID == nil {
			continue
		}
		m.items.attachSchedule(item)
		for _, report := range m.reports {
			if report.DogID != *item.DogID {
				continue
			}
			if item.Schedule != nil && dateKey(report.Date) != dateKey(item.Schedule.Date) {
				continue
			}
			n++
		}
	}
	return n, nil
}

func (m *mockHandlerReportRepo) Update(ctx context.Context, report *model.HandlerReport) error {
	if _, ok := m.reports[report.ReportID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.reports[report.ReportID] = report
	return nil
}

func (m *mockHandlerReportRepo) Delete(ctx context.Context, id string) error {
	delete(m.reports, id)
	return nil
}

// ── TrainerReport ──

type mockTrainerReportRepo struct {
	reports   map[string]*model.TrainerReport
	order     []string
	idCounter int
}

func newMockTrainerReportRepo() *mockTrainerReportRepo {
	return &mockTrainerReportRepo{reports: make(map[string]*model.TrainerReport)}
}

func (m *mockTrainerReportRepo) Create(ctx context.Context, report *model.TrainerReport) error {
	if report.ReportID == "" {
		m.idCounter++
		report.ReportID = fmt.Sprintf("treport-%03d", m.idCounter)
	}
	m.reports[report.ReportID] = report
	m.order = append(m.order, report.ReportID)
	return nil
}

func (m *mockTrainerReportRepo) GetByID(ctx context.Context, id string) (*model.TrainerReport, error) {
	report, ok := m.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (m *mockTrainerReportRepo) ListByProjectAndStatus(ctx context.Context, projectID, status string) ([]model.TrainerReport, error) {
	var reports []model.TrainerReport
	for _, id := range m.order {
		report, ok := m.reports[id]
		if !ok || report.ProjectID != projectID {
			continue
		}
		if status != "" && report.Status != status {
			continue
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (m *mockTrainerReportRepo) ListByStatus(ctx context.Context, status string) ([]model.TrainerReport, error) {
	var reports []model.TrainerReport
	for _, id := range m.order {
		report, ok := m.reports[id]
		if !ok || report.Status != status {
			continue
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (m *mockTrainerReportRepo) Update(ctx context.Context, report *model.TrainerReport) error {
	if _, ok := m.reports[report.ReportID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.reports[report.ReportID] = report
	return nil
}

// ── VetReport ──

type mockVetReportRepo struct {
	reports   map[string]*model.VetReport
	order     []string
	idCounter int
}

func newMockVetReportRepo() *mockVetReportRepo {
	return &mockVetReportRepo{reports: make(map[string]*model.VetReport)}
}

func (m *mockVetReportRepo) Create(ctx context.Context, report *model.VetReport) error {
	if report.ReportID == "" {
		m.idCounter++
		report.ReportID = fmt.Sprintf("vreport-%03d", m.idCounter)
	}
	m.reports[report.ReportID] = report
	m.order = append(m.order, report.ReportID)
	return nil
}

func (m *mockVetReportRepo) GetByID(ctx context.Context, id string) (*model.VetReport, error) {
	report, ok := m.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (m *mockVetReportRepo) ListByProjectAndStatus(ctx context.Context, projectID, status string) ([]model.VetReport, error) {
	var reports []model.VetReport
	for _, id := range m.order {
		report, ok := m.reports[id]
		if !ok || report.ProjectID != projectID {
			continue
		}
		if status != "" && report.Status != status {
			continue
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (m *mockVetReportRepo) ListByStatus(ctx context.Context, status string) ([]model.VetReport, error) {
	var reports []model.VetReport
	for _, id := range m.order {
		report, ok := m.reports[id]
		if !ok || report.Status != status {
			continue
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (m *mockVetReportRepo) Update(ctx context.Context, report *model.VetReport) error {
	if _, ok := m.reports[report.ReportID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.reports[report.ReportID] = report
	return nil
}

// ── CaretakerReport ──

type mockCaretakerReportRepo struct {
	reports   map[string]*model.CaretakerReport
	order     []string
	idCounter int
}

func newMockCaretakerReportRepo() *mockCaretakerReportRepo {
	return &mockCaretakerReportRepo{reports: make(map[string]*model.CaretakerReport)}
}

func (m *mockCaretakerReportRepo) Create(ctx context.Context, report *model.CaretakerReport) error {
	if report.ReportID == "" {
		m.idCounter++
		report.ReportID = fmt.Sprintf("creport-%03d", m.idCounter)
	}
	m.reports[report.ReportID] = report
	m.order = append(m.order, report.ReportID)
	return nil
}

func (m *mockCaretakerReportRepo) GetByID(ctx context.Context, id string) (*model.CaretakerReport, error) {
	report, ok := m.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (m *mockCaretakerReportRepo) ListByProjectAndStatus(ctx context.Context, projectID, status string) ([]model.CaretakerReport, error) {
	var reports []model.CaretakerReport
	for _, id := range m.order {
		report, ok := m.reports[id]
		if !ok || report.ProjectID != projectID {
			continue
		}
		if status != "" && report.Status != status {
			continue
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (m *mockCaretakerReportRepo) ListByStatus(ctx context.Context, status string) ([]model.CaretakerReport, error) {
	var reports []model.CaretakerReport
	for _, id := range m.order {
		report, ok := m.reports[id]
		if !ok || report.Status != status {
			continue
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (m *mockCaretakerReportRepo) Update(ctx context.Context, report *model.CaretakerReport) error {
	if _, ok := m.reports[report.ReportID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.reports[report.ReportID] = report
	return nil
}

// ── ReportReview ──

type mockReportReviewRepo struct {
	reviews   []model.ReportReview
	idCounter int
	createErr error
}

func newMockReportReviewRepo() *mockReportReviewRepo {
	return &mockReportReviewRepo{}
}

func (m *mockReportReviewRepo) Create(ctx context.Context, review *model.ReportReview) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.idCounter++
	if review.ReviewID == "" {
		review.ReviewID = fmt.Sprintf("review-%03d", m.idCounter)
	}
	review.CreatedAt = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.idCounter) * time.Second)
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *mockReportReviewRepo) ListByReport(ctx context.Context, reportType, reportID string) ([]model.ReportReview, error) {
	var reviews []model.ReportReview
	for i := range m.reviews {
		if m.reviews[i].ReportType == reportType && m.reviews[i].ReportID == reportID {
			reviews = append(reviews, m.reviews[i])
		}
	}
	return reviews, nil
}

// ── Notification ──

type mockNotificationRepo struct {
	notifications []model.Notification
	idCounter     int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *model.Notification) error {
	m.idCounter++
	if notification.NotificationID == "" {
		notification.NotificationID = fmt.Sprintf("notify-%03d", m.idCounter)
	}
	m.notifications = append(m.notifications, *notification)
	return nil
}

func (m *mockNotificationRepo) BatchCreate(ctx context.Context, notifications []model.Notification) error {
	for i := range notifications {
		if err := m.Create(ctx, &notifications[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	for i := range m.notifications {
		if m.notifications[i].NotificationID == id {
			return &m.notifications[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	var matched []model.Notification
	for i := range m.notifications {
		n := m.notifications[i]
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		matched = append(matched, n)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	var n int64
	for i := range m.notifications {
		if m.notifications[i].UserID == userID && !m.notifications[i].IsRead {
			n++
		}
	}
	return n, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	for i := range m.notifications {
		if m.notifications[i].NotificationID == id && m.notifications[i].UserID == userID {
			m.notifications[i].IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	for i := range m.notifications {
		if m.notifications[i].UserID == userID {
			m.notifications[i].IsRead = true
		}
	}
	return nil
}

// forUser 按接收人过滤（测试断言用）
func (m *mockNotificationRepo) forUser(userID string) []model.Notification {
	var matched []model.Notification
	for i := range m.notifications {
		if m.notifications[i].UserID == userID {
			matched = append(matched, m.notifications[i])
		}
	}
	return matched
}

// ── Attachment ──

type mockAttachmentRepo struct {
	attachments []model.Attachment
	idCounter   int
}

func newMockAttachmentRepo() *mockAttachmentRepo {
	return &mockAttachmentRepo{}
}

func (m *mockAttachmentRepo) Create(ctx context.Context, attachment *model.Attachment) error {
	m.idCounter++
	if attachment.AttachmentID == "" {
		attachment.AttachmentID = fmt.Sprintf("attach-%03d", m.idCounter)
	}
	m.attachments = append(m.attachments, *attachment)
	return nil
}

func (m *mockAttachmentRepo) GetByID(ctx context.Context, id string) (*model.Attachment, error) {
	for i := range m.attachments {
		if m.attachments[i].AttachmentID == id {
			return &m.attachments[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttachmentRepo) ListByReport(ctx context.Context, reportType, reportID string) ([]model.Attachment, error) {
	var attachments []model.Attachment
	for i := range m.attachments {
		if m.attachments[i].ReportType == reportType && m.attachments[i].ReportID == reportID {
			attachments = append(attachments, m.attachments[i])
		}
	}
	return attachments, nil
}

// ── 聚合 ──

// mockRepos 全部内存仓储与聚合入口
type mockRepos struct {
	user            *mockUserRepo
	project         *mockProjectRepo
	dog             *mockDogRepo
	location        *mockLocationRepo
	shift           *mockShiftRepo
	schedule        *mockScheduleRepo
	item            *mockScheduleItemRepo
	changeLog       *mockChangeLogRepo
	shiftReport     *mockShiftReportRepo
	handlerReport   *mockHandlerReportRepo
	trainerReport   *mockTrainerReportRepo
	vetReport       *mockVetReportRepo
	caretakerReport *mockCaretakerReportRepo
	review          *mockReportReviewRepo
	notification    *mockNotificationRepo
	attachment      *mockAttachmentRepo

	repo *repository.Repository
}

func newMockRepos() *mockRepos {
	m := &mockRepos{
		user:            newMockUserRepo(),
		project:         newMockProjectRepo(),
		dog:             newMockDogRepo(),
		location:        newMockLocationRepo(),
		shift:           newMockShiftRepo(),
		schedule:        newMockScheduleRepo(),
		item:            newMockScheduleItemRepo(),
		changeLog:       newMockChangeLogRepo(),
		shiftReport:     newMockShiftReportRepo(),
		handlerReport:   newMockHandlerReportRepo(),
		trainerReport:   newMockTrainerReportRepo(),
		vetReport:       newMockVetReportRepo(),
		caretakerReport: newMockCaretakerReportRepo(),
		review:          newMockReportReviewRepo(),
		notification:    newMockNotificationRepo(),
		attachment:      newMockAttachmentRepo(),
	}

	// 跨仓储引用：模拟关联查询与计数
	m.schedule.items = m.item
	m.item.schedules = m.schedule
	m.shift.items = m.item
	m.shift.reports = m.shiftReport
	m.shiftReport.items = m.item
	m.handlerReport.items = m.item

	m.repo = &repository.Repository{
		User:            m.user,
		Project:         m.project,
		Dog:             m.dog,
		Location:        m.location,
		Shift:           m.shift,
		Schedule:        m.schedule,
		ScheduleItem:    m.item,
		ChangeLog:       m.changeLog,
		ShiftReport:     m.shiftReport,
		HandlerReport:   m.handlerReport,
		TrainerReport:   m.trainerReport,
		VetReport:       m.vetReport,
		CaretakerReport: m.caretakerReport,
		ReportReview:    m.review,
		Notification:    m.notification,
		Attachment:      m.attachment,
	}
	return m
}

// [自证通过] internal/service/mock_repos_test.go
