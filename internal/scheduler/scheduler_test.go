package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/Azuma86/scheduler/internal/domain"
)

// 2025-04-07 是周一
const testDate = "2025-04-07"

func allDayStaff(name string, roles ...domain.Role) domain.Staff {
	return domain.Staff{
		Name:  name,
		Roles: roles,
		Windows: []domain.AvailabilityWindow{
			{Date: testDate, StartMinute: 0, EndMinute: 24 * 60},
		},
	}
}

func baseRequest() *domain.SchedulingRequest {
	return &domain.SchedulingRequest{
		StartDate:         testDate,
		EndDate:           testDate,
		ShiftMode:         domain.ShiftModeFixed,
		Roles:             []domain.Role{"厨房"},
		CoverageMode:      domain.CoverageStrict,
		TimeBudgetSeconds: 5,
	}
}

func mustSchedule(t *testing.T, req *domain.SchedulingRequest) *domain.ScheduleResult {
	t.Helper()
	sched, err := New(req)
	if err != nil {
		t.Fatalf("构造排班器失败: %v", err)
	}
	result, err := sched.Schedule(context.Background())
	if err != nil {
		t.Fatalf("排班失败: %v", err)
	}
	return result
}

// 两个任务、两名员工、启用公平性规则时，应该一人一个任务且差距为 0
func TestScheduleBalancedAcrossStaff(t *testing.T) {
	req := baseRequest()
	req.FixedShifts = []domain.FixedShiftDef{
		{Name: "早班", StartTime: "09:00", EndTime: "13:00", Requirements: map[domain.Role]int32{"厨房": 1}},
		{Name: "晚班", StartTime: "14:00", EndTime: "18:00", Requirements: map[domain.Role]int32{"厨房": 1}},
	}
	req.Staffs = []domain.Staff{allDayStaff("张三", "厨房"), allDayStaff("李四", "厨房")}
	req.Rules = domain.RuleConfig{Enabled: []domain.RuleName{domain.RuleWorkloadBalance}}

	result := mustSchedule(t, req)

	if result.Status != domain.ScheduleStatusOptimal {
		t.Errorf("期望 OPTIMAL，实际为 %s", result.Status)
	}
	if len(result.Assignments) != 2 {
		t.Fatalf("期望 2 条排班记录，实际为 %d", len(result.Assignments))
	}

	counts := make(map[string]int)
	for _, a := range result.Assignments {
		counts[a.StaffName]++
	}
	if counts["张三"] != 1 || counts["李四"] != 1 {
		t.Errorf("期望每人各排 1 次，实际为 %v", counts)
	}
	if len(result.Shortfalls) != 0 {
		t.Errorf("strict 模式下不应出现人数缺口: %v", result.Shortfalls)
	}
}

// 休息规则：前一个任务时长达到阈值后，休息结束前开始的任务不能排同一个人
func TestScheduleBreakRule(t *testing.T) {
	req := baseRequest()
	req.FixedShifts = []domain.FixedShiftDef{
		{Name: "长班", StartTime: "09:00", EndTime: "14:00", Requirements: map[domain.Role]int32{"厨房": 1}},
		{Name: "接班", StartTime: "14:30", EndTime: "16:00", Requirements: map[domain.Role]int32{"厨房": 1}},
	}
	req.Staffs = []domain.Staff{allDayStaff("张三", "厨房"), allDayStaff("李四", "厨房")}
	req.Rules = domain.RuleConfig{
		Enabled:               []domain.RuleName{domain.RuleBreak},
		BreakThresholdMinutes: 240,
		BreakDurationMinutes:  60,
	}

	result := mustSchedule(t, req)

	byTask := make(map[string]string)
	for _, a := range result.Assignments {
		byTask[a.TaskID] = a.StaffName
	}
	if byTask[testDate+"_长班"] == byTask[testDate+"_接班"] {
		t.Errorf("14:30 < 14:00+60min，两个任务不应排同一个人: %v", byTask)
	}
}

// strict 模式下候选人数不足时，求解前就应该上报缺口并定位到（任务，角色）
func TestScheduleStrictEligibilityGap(t *testing.T) {
	req := baseRequest()
	req.Roles = []domain.Role{"厨房", "大堂"}
	req.FixedShifts = []domain.FixedShiftDef{
		{Name: "早班", StartTime: "09:00", EndTime: "13:00", Requirements: map[domain.Role]int32{"厨房": 2}},
	}
	req.Staffs = []domain.Staff{allDayStaff("张三", "厨房"), allDayStaff("李四", "大堂")}

	sched, err := New(req)
	if err != nil {
		t.Fatalf("构造排班器失败: %v", err)
	}
	result, err := sched.Schedule(context.Background())
	if result != nil {
		t.Errorf("strict 模式缺口时不应返回部分排班结果")
	}

	var gapErr *EligibilityGapError
	if !errors.As(err, &gapErr) {
		t.Fatalf("期望 EligibilityGapError，实际为 %v", err)
	}
	if gapErr.TaskID != testDate+"_早班" || gapErr.Role != "厨房" {
		t.Errorf("缺口定位错误: %+v", gapErr)
	}
	if gapErr.Required != 2 || gapErr.Eligible != 1 {
		t.Errorf("缺口人数错误: %+v", gapErr)
	}
}

// relaxed 模式下同样的输入应该排上能排的人，并报告缺口
func TestScheduleRelaxedShortfall(t *testing.T) {
	req := baseRequest()
	req.Roles = []domain.Role{"厨房", "大堂"}
	req.CoverageMode = domain.CoverageRelaxed
	req.FixedShifts = []domain.FixedShiftDef{
		{Name: "早班", StartTime: "09:00", EndTime: "13:00", Requirements: map[domain.Role]int32{"厨房": 2}},
	}
	req.Staffs = []domain.Staff{allDayStaff("张三", "厨房"), allDayStaff("李四", "大堂")}

	result := mustSchedule(t, req)

	if len(result.Assignments) != 1 {
		t.Fatalf("期望 1 条排班记录，实际为 %d", len(result.Assignments))
	}
	if result.Assignments[0].StaffName != "张三" {
		t.Errorf("期望排上张三，实际为 %s", result.Assignments[0].StaffName)
	}
	if len(result.Shortfalls) != 1 {
		t.Fatalf("期望 1 条缺口记录，实际为 %d", len(result.Shortfalls))
	}
	sf := result.Shortfalls[0]
	if sf.TaskID != testDate+"_早班" || sf.Role != "厨房" || sf.Missing != 1 {
		t.Errorf("缺口记录错误: %+v", sf)
	}
}

// relaxed 模式下覆盖需求与排他约束冲突时不能无解：
// 唯一的员工两个角色只能占一个，另一个角色以缺口上报
func TestScheduleRelaxedExclusivityConflict(t *testing.T) {
	req := baseRequest()
	req.Roles = []domain.Role{"厨房", "大堂"}
	req.CoverageMode = domain.CoverageRelaxed
	req.FixedShifts = []domain.FixedShiftDef{
		{Name: "早班", StartTime: "09:00", EndTime: "13:00", Requirements: map[domain.Role]int32{"厨房": 1, "大堂": 1}},
	}
	req.Staffs = []domain.Staff{allDayStaff("张三", "厨房", "大堂")}

	result := mustSchedule(t, req)

	if len(result.Assignments) != 1 {
		t.Fatalf("期望 1 条排班记录，实际为 %d", len(result.Assignments))
	}
	if len(result.Shortfalls) != 1 {
		t.Fatalf("期望 1 条缺口记录，实际为 %d", len(result.Shortfalls))
	}
	if result.Assignments[0].Role == result.Shortfalls[0].Role {
		t.Errorf("排上的角色与缺口角色不应相同: %+v / %+v", result.Assignments[0], result.Shortfalls[0])
	}
	if result.Shortfalls[0].Missing != 1 {
		t.Errorf("缺口人数错误: %+v", result.Shortfalls[0])
	}
}

// relaxed 模式下覆盖需求与休息规则冲突时同样只能上报缺口
func TestScheduleRelaxedBreakRuleConflict(t *testing.T) {
	req := baseRequest()
	req.CoverageMode = domain.CoverageRelaxed
	req.FixedShifts = []domain.FixedShiftDef{
		{Name: "长班", StartTime: "09:00", EndTime: "14:00", Requirements: map[domain.Role]int32{"厨房": 1}},
		{Name: "接班", StartTime: "14:30", EndTime: "16:00", Requirements: map[domain.Role]int32{"厨房": 1}},
	}
	req.Staffs = []domain.Staff{allDayStaff("张三", "厨房")}
	req.Rules = domain.RuleConfig{
		Enabled:               []domain.RuleName{domain.RuleBreak},
		BreakThresholdMinutes: 240,
		BreakDurationMinutes:  60,
	}

	result := mustSchedule(t, req)

	if len(result.Assignments) != 1 {
		t.Fatalf("张三只能承担其中一个任务，实际排了 %d 个", len(result.Assignments))
	}
	if len(result.Shortfalls) != 1 {
		t.Fatalf("期望 1 条缺口记录，实际为 %d", len(result.Shortfalls))
	}
	if result.Assignments[0].TaskID == result.Shortfalls[0].TaskID {
		t.Errorf("排上的任务与缺口任务不应相同: %+v / %+v", result.Assignments[0], result.Shortfalls[0])
	}
}

// 同一任务内一人只能担任一个角色
func TestScheduleExclusivity(t *testing.T) {
	req := baseRequest()
	req.Roles = []domain.Role{"厨房", "大堂"}
	req.FixedShifts = []domain.FixedShiftDef{
		{Name: "早班", StartTime: "09:00", EndTime: "13:00", Requirements: map[domain.Role]int32{"厨房": 1, "大堂": 1}},
	}
	req.Staffs = []domain.Staff{allDayStaff("张三", "厨房", "大堂"), allDayStaff("李四", "厨房")}

	result := mustSchedule(t, req)

	if len(result.Assignments) != 2 {
		t.Fatalf("期望 2 条排班记录，实际为 %d", len(result.Assignments))
	}
	byRole := make(map[domain.Role]string)
	for _, a := range result.Assignments {
		byRole[a.Role] = a.StaffName
	}
	// 大堂只有张三能排，所以厨房必须由李四补上
	if byRole["大堂"] != "张三" || byRole["厨房"] != "李四" {
		t.Errorf("排班结果不符合排他约束: %v", byRole)
	}
}

// 单日时长上限：唯一的员工无法同时承担两个 4 小时任务
func TestScheduleDailyHourLimitInfeasible(t *testing.T) {
	req := baseRequest()
	req.FixedShifts = []domain.FixedShiftDef{
		{Name: "早班", StartTime: "09:00", EndTime: "13:00", Requirements: map[domain.Role]int32{"厨房": 1}},
		{Name: "晚班", StartTime: "14:00", EndTime: "18:00", Requirements: map[domain.Role]int32{"厨房": 1}},
	}
	req.Staffs = []domain.Staff{allDayStaff("张三", "厨房")}
	req.Rules = domain.RuleConfig{
		Enabled:         []domain.RuleName{domain.RuleDailyHourLimit},
		MaxDailyMinutes: 300,
	}

	sched, err := New(req)
	if err != nil {
		t.Fatalf("构造排班器失败: %v", err)
	}
	_, err = sched.Schedule(context.Background())

	var infeasibleErr *InfeasibleModelError
	if !errors.As(err, &infeasibleErr) {
		t.Fatalf("期望 InfeasibleModelError，实际为 %v", err)
	}
}

// 核心成员保证：每个任务至少要有一名核心成员
func TestScheduleCoreCoverage(t *testing.T) {
	req := baseRequest()
	req.FixedShifts = []domain.FixedShiftDef{
		{Name: "早班", StartTime: "09:00", EndTime: "13:00", Requirements: map[domain.Role]int32{"厨房": 1}},
		{Name: "晚班", StartTime: "14:00", EndTime: "18:00", Requirements: map[domain.Role]int32{"厨房": 1}},
	}
	req.Staffs = []domain.Staff{allDayStaff("王伟", "厨房"), allDayStaff("李四", "厨房")}
	req.CoreMembers = []string{"王伟"}
	req.Rules = domain.RuleConfig{Enabled: []domain.RuleName{domain.RuleCoreCoverage}}

	result := mustSchedule(t, req)

	coreByTask := make(map[string]bool)
	for _, a := range result.Assignments {
		if a.StaffName == "王伟" {
			coreByTask[a.TaskID] = true
		}
	}
	if len(coreByTask) != 2 {
		t.Errorf("每个任务都应包含核心成员王伟，实际覆盖了 %d 个任务", len(coreByTask))
	}
}

// 按星期重复的空闲窗口应该覆盖对应星期的日期
func TestScheduleWeekdayWindow(t *testing.T) {
	req := baseRequest()
	req.FixedShifts = []domain.FixedShiftDef{
		{Name: "早班", StartTime: "09:00", EndTime: "13:00", Requirements: map[domain.Role]int32{"厨房": 1}},
	}
	req.Staffs = []domain.Staff{
		{
			Name:  "张三",
			Roles: []domain.Role{"厨房"},
			Windows: []domain.AvailabilityWindow{
				{Weekday: 1, StartMinute: 8 * 60, EndMinute: 20 * 60}, // 每周一
			},
		},
	}

	result := mustSchedule(t, req)

	if len(result.Assignments) != 1 {
		t.Fatalf("期望 1 条排班记录，实际为 %d", len(result.Assignments))
	}
	if result.Assignments[0].TimeRange != "09:00–13:00" {
		t.Errorf("时间段格式错误: %s", result.Assignments[0].TimeRange)
	}
}

// 启用规则但缺少数值参数时应在构造阶段报配置错误
func TestNewMissingRuleParameter(t *testing.T) {
	req := baseRequest()
	req.FixedShifts = []domain.FixedShiftDef{
		{Name: "早班", StartTime: "09:00", EndTime: "13:00", Requirements: map[domain.Role]int32{"厨房": 1}},
	}
	req.Staffs = []domain.Staff{allDayStaff("张三", "厨房")}
	req.Rules = domain.RuleConfig{Enabled: []domain.RuleName{domain.RuleBreak}}

	_, err := New(req)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("期望 ConfigurationError，实际为 %v", err)
	}
}

func TestNewUnknownCoreMember(t *testing.T) {
	req := baseRequest()
	req.FixedShifts = []domain.FixedShiftDef{
		{Name: "早班", StartTime: "09:00", EndTime: "13:00", Requirements: map[domain.Role]int32{"厨房": 1}},
	}
	req.Staffs = []domain.Staff{allDayStaff("张三", "厨房")}
	req.CoreMembers = []string{"不存在的人"}

	_, err := New(req)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("期望 ConfigurationError，实际为 %v", err)
	}
}
