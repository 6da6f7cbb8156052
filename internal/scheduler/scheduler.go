package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Azuma86/scheduler/internal/domain"
	"github.com/Azuma86/scheduler/internal/solver"
	"github.com/Azuma86/scheduler/internal/utils"
)

// 与原始应用保持一致的默认求解时间预算
const DefaultTimeBudget = 30 * time.Second

// Scheduler 承载一次排班尝试的全部输入
// 每次请求构造一个新实例，求解结束后即被丢弃，没有跨请求的共享状态
type Scheduler struct {
	req      *domain.SchedulingRequest
	newModel func() solver.Model
}

// New 对请求做结构性校验并构造排班器
// 所有 ConfigurationError 都在这里和 GenerateTasks 中检出，不会到达求解器
func New(req *domain.SchedulingRequest) (*Scheduler, error) {
	if len(req.Roles) == 0 {
		return nil, &ConfigurationError{Field: "roles", Reason: "角色列表不能为空"}
	}
	if len(req.Staffs) == 0 {
		return nil, &ConfigurationError{Field: "staffs", Reason: "员工列表不能为空"}
	}

	switch req.CoverageMode {
	case domain.CoverageStrict, domain.CoverageRelaxed:
	default:
		return nil, &ConfigurationError{Field: "coverageMode", Reason: fmt.Sprintf("未知的覆盖模式 %q", req.CoverageMode)}
	}

	seen := make(map[string]bool, len(req.Staffs))
	for _, staff := range req.Staffs {
		if staff.Name == "" {
			return nil, &ConfigurationError{Field: "staffs", Reason: "员工姓名不能为空"}
		}
		if seen[staff.Name] {
			return nil, &ConfigurationError{Field: "staffs", Reason: fmt.Sprintf("员工 %s 重复出现", staff.Name)}
		}
		seen[staff.Name] = true
	}
	for _, name := range req.CoreMembers {
		if !seen[name] {
			return nil, &ConfigurationError{Field: "coreMembers", Reason: fmt.Sprintf("核心成员 %s 不在员工列表中", name)}
		}
	}

	// 启用的规则必须带有对应的数值参数
	if req.Rules.IsEnabled(domain.RuleDailyHourLimit) && req.Rules.MaxDailyMinutes <= 0 {
		return nil, &ConfigurationError{Field: "rules.maxDailyMinutes", Reason: "启用单日时长限制时必须给出正的分钟数上限"}
	}
	if req.Rules.IsEnabled(domain.RuleBreak) {
		if req.Rules.BreakThresholdMinutes <= 0 {
			return nil, &ConfigurationError{Field: "rules.breakThresholdMinutes", Reason: "启用休息规则时必须给出正的触发时长"}
		}
		if req.Rules.BreakDurationMinutes <= 0 {
			return nil, &ConfigurationError{Field: "rules.breakDurationMinutes", Reason: "启用休息规则时必须给出正的休息时长"}
		}
	}

	return &Scheduler{
		req:      req,
		newModel: solver.NewModel,
	}, nil
}

// Schedule 执行一次完整的同步排班流水线：
// 任务展开 → 资格过滤 → 约束建模 → 求解 → 结果提取，
// 最后像人工复核一样对产出的排班做一次独立校验
func (s *Scheduler) Schedule(ctx context.Context) (*domain.ScheduleResult, error) {
	tasks, err := GenerateTasks(s.req)
	if err != nil {
		return nil, err
	}

	// 复制员工并规范化空闲窗口，保证流水线内不修改调用方的数据
	staffs := make([]domain.Staff, len(s.req.Staffs))
	copy(staffs, s.req.Staffs)
	for i := range staffs {
		staffs[i].Windows = domain.NormalizeWindows(staffs[i].Windows)
	}

	vs := buildVariableSpace(tasks, staffs)

	if s.req.CoverageMode == domain.CoverageStrict {
		if err := checkEligibilityGaps(tasks, staffs, vs); err != nil {
			return nil, err
		}
	}

	m := s.newModel()
	vars := buildModel(m, tasks, staffs, vs, &s.req.Rules, s.req.CoverageMode, s.req.CoreMembers)

	budget := DefaultTimeBudget
	if s.req.TimeBudgetSeconds > 0 {
		budget = time.Duration(s.req.TimeBudgetSeconds) * time.Second
	}

	status := m.Solve(ctx, budget)
	switch status {
	case solver.StatusInfeasible:
		return nil, &InfeasibleModelError{}
	case solver.StatusTimeoutNoSolution:
		return nil, &TimeoutNoSolutionError{Budget: budget}
	}

	assignments, shortfalls := extractResults(m, tasks, vs, vars)

	// 独立于求解器再校验一遍结果，这里报错说明建模有缺陷
	if err := utils.ValidateAssignmentsWithStaffs(assignments, tasks, staffs); err != nil {
		return nil, err
	}
	if err := utils.ValidateNoDuplicateStaffInTask(assignments); err != nil {
		return nil, err
	}

	result := &domain.ScheduleResult{
		Status:      domain.ScheduleStatusFeasible,
		Assignments: assignments,
		Shortfalls:  shortfalls,
	}
	if status == solver.StatusOptimal {
		result.Status = domain.ScheduleStatusOptimal
	}

	return result, nil
}
