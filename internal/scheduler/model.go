package scheduler

import (
	"sort"

	"github.com/Azuma86/scheduler/internal/domain"
	"github.com/Azuma86/scheduler/internal/solver"
)

// buildModel 为变量空间中的每个键创建一个布尔决策变量，
// 并按启用的规则提交覆盖、排他、休息、单日时长和核心成员约束，
// 最后设置目标函数：relaxed 模式最大化排班人数，
// 启用公平性规则时附加最小化排班次数差距
func buildModel(
	m solver.Model,
	tasks []domain.Task,
	staffs []domain.Staff,
	vs *variableSpace,
	rules *domain.RuleConfig,
	mode domain.CoverageMode,
	coreMembers []string,
) map[varKey]solver.Var {
	vars := make(map[varKey]solver.Var, len(vs.keys))
	for _, k := range vs.keys {
		vars[k] = m.NewBoolVar()
	}

	// 约束① 必要人数
	// strict 模式要求 Σx == r；relaxed 模式只约束 Σx <= r，
	// 不设结构性下界——下界会和排他、休息等规则冲突导致整体无解，
	// 排满席位交给目标函数，缺口由 Shortfall 上报
	for ti := range tasks {
		task := &tasks[ti]
		for _, role := range sortedRoles(task.Requirements) {
			required := int64(task.Requirements[role])
			var terms []solver.Term
			for si := range staffs {
				if v, ok := vars[varKey{TaskID: task.ID, Staff: staffs[si].Name, Role: role}]; ok {
					terms = append(terms, solver.Term{Var: v, Coeff: 1})
				}
			}
			if len(terms) == 0 {
				continue
			}
			switch mode {
			case domain.CoverageStrict:
				m.AddLinear(terms, required, required)
			default:
				m.AddLinear(terms, 0, required)
			}
		}
	}

	// 约束② 同一任务内一人一角
	for ti := range tasks {
		task := &tasks[ti]
		for si := range staffs {
			var terms []solver.Term
			for _, role := range sortedRoles(task.Requirements) {
				if v, ok := vars[varKey{TaskID: task.ID, Staff: staffs[si].Name, Role: role}]; ok {
					terms = append(terms, solver.Term{Var: v, Coeff: 1})
				}
			}
			if len(terms) >= 2 {
				m.AddLinear(terms, 0, 1)
			}
		}
	}

	// 约束③ 休息时间规则
	// 时间条件是契约本身；这里按（日期，开始时间）排序后枚举同日的
	// 全部有序任务对，而不是只看相邻对，保证不漏掉任何真实违例
	if rules.IsEnabled(domain.RuleBreak) {
		sorted := make([]*domain.Task, len(tasks))
		for i := range tasks {
			sorted[i] = &tasks[i]
		}
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].Date != sorted[j].Date {
				return sorted[i].Date < sorted[j].Date
			}
			return sorted[i].StartMinute < sorted[j].StartMinute
		})

		for i := 0; i < len(sorted); i++ {
			a := sorted[i]
			if a.DurationMinutes() < rules.BreakThresholdMinutes {
				continue
			}
			for j := i + 1; j < len(sorted); j++ {
				b := sorted[j]
				if b.Date != a.Date {
					break
				}
				if b.StartMinute >= a.EndMinute+rules.BreakDurationMinutes {
					continue
				}
				for si := range staffs {
					staff := &staffs[si]
					for _, ra := range sortedRoles(a.Requirements) {
						va, ok := vars[varKey{TaskID: a.ID, Staff: staff.Name, Role: ra}]
						if !ok {
							continue
						}
						for _, rb := range sortedRoles(b.Requirements) {
							vb, ok := vars[varKey{TaskID: b.ID, Staff: staff.Name, Role: rb}]
							if !ok {
								continue
							}
							m.AddLinear([]solver.Term{{Var: va, Coeff: 1}, {Var: vb, Coeff: 1}}, 0, 1)
						}
					}
				}
			}
		}
	}

	// 约束④ 单日最大工作时长（按任务时长加权）
	if rules.IsEnabled(domain.RuleDailyHourLimit) {
		dates := make([]string, 0)
		seen := make(map[string]bool)
		for ti := range tasks {
			if !seen[tasks[ti].Date] {
				seen[tasks[ti].Date] = true
				dates = append(dates, tasks[ti].Date)
			}
		}
		for _, date := range dates {
			for si := range staffs {
				staff := &staffs[si]
				var terms []solver.Term
				for ti := range tasks {
					task := &tasks[ti]
					if task.Date != date {
						continue
					}
					for _, role := range sortedRoles(task.Requirements) {
						if v, ok := vars[varKey{TaskID: task.ID, Staff: staff.Name, Role: role}]; ok {
							terms = append(terms, solver.Term{Var: v, Coeff: int64(task.DurationMinutes())})
						}
					}
				}
				if len(terms) > 0 {
					m.AddLinear(terms, 0, int64(rules.MaxDailyMinutes))
				}
			}
		}
	}

	// 约束⑤ 核心成员保证：每个任务至少有一名核心成员（任意角色）
	// 没有任何核心成员候选变量的任务不提交该约束，
	// 否则空和 >= 1 会让整个模型无解
	if rules.IsEnabled(domain.RuleCoreCoverage) && len(coreMembers) > 0 {
		core := make(map[string]bool, len(coreMembers))
		for _, name := range coreMembers {
			core[name] = true
		}
		for ti := range tasks {
			task := &tasks[ti]
			var terms []solver.Term
			for si := range staffs {
				staff := &staffs[si]
				if !core[staff.Name] {
					continue
				}
				for _, role := range sortedRoles(task.Requirements) {
					if v, ok := vars[varKey{TaskID: task.ID, Staff: staff.Name, Role: role}]; ok {
						terms = append(terms, solver.Term{Var: v, Coeff: 1})
					}
				}
			}
			if len(terms) > 0 {
				m.AddLinear(terms, 1, solver.NoUpper)
			}
		}
	}

	// 目标函数
	// relaxed 模式优先最大化排班人数（没有下界约束，排满靠这里保证）；
	// 启用公平性规则时再最小化排班次数的最大最小差距（勤务次数偏差）。
	// 两者叠加时排班人数的权重取任务数 + 1，严格压过差距项
	n := int64(len(tasks))
	var objective []solver.Term

	if mode == domain.CoverageRelaxed {
		fillWeight := int64(1)
		if rules.IsEnabled(domain.RuleWorkloadBalance) {
			fillWeight = n + 1 // 差距最大不超过任务数
		}
		for _, k := range vs.keys {
			objective = append(objective, solver.Term{Var: vars[k], Coeff: -fillWeight})
		}
	}

	if rules.IsEnabled(domain.RuleWorkloadBalance) {
		counts := make([]solver.Var, 0, len(staffs))
		for si := range staffs {
			staff := &staffs[si]
			cnt := m.NewIntVar(0, n)
			terms := []solver.Term{{Var: cnt, Coeff: -1}}
			for _, k := range vs.keys {
				if k.Staff == staff.Name {
					terms = append(terms, solver.Term{Var: vars[k], Coeff: 1})
				}
			}
			m.AddLinear(terms, 0, 0)
			counts = append(counts, cnt)
		}

		maxCnt := m.NewIntVar(0, n)
		minCnt := m.NewIntVar(0, n)
		m.AddMaxEquality(maxCnt, counts)
		m.AddMinEquality(minCnt, counts)
		objective = append(objective, solver.Term{Var: maxCnt, Coeff: 1}, solver.Term{Var: minCnt, Coeff: -1})
	}

	if len(objective) > 0 {
		m.Minimize(objective)
	}

	return vars
}
