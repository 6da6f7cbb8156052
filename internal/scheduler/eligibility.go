package scheduler

import (
	"sort"
	"time"

	"github.com/Azuma86/scheduler/internal/domain"
)

// varKey 是稀疏决策变量空间的复合键
// 键不存在表示该（任务，员工，角色）组合在结构上不可能成立，
// 与"存在但取值为假"是两个不同的概念
type varKey struct {
	TaskID string
	Staff  string
	Role   domain.Role
}

// variableSpace 保存资格过滤后允许存在的决策变量键
// 它在一次排班尝试中构建一次，此后不再变化
type variableSpace struct {
	keys  []varKey // 确定性顺序：任务序 × 角色名序 × 员工序
	index map[varKey]struct{}
}

func (vs *variableSpace) has(k varKey) bool {
	_, ok := vs.index[k]
	return ok
}

// sortedRoles 按角色名排序返回需求表中的角色，保证遍历顺序确定
func sortedRoles(req map[domain.Role]int32) []domain.Role {
	roles := make([]domain.Role, 0, len(req))
	for role := range req {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// coversTask 判断员工的空闲时间窗口是否完整覆盖任务的 [start, end]
// 窗口要么指定了具体日期，要么按星期重复
func coversTask(windows []domain.AvailabilityWindow, task *domain.Task) bool {
	date, err := time.Parse(dateLayout, task.Date)
	if err != nil {
		return false
	}
	weekday := domain.WeekdayOf(date)

	for _, w := range windows {
		if w.Date != "" {
			if w.Date != task.Date {
				continue
			}
		} else if w.Weekday != weekday {
			continue
		}
		if w.StartMinute <= task.StartMinute && w.EndMinute >= task.EndMinute {
			return true
		}
	}
	return false
}

// buildVariableSpace 对每个（任务，需求角色，员工）组合做资格过滤：
// 员工必须具备该角色能力，且空闲时间完整覆盖任务时段
// 窗口在此之前已做过规范化（重叠合并）
func buildVariableSpace(tasks []domain.Task, staffs []domain.Staff) *variableSpace {
	vs := &variableSpace{index: make(map[varKey]struct{})}

	for ti := range tasks {
		task := &tasks[ti]
		for _, role := range sortedRoles(task.Requirements) {
			for si := range staffs {
				staff := &staffs[si]
				if !staff.HasRole(role) {
					continue
				}
				if !coversTask(staff.Windows, task) {
					continue
				}
				k := varKey{TaskID: task.ID, Staff: staff.Name, Role: role}
				vs.keys = append(vs.keys, k)
				vs.index[k] = struct{}{}
			}
		}
	}

	return vs
}

// checkEligibilityGaps 在 strict 模式下于求解前检查每个（任务，角色）
// 的候选人数是否足够，不足时直接上报缺口而不是让求解器失败
func checkEligibilityGaps(tasks []domain.Task, staffs []domain.Staff, vs *variableSpace) error {
	for ti := range tasks {
		task := &tasks[ti]
		for _, role := range sortedRoles(task.Requirements) {
			required := task.Requirements[role]
			if required <= 0 {
				continue
			}
			eligible := int32(0)
			for si := range staffs {
				if vs.has(varKey{TaskID: task.ID, Staff: staffs[si].Name, Role: role}) {
					eligible++
				}
			}
			if eligible < required {
				return &EligibilityGapError{TaskID: task.ID, Role: role, Required: required, Eligible: eligible}
			}
		}
	}
	return nil
}
