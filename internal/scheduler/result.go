package scheduler

import (
	"fmt"
	"sort"

	"github.com/Azuma86/scheduler/internal/domain"
	"github.com/Azuma86/scheduler/internal/solver"
)

// formatTimeRange 将任务时段格式化为 HH:MM–HH:MM
func formatTimeRange(task *domain.Task) string {
	return fmt.Sprintf("%02d:%02d–%02d:%02d",
		task.StartMinute/60, task.StartMinute%60,
		task.EndMinute/60, task.EndMinute%60)
}

// extractResults 将求解后的变量取值转换成排班记录，
// 并为每个实际人数少于需求人数的（任务，角色）生成缺口记录
func extractResults(m solver.Model, tasks []domain.Task, vs *variableSpace, vars map[varKey]solver.Var) ([]domain.Assignment, []domain.Shortfall) {
	taskByID := make(map[string]*domain.Task, len(tasks))
	for i := range tasks {
		taskByID[tasks[i].ID] = &tasks[i]
	}

	var assignments []domain.Assignment
	assigned := make(map[varKey]bool)
	for _, k := range vs.keys {
		if m.Value(vars[k]) != 1 {
			continue
		}
		assigned[k] = true
		task := taskByID[k.TaskID]
		assignments = append(assignments, domain.Assignment{
			Date:      task.Date,
			TaskID:    task.ID,
			StaffName: k.Staff,
			Role:      k.Role,
			TimeRange: formatTimeRange(task),
		})
	}

	sort.Slice(assignments, func(i, j int) bool {
		a, b := &assignments[i], &assignments[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.TaskID != b.TaskID {
			return a.TaskID < b.TaskID
		}
		if a.Role != b.Role {
			return a.Role < b.Role
		}
		return a.StaffName < b.StaffName
	})

	var shortfalls []domain.Shortfall
	for ti := range tasks {
		task := &tasks[ti]
		for _, role := range sortedRoles(task.Requirements) {
			required := task.Requirements[role]
			got := int32(0)
			for _, k := range vs.keys {
				if k.TaskID == task.ID && k.Role == role && assigned[k] {
					got++
				}
			}
			if got < required {
				shortfalls = append(shortfalls, domain.Shortfall{
					Date:    task.Date,
					TaskID:  task.ID,
					Role:    role,
					Missing: required - got,
				})
			}
		}
	}

	return assignments, shortfalls
}
