package utils

import (
	"fmt"
	"time"

	"github.com/Azuma86/scheduler/internal/domain"
)

// 对排班结果做独立于求解器的复核
// 这里发现的问题说明建模或提取环节有缺陷，而不是输入不合法

func findStaff(staffs []domain.Staff, name string) *domain.Staff {
	for i := range staffs {
		if staffs[i].Name == name {
			return &staffs[i]
		}
	}
	return nil
}

func findTask(tasks []domain.Task, id string) *domain.Task {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}

func windowCovers(w *domain.AvailabilityWindow, task *domain.Task) bool {
	if w.Date != "" {
		if w.Date != task.Date {
			return false
		}
	} else {
		date, err := time.Parse("2006-01-02", task.Date)
		if err != nil || domain.WeekdayOf(date) != w.Weekday {
			return false
		}
	}
	return w.StartMinute <= task.StartMinute && w.EndMinute >= task.EndMinute
}

// ValidateAssignmentsWithStaffs 检查每条排班记录的员工
// 是否具备所排角色的能力，且空闲时间覆盖任务时段
func ValidateAssignmentsWithStaffs(assignments []domain.Assignment, tasks []domain.Task, staffs []domain.Staff) error {
	for _, a := range assignments {
		task := findTask(tasks, a.TaskID)
		if task == nil {
			return fmt.Errorf("排班记录引用了不存在的任务 %s", a.TaskID)
		}

		staff := findStaff(staffs, a.StaffName)
		if staff == nil {
			return fmt.Errorf("任务 %s 中的员工 %s 不在员工列表中", a.TaskID, a.StaffName)
		}
		if !staff.HasRole(a.Role) {
			return fmt.Errorf("员工 %s 不具备任务 %s 所需的角色 %s", a.StaffName, a.TaskID, a.Role)
		}

		covered := false
		for i := range staff.Windows {
			if windowCovers(&staff.Windows[i], task) {
				covered = true
				break
			}
		}
		if !covered {
			return fmt.Errorf("员工 %s 在任务 %s 的时段内没有空闲时间", a.StaffName, a.TaskID)
		}
	}
	return nil
}

// ValidateNoDuplicateStaffInTask 检查是否存在同一员工
// 在同一任务中被排了多个角色
func ValidateNoDuplicateStaffInTask(assignments []domain.Assignment) error {
	seen := make(map[string]map[string]bool)
	for _, a := range assignments {
		if seen[a.TaskID] == nil {
			seen[a.TaskID] = make(map[string]bool)
		}
		if seen[a.TaskID][a.StaffName] {
			return fmt.Errorf("任务 %s 中员工 %s 被重复排班", a.TaskID, a.StaffName)
		}
		seen[a.TaskID][a.StaffName] = true
	}
	return nil
}
