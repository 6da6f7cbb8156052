package utils

import (
	"strings"
	"testing"

	"github.com/Azuma86/scheduler/internal/domain"
)

func validationFixture() ([]domain.Task, []domain.Staff) {
	tasks := []domain.Task{
		{
			ID:          "2025-04-07_早班",
			Date:        "2025-04-07",
			StartMinute: 9 * 60,
			EndMinute:   13 * 60,
		},
	}
	staffs := []domain.Staff{
		{
			Name:  "张三",
			Roles: []domain.Role{"厨房"},
			Windows: []domain.AvailabilityWindow{
				{Date: "2025-04-07", StartMinute: 8 * 60, EndMinute: 14 * 60},
			},
		},
		{
			Name:  "李四",
			Roles: []domain.Role{"大堂"},
			Windows: []domain.AvailabilityWindow{
				{Weekday: 1, StartMinute: 10 * 60, EndMinute: 12 * 60}, // 周一，但只空闲一部分时段
			},
		},
	}
	return tasks, staffs
}

func TestValidateAssignmentsPass(t *testing.T) {
	tasks, staffs := validationFixture()
	assignments := []domain.Assignment{
		{Date: "2025-04-07", TaskID: "2025-04-07_早班", StaffName: "张三", Role: "厨房"},
	}

	if err := ValidateAssignmentsWithStaffs(assignments, tasks, staffs); err != nil {
		t.Errorf("合法的排班不应报错: %v", err)
	}
}

func TestValidateAssignmentsRejectsMissingRole(t *testing.T) {
	tasks, staffs := validationFixture()
	assignments := []domain.Assignment{
		{Date: "2025-04-07", TaskID: "2025-04-07_早班", StaffName: "张三", Role: "大堂"},
	}

	err := ValidateAssignmentsWithStaffs(assignments, tasks, staffs)
	if err == nil || !strings.Contains(err.Error(), "角色") {
		t.Errorf("期望角色能力校验失败，实际为 %v", err)
	}
}

func TestValidateAssignmentsRejectsUncoveredWindow(t *testing.T) {
	tasks, staffs := validationFixture()
	// 李四的周一窗口是 10:00~12:00，覆盖不了 09:00~13:00 的任务
	assignments := []domain.Assignment{
		{Date: "2025-04-07", TaskID: "2025-04-07_早班", StaffName: "李四", Role: "大堂"},
	}

	err := ValidateAssignmentsWithStaffs(assignments, tasks, staffs)
	if err == nil || !strings.Contains(err.Error(), "空闲时间") {
		t.Errorf("期望空闲时间校验失败，实际为 %v", err)
	}
}

func TestValidateAssignmentsRejectsUnknownTask(t *testing.T) {
	tasks, staffs := validationFixture()
	assignments := []domain.Assignment{
		{Date: "2025-04-07", TaskID: "2025-04-07_不存在", StaffName: "张三", Role: "厨房"},
	}

	if err := ValidateAssignmentsWithStaffs(assignments, tasks, staffs); err == nil {
		t.Error("期望不存在的任务引用被检出")
	}
}

func TestValidateNoDuplicateStaffInTask(t *testing.T) {
	assignments := []domain.Assignment{
		{TaskID: "2025-04-07_早班", StaffName: "张三", Role: "厨房"},
		{TaskID: "2025-04-07_早班", StaffName: "张三", Role: "大堂"},
	}

	if err := ValidateNoDuplicateStaffInTask(assignments); err == nil {
		t.Error("期望重复排班被检出")
	}

	distinct := []domain.Assignment{
		{TaskID: "2025-04-07_早班", StaffName: "张三", Role: "厨房"},
		{TaskID: "2025-04-07_晚班", StaffName: "张三", Role: "厨房"},
	}
	if err := ValidateNoDuplicateStaffInTask(distinct); err != nil {
		t.Errorf("不同任务中的同一员工不应报错: %v", err)
	}
}
