package scheduler

import (
	"errors"
	"testing"

	"github.com/Azuma86/scheduler/internal/domain"
)

func TestGenerateTasksFixedMultiDay(t *testing.T) {
	req := &domain.SchedulingRequest{
		StartDate: "2025-04-07",
		EndDate:   "2025-04-09",
		ShiftMode: domain.ShiftModeFixed,
		FixedShifts: []domain.FixedShiftDef{
			{Name: "早班", StartTime: "09:00", EndTime: "13:00", Requirements: map[domain.Role]int32{"厨房": 1}},
			{Name: "晚班", StartTime: "14:00", EndTime: "18:00", Requirements: map[domain.Role]int32{"厨房": 1}},
		},
	}

	tasks, err := GenerateTasks(req)
	if err != nil {
		t.Fatalf("任务展开失败: %v", err)
	}
	if len(tasks) != 6 {
		t.Fatalf("3 天 × 2 个模板应展开为 6 个任务，实际为 %d", len(tasks))
	}
	if tasks[0].ID != "2025-04-07_早班" {
		t.Errorf("任务标识错误: %s", tasks[0].ID)
	}
	if tasks[5].ID != "2025-04-09_晚班" {
		t.Errorf("任务标识错误: %s", tasks[5].ID)
	}
	if got := tasks[0].DurationMinutes(); got != 240 {
		t.Errorf("早班时长应为 240 分钟，实际为 %d", got)
	}
}

func TestGenerateTasksFreeMode(t *testing.T) {
	req := &domain.SchedulingRequest{
		StartDate: "2025-04-07",
		EndDate:   "2025-04-07",
		ShiftMode: domain.ShiftModeFree,
		FreeSlots: []domain.FreeSlotDef{
			{Slot: "上午", StartTime: "09:00", EndTime: "12:00", Requirements: map[domain.Role]int32{"厨房": 2}},
			{Slot: "下午", StartTime: "13:00", EndTime: "17:00", Requirements: map[domain.Role]int32{"厨房": 1}},
		},
	}

	tasks, err := GenerateTasks(req)
	if err != nil {
		t.Fatalf("任务展开失败: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("期望 2 个任务，实际为 %d", len(tasks))
	}
	if tasks[1].ID != "2025-04-07_下午" {
		t.Errorf("任务标识错误: %s", tasks[1].ID)
	}
}

func TestGenerateTasksRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		req  *domain.SchedulingRequest
	}{
		{
			name: "结束日期早于开始日期",
			req: &domain.SchedulingRequest{
				StartDate: "2025-04-09",
				EndDate:   "2025-04-07",
				ShiftMode: domain.ShiftModeFixed,
				FixedShifts: []domain.FixedShiftDef{
					{Name: "早班", StartTime: "09:00", EndTime: "13:00"},
				},
			},
		},
		{
			name: "模板开始时间不早于结束时间",
			req: &domain.SchedulingRequest{
				StartDate: "2025-04-07",
				EndDate:   "2025-04-07",
				ShiftMode: domain.ShiftModeFixed,
				FixedShifts: []domain.FixedShiftDef{
					{Name: "早班", StartTime: "13:00", EndTime: "13:00"},
				},
			},
		},
		{
			name: "需求人数为负",
			req: &domain.SchedulingRequest{
				StartDate: "2025-04-07",
				EndDate:   "2025-04-07",
				ShiftMode: domain.ShiftModeFixed,
				FixedShifts: []domain.FixedShiftDef{
					{Name: "早班", StartTime: "09:00", EndTime: "13:00", Requirements: map[domain.Role]int32{"厨房": -1}},
				},
			},
		},
		{
			name: "固定模式下模板列表为空",
			req: &domain.SchedulingRequest{
				StartDate: "2025-04-07",
				EndDate:   "2025-04-07",
				ShiftMode: domain.ShiftModeFixed,
			},
		},
		{
			name: "时刻格式错误",
			req: &domain.SchedulingRequest{
				StartDate: "2025-04-07",
				EndDate:   "2025-04-07",
				ShiftMode: domain.ShiftModeFixed,
				FixedShifts: []domain.FixedShiftDef{
					{Name: "早班", StartTime: "9时", EndTime: "13:00"},
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateTasks(tc.req)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("期望 ConfigurationError，实际为 %v", err)
			}
		})
	}
}
