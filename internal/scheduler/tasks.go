package scheduler

import (
	"fmt"
	"time"

	"github.com/Azuma86/scheduler/internal/domain"
)

const dateLayout = "2006-01-02"

// parseClock 将 15:04 格式的时刻解析为当天的分钟数
func parseClock(s string) (int32, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return int32(t.Hour()*60 + t.Minute()), nil
}

// GenerateTasks 将日期区间和班次模板展开成带日期的具体任务序列，
// 每个（日期，模板）对应一个任务
func GenerateTasks(req *domain.SchedulingRequest) ([]domain.Task, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, &ConfigurationError{Field: "startDate", Reason: fmt.Sprintf("无法解析日期 %q", req.StartDate)}
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, &ConfigurationError{Field: "endDate", Reason: fmt.Sprintf("无法解析日期 %q", req.EndDate)}
	}
	if end.Before(start) {
		return nil, &ConfigurationError{Field: "endDate", Reason: "结束日期不能早于开始日期"}
	}

	type template struct {
		name  string
		start int32
		end   int32
		req   map[domain.Role]int32
	}

	var templates []template
	switch req.ShiftMode {
	case domain.ShiftModeFixed:
		if len(req.FixedShifts) == 0 {
			return nil, &ConfigurationError{Field: "fixedShifts", Reason: "固定班次模式下至少需要一个班次模板"}
		}
		for _, sd := range req.FixedShifts {
			s, err := parseClock(sd.StartTime)
			if err != nil {
				return nil, &ConfigurationError{Field: "fixedShifts", Reason: fmt.Sprintf("班次 %s 的开始时间格式错误", sd.Name)}
			}
			e, err := parseClock(sd.EndTime)
			if err != nil {
				return nil, &ConfigurationError{Field: "fixedShifts", Reason: fmt.Sprintf("班次 %s 的结束时间格式错误", sd.Name)}
			}
			templates = append(templates, template{name: sd.Name, start: s, end: e, req: sd.Requirements})
		}
	case domain.ShiftModeFree:
		if len(req.FreeSlots) == 0 {
			return nil, &ConfigurationError{Field: "freeSlots", Reason: "自由班次模式下至少需要一个槽位模板"}
		}
		for _, fd := range req.FreeSlots {
			s, err := parseClock(fd.StartTime)
			if err != nil {
				return nil, &ConfigurationError{Field: "freeSlots", Reason: fmt.Sprintf("槽位 %s 的开始时间格式错误", fd.Slot)}
			}
			e, err := parseClock(fd.EndTime)
			if err != nil {
				return nil, &ConfigurationError{Field: "freeSlots", Reason: fmt.Sprintf("槽位 %s 的结束时间格式错误", fd.Slot)}
			}
			templates = append(templates, template{name: fd.Slot, start: s, end: e, req: fd.Requirements})
		}
	default:
		return nil, &ConfigurationError{Field: "shiftMode", Reason: fmt.Sprintf("未知的班次模式 %q", req.ShiftMode)}
	}

	for _, tpl := range templates {
		if tpl.start >= tpl.end {
			return nil, &ConfigurationError{Field: "templates", Reason: fmt.Sprintf("模板 %s 的开始时间必须早于结束时间", tpl.name)}
		}
		for role, cnt := range tpl.req {
			if cnt < 0 {
				return nil, &ConfigurationError{Field: "templates", Reason: fmt.Sprintf("模板 %s 的角色 %s 需求人数不能为负", tpl.name, role)}
			}
		}
	}

	var tasks []domain.Task
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		date := cur.Format(dateLayout)
		for _, tpl := range templates {
			tasks = append(tasks, domain.Task{
				ID:           date + "_" + tpl.name,
				Date:         date,
				StartMinute:  tpl.start,
				EndMinute:    tpl.end,
				Requirements: tpl.req,
			})
		}
	}

	return tasks, nil
}
