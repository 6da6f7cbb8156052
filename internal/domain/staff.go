package domain

import (
	"sort"
	"time"
)

type Role string

// AvailabilityWindow 表示员工的一个空闲时间窗口
// Date 为空时表示这是一个按星期重复的窗口，此时 Weekday 生效（1~7 对应周一~周日）
type AvailabilityWindow struct {
	Date        string `json:"date,omitempty" yaml:"date,omitempty"`
	Weekday     int32  `json:"weekday,omitempty" yaml:"weekday,omitempty"`
	StartMinute int32  `json:"startMinute" yaml:"startMinute"`
	EndMinute   int32  `json:"endMinute" yaml:"endMinute"`
}

type Staff struct {
	Name    string               `json:"name" yaml:"name"`
	Roles   []Role               `json:"roles" yaml:"roles"`
	Windows []AvailabilityWindow `json:"windows" yaml:"windows"`
}

func (s *Staff) HasRole(role Role) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// WeekdayOf 返回日期对应的星期（1~7 对应周一~周日）
func WeekdayOf(date time.Time) int32 {
	return int32((int(date.Weekday())+6)%7) + 1
}

// NormalizeWindows 对空闲时间窗口进行规范化：
// 按（日期或星期，开始时间）排序，并将同一天内重叠或相邻的窗口合并成一个
// 这样上传的空闲时间数据即使自相矛盾，也不会影响后续的资格过滤
func NormalizeWindows(windows []AvailabilityWindow) []AvailabilityWindow {
	if len(windows) == 0 {
		return windows
	}

	sorted := append([]AvailabilityWindow{}, windows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		if sorted[i].Weekday != sorted[j].Weekday {
			return sorted[i].Weekday < sorted[j].Weekday
		}
		return sorted[i].StartMinute < sorted[j].StartMinute
	})

	merged := []AvailabilityWindow{sorted[0]}
	for _, w := range sorted[1:] {
		last := &merged[len(merged)-1]
		sameDay := w.Date == last.Date && w.Weekday == last.Weekday
		if sameDay && w.StartMinute <= last.EndMinute {
			if w.EndMinute > last.EndMinute {
				last.EndMinute = w.EndMinute
			}
			continue
		}
		merged = append(merged, w)
	}

	return merged
}
