// Package roster 负责解析员工希望表（CSV），
// 即配置前端之外上传的表格数据源：每行是某位员工在某一天
// （或某个星期几）的期望上班时段
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Azuma86/scheduler/internal/domain"
)

var expectedHeader = []string{"姓名", "日期", "开始时间", "结束时间"}

var weekdayNames = map[string]int32{
	"周一": 1, "周二": 2, "周三": 3, "周四": 4,
	"周五": 5, "周六": 6, "周日": 7,
}

func parseClock(s string) (int32, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return int32(t.Hour()*60 + t.Minute()), nil
}

// Parse 读取花名册 CSV 并返回每位员工规范化后的空闲时间窗口
// 日期列既可以是 2006-01-02 形式的具体日期，
// 也可以是周一~周日，表示按星期重复的窗口
func Parse(r io.Reader) (map[string][]domain.AvailabilityWindow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("无法读取表头: %w", err)
	}
	if len(header) < len(expectedHeader) {
		return nil, fmt.Errorf("表头列数不足，期望 %v", expectedHeader)
	}
	for i, name := range expectedHeader {
		if strings.TrimSpace(header[i]) != name {
			return nil, fmt.Errorf("表头第 %d 列应为 %s，实际为 %s", i+1, name, header[i])
		}
	}

	windows := make(map[string][]domain.AvailabilityWindow)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("第 %d 行格式错误: %w", line, err)
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			return nil, fmt.Errorf("第 %d 行缺少姓名", line)
		}

		w := domain.AvailabilityWindow{}
		dateField := strings.TrimSpace(record[1])
		if wd, ok := weekdayNames[dateField]; ok {
			w.Weekday = wd
		} else {
			if _, err := time.Parse("2006-01-02", dateField); err != nil {
				return nil, fmt.Errorf("第 %d 行的日期 %q 无法解析", line, dateField)
			}
			w.Date = dateField
		}

		if w.StartMinute, err = parseClock(record[2]); err != nil {
			return nil, fmt.Errorf("第 %d 行的开始时间 %q 无法解析", line, record[2])
		}
		if w.EndMinute, err = parseClock(record[3]); err != nil {
			return nil, fmt.Errorf("第 %d 行的结束时间 %q 无法解析", line, record[3])
		}
		if w.StartMinute >= w.EndMinute {
			return nil, fmt.Errorf("第 %d 行的开始时间必须早于结束时间", line)
		}

		windows[name] = append(windows[name], w)
	}

	// 上传的数据可能自相矛盾（同一天多个重叠窗口），在这里统一合并
	for name := range windows {
		windows[name] = domain.NormalizeWindows(windows[name])
	}

	return windows, nil
}
