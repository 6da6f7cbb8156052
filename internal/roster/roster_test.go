package roster

import (
	"strings"
	"testing"

	"github.com/Azuma86/scheduler/internal/domain"
)

func TestParseMixedDateAndWeekday(t *testing.T) {
	csv := "姓名,日期,开始时间,结束时间\n" +
		"张三,2025-04-07,09:00,13:00\n" +
		"张三,周一,14:00,18:00\n" +
		"李四,2025-04-08,10:00,15:00\n"

	windows, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("期望 2 名员工，实际为 %d", len(windows))
	}
	if len(windows["张三"]) != 2 {
		t.Fatalf("张三应有 2 个窗口，实际为 %d", len(windows["张三"]))
	}

	var weekdayWindow *domain.AvailabilityWindow
	for i := range windows["张三"] {
		if windows["张三"][i].Weekday != 0 {
			weekdayWindow = &windows["张三"][i]
		}
	}
	if weekdayWindow == nil {
		t.Fatal("周一的行应解析为按星期重复的窗口")
	}
	if weekdayWindow.Weekday != 1 || weekdayWindow.StartMinute != 14*60 || weekdayWindow.EndMinute != 18*60 {
		t.Errorf("星期窗口解析错误: %+v", weekdayWindow)
	}
}

func TestParseMergesOverlappingWindows(t *testing.T) {
	csv := "姓名,日期,开始时间,结束时间\n" +
		"张三,2025-04-07,09:00,13:00\n" +
		"张三,2025-04-07,12:00,15:00\n" +
		"张三,2025-04-07,15:00,17:00\n"

	windows, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	got := windows["张三"]
	if len(got) != 1 {
		t.Fatalf("重叠和相邻的窗口应合并为 1 个，实际为 %d 个: %+v", len(got), got)
	}
	if got[0].StartMinute != 9*60 || got[0].EndMinute != 17*60 {
		t.Errorf("合并后的窗口应为 09:00~17:00，实际为 %+v", got[0])
	}
}

func TestParseRejectsBadRows(t *testing.T) {
	cases := []struct {
		name string
		csv  string
		want string
	}{
		{
			name: "表头错误",
			csv:  "name,date,start,end\n",
			want: "表头",
		},
		{
			name: "日期无法解析",
			csv:  "姓名,日期,开始时间,结束时间\n张三,昨天,09:00,13:00\n",
			want: "第 2 行",
		},
		{
			name: "时刻无法解析",
			csv:  "姓名,日期,开始时间,结束时间\n张三,2025-04-07,九点,13:00\n",
			want: "第 2 行",
		},
		{
			name: "开始时间不早于结束时间",
			csv:  "姓名,日期,开始时间,结束时间\n张三,2025-04-07,13:00,13:00\n",
			want: "第 2 行",
		},
		{
			name: "缺少姓名",
			csv:  "姓名,日期,开始时间,结束时间\n,2025-04-07,09:00,13:00\n",
			want: "第 2 行",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.csv))
			if err == nil {
				t.Fatal("期望解析失败")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("错误信息应包含 %q，实际为 %v", tc.want, err)
			}
		})
	}
}
