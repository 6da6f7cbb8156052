package main

import (
	"encoding/csv"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Azuma86/scheduler/internal/domain"
	"github.com/Azuma86/scheduler/internal/utils"
)

// 生成可以直接喂给 cmd/solve 的样例数据：随机员工花名册 + 配套的请求文件
func main() {
	var n int
	var startDate string
	var days int
	var dir string
	var seed int64

	flag.IntVar(&n, "n", 8, "要生成的员工数量")
	flag.StringVar(&startDate, "start", time.Now().Format("2006-01-02"), "排班开始日期")
	flag.IntVar(&days, "days", 7, "排班天数")
	flag.StringVar(&dir, "dir", ".", "输出目录")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "随机数种子（固定后输出可复现）")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	r := rand.New(rand.NewSource(seed))

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		logger.Error("无法解析开始日期", "start", startDate, "error", err)
		os.Exit(1)
	}

	dates := make([]string, days)
	for i := 0; i < days; i++ {
		dates[i] = start.AddDate(0, 0, i).Format("2006-01-02")
	}

	roles := []domain.Role{"厨房", "大堂"}

	// 姓名是花名册的主键，而中文姓名很容易重名，
	// 所以和真实花名册一样使用由姓名转出的拼音工号作为唯一键
	staffs := make([]domain.Staff, 0, n)
	seen := make(map[string]bool)
	for len(staffs) < n {
		id := utils.GenerateStaffIDFromChineseName(r, utils.GenerateRandomChineseName(r))
		if seen[id] {
			continue
		}
		seen[id] = true
		staffs = append(staffs, domain.Staff{
			Name:  id,
			Roles: utils.GenerateRandomSubset(r, roles),
		})
	}

	// 写出花名册 CSV
	rosterPath := filepath.Join(dir, "roster.csv")
	f, err := os.Create(rosterPath)
	if err != nil {
		logger.Error("无法创建花名册文件", "path", rosterPath, "error", err)
		os.Exit(1)
	}
	writer := csv.NewWriter(f)
	_ = writer.Write([]string{"姓名", "日期", "开始时间", "结束时间"})
	for i := range staffs {
		for _, w := range utils.GenerateRandomWindows(r, dates) {
			_ = writer.Write([]string{
				staffs[i].Name,
				w.Date,
				minutesToClock(w.StartMinute),
				minutesToClock(w.EndMinute),
			})
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		logger.Error("无法写出花名册", "error", err)
		os.Exit(1)
	}
	f.Close()

	// 写出配套的请求文件：两个固定班次，每个角色各需 1 人
	req := domain.SchedulingRequest{
		StartDate: dates[0],
		EndDate:   dates[len(dates)-1],
		ShiftMode: domain.ShiftModeFixed,
		FixedShifts: []domain.FixedShiftDef{
			{Name: "早班", StartTime: "09:00", EndTime: "13:00", Requirements: map[domain.Role]int32{"厨房": 1, "大堂": 1}},
			{Name: "晚班", StartTime: "14:00", EndTime: "18:00", Requirements: map[domain.Role]int32{"厨房": 1, "大堂": 1}},
		},
		Roles:        roles,
		Staffs:       staffs,
		CoverageMode: domain.CoverageRelaxed,
		Rules: domain.RuleConfig{
			Enabled: []domain.RuleName{domain.RuleWorkloadBalance},
		},
	}

	requestPath := filepath.Join(dir, "request.yaml")
	data, err := yaml.Marshal(&req)
	if err != nil {
		logger.Error("无法序列化请求文件", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(requestPath, data, 0o644); err != nil {
		logger.Error("无法写出请求文件", "path", requestPath, "error", err)
		os.Exit(1)
	}

	logger.Info("样例数据生成完毕", "roster", rosterPath, "request", requestPath, "staffs", len(staffs), "seed", seed)
}

func minutesToClock(m int32) string {
	return time.Date(0, 1, 1, int(m)/60, int(m)%60, 0, 0, time.UTC).Format("15:04")
}
