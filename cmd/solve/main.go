package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Azuma86/scheduler/internal/domain"
	"github.com/Azuma86/scheduler/internal/roster"
	"github.com/Azuma86/scheduler/internal/scheduler"
)

// 一次性的命令行入口：读取请求文件和花名册，执行排班并导出 CSV
func main() {
	var requestPath string
	var rosterPath string
	var outPath string

	flag.StringVar(&requestPath, "request", "request.yaml", "排班请求文件（YAML）")
	flag.StringVar(&rosterPath, "roster", "", "员工希望表（CSV），省略时使用请求文件中内联的空闲时间")
	flag.StringVar(&outPath, "out", "", "排班结果输出路径（CSV），省略时输出到标准输出")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取请求文件
	data, err := os.ReadFile(requestPath)
	if err != nil {
		logger.Error("无法读取请求文件", "path", requestPath, "error", err)
		os.Exit(1)
	}
	req := domain.SchedulingRequest{}
	if err := yaml.Unmarshal(data, &req); err != nil {
		logger.Error("无法解析请求文件", "path", requestPath, "error", err)
		os.Exit(1)
	}

	// 合并花名册中的空闲时间
	if rosterPath != "" {
		f, err := os.Open(rosterPath)
		if err != nil {
			logger.Error("无法打开花名册", "path", rosterPath, "error", err)
			os.Exit(1)
		}
		windows, err := roster.Parse(f)
		f.Close()
		if err != nil {
			logger.Error("无法解析花名册", "path", rosterPath, "error", err)
			os.Exit(1)
		}

		byName := make(map[string]int, len(req.Staffs))
		for i := range req.Staffs {
			byName[req.Staffs[i].Name] = i
		}
		for name, ws := range windows {
			i, ok := byName[name]
			if !ok {
				// 角色能力只能来自请求文件，陌生姓名无从排班
				logger.Error("花名册中的员工不在请求文件的员工列表中", "name", name)
				os.Exit(1)
			}
			req.Staffs[i].Windows = append(req.Staffs[i].Windows, ws...)
		}
	}

	sched, err := scheduler.New(&req)
	if err != nil {
		logger.Error("排班请求不合法", "error", err)
		os.Exit(1)
	}

	budget := scheduler.DefaultTimeBudget
	if req.TimeBudgetSeconds > 0 {
		budget = time.Duration(req.TimeBudgetSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), budget+time.Second)
	defer cancel()

	result, err := sched.Schedule(ctx)
	if err != nil {
		logger.Error("排班失败", "error", err)
		os.Exit(1)
	}

	out := os.Stdout
	if outPath != "" {
		out, err = os.Create(outPath)
		if err != nil {
			logger.Error("无法创建输出文件", "path", outPath, "error", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	writer := csv.NewWriter(out)
	_ = writer.Write([]string{"日期", "任务", "姓名", "角色", "时间"})
	for _, a := range result.Assignments {
		_ = writer.Write([]string{a.Date, a.TaskID, a.StaffName, string(a.Role), a.TimeRange})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		logger.Error("无法写出排班结果", "error", err)
		os.Exit(1)
	}

	logger.Info("排班完成", "status", result.Status, "assignments", len(result.Assignments))
	for _, sf := range result.Shortfalls {
		logger.Warn("存在人数缺口", "date", sf.Date, "task", sf.TaskID, "role", sf.Role, "missing", sf.Missing)
	}
}
