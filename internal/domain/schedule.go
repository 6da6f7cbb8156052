package domain

type ScheduleStatus string

const (
	ScheduleStatusOptimal           ScheduleStatus = "OPTIMAL"
	ScheduleStatusFeasible          ScheduleStatus = "FEASIBLE"
	ScheduleStatusInfeasible        ScheduleStatus = "INFEASIBLE"
	ScheduleStatusTimeoutNoSolution ScheduleStatus = "TIMEOUT_NO_SOLUTION"
)

type Assignment struct {
	Date      string `json:"date"`
	TaskID    string `json:"taskID"`
	StaffName string `json:"staffName"`
	Role      Role   `json:"role"`
	TimeRange string `json:"timeRange"` // 格式为 HH:MM–HH:MM
}

// Shortfall 表示某个（任务，角色）的排班人数相对需求的缺口
// 在 relaxed 模式下这是一个正常的、可上报的结果，而不是错误
type Shortfall struct {
	Date    string `json:"date"`
	TaskID  string `json:"taskID"`
	Role    Role   `json:"role"`
	Missing int32  `json:"missing"`
}

type ScheduleResult struct {
	Status      ScheduleStatus `json:"status"`
	Assignments []Assignment   `json:"assignments"`
	Shortfalls  []Shortfall    `json:"shortfalls"`
}
