package domain

import "time"

type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// ScheduleJob 是一次异步排班任务，由 API 入队、worker 消费
// 它只存放在 redis 中并带有过期时间，不做跨运行的持久化
type ScheduleJob struct {
	ID        string            `json:"id"`
	Status    JobStatus         `json:"status"`
	Request   SchedulingRequest `json:"request"`
	Result    *ScheduleResult   `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
