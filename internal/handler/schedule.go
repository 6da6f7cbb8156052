package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/Azuma86/scheduler/internal/domain"
	"github.com/Azuma86/scheduler/internal/scheduler"
)

// Schedule 同步执行一次完整的排班流水线
// 求解是整个请求中唯一耗时的环节，时间预算由请求指定，
// 未指定时使用配置中的默认值
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req domain.SchedulingRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.TimeBudgetSeconds <= 0 {
		req.TimeBudgetSeconds = int32(h.config.Solver.TimeBudget)
	}

	sched, err := scheduler.New(&req)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	result, err := sched.Schedule(r.Context())
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, "排班成功", result)
}

// CreateScheduleJob 将排班请求封装成异步任务：
// 先在 redis 中登记 queued 状态，再投递到队列交给 worker 执行
func (h *Handler) CreateScheduleJob(w http.ResponseWriter, r *http.Request) {
	var req domain.SchedulingRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.TimeBudgetSeconds <= 0 {
		req.TimeBudgetSeconds = int32(h.config.Solver.TimeBudget)
	}

	// 入队前就检出配置错误，避免队列里堆积注定失败的任务
	if _, err := scheduler.New(&req); err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	now := time.Now()
	job := &domain.ScheduleJob{
		ID:        uuid.New().String(),
		Status:    domain.JobStatusQueued,
		Request:   req,
		CreatedAt: now,
		UpdatedAt: now,
	}

	body, err := json.Marshal(job)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	expiration := time.Duration(h.config.Redis.JobExpiration) * time.Second
	if err := h.redisClient.Set(ctx, JobKeyPrefix+job.ID, body, expiration).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.jobChannel.PublishWithContext(ctx, "", ScheduleQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "排班任务已入队", map[string]string{"id": job.ID})
}

func (h *Handler) GetScheduleJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		h.errorResponse(w, r, "无效的任务 ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	body, err := h.redisClient.Get(ctx, JobKeyPrefix+id).Bytes()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.errorResponse(w, r, "任务不存在或已过期")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	var job domain.ScheduleJob
	if err := json.Unmarshal(body, &job); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班任务成功", job)
}
