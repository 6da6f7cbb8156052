package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/Azuma86/scheduler/internal/config"
	"github.com/Azuma86/scheduler/internal/domain"
	"github.com/Azuma86/scheduler/internal/handler"
	"github.com/Azuma86/scheduler/internal/scheduler"
)

// updateJob 将任务的最新状态写回 redis
func updateJob(ctx context.Context, cfg *config.Config, rdb *redis.Client, job *domain.ScheduleJob) error {
	job.UpdatedAt = time.Now()
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}
	expiration := time.Duration(cfg.Redis.JobExpiration) * time.Second
	return rdb.Set(ctx, handler.JobKeyPrefix+job.ID, body, expiration).Err()
}

// runJob 执行一次排班任务并把结果或错误写回任务记录
func runJob(ctx context.Context, cfg *config.Config, rdb *redis.Client, job *domain.ScheduleJob) {
	logger := slog.Default()

	job.Status = domain.JobStatusRunning
	if err := updateJob(ctx, cfg, rdb, job); err != nil {
		logger.Error("无法更新任务状态", "jobID", job.ID, "error", err)
	}

	sched, err := scheduler.New(&job.Request)
	if err == nil {
		var result *domain.ScheduleResult
		result, err = sched.Schedule(ctx)
		if err == nil {
			job.Status = domain.JobStatusSucceeded
			job.Result = result
		}
	}
	if err != nil {
		job.Status = domain.JobStatusFailed
		job.Error = err.Error()
	}

	if err := updateJob(ctx, cfg, rdb, job); err != nil {
		logger.Error("无法写回任务结果", "jobID", job.ID, "error", err)
		return
	}
	logger.Info("任务执行完毕", "jobID", job.ID, "status", job.Status)
}

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 读取配置文件
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 连接 redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	/**********************************************
	 * 连接 RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	// 创建通道
	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法创建通道", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	// 声明队列
	q, err := ch.QueueDeclare(
		handler.ScheduleQueueName, // 队列名称
		true,                      // 是否持久化
		false,                     // 是否自动删除，设置为 false 可以避免没有消费者的时候自动删除队列
		false,                     // 是否独占，即是否允许多个消费者访问这个队列
		false,                     // 是否不等待，设置为 false，即等待 RabbitMQ 确认队列是否创建成功
		nil,                       // 额外参数
	)
	if err != nil {
		logger.Error("无法声明队列", slog.String("error", err.Error()))
		return
	}

	// 求解是长耗时操作，串行消费，一次只取一条消息
	if err := ch.Qos(1, 0, false); err != nil {
		logger.Error("无法设置 Qos", slog.String("error", err.Error()))
		return
	}

	// 监听 CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 消费消息
	msgs, err := ch.Consume(
		q.Name, // 队列
		"",     // 消费者标识，设置为空字符串，表示由 RabbitMQ 自动分配
		false,  // 是否自动确认消息
		false,  // 是否独占队列
		false,  // 是否禁止消费者接受自己发送的消息，必须设置为 false，因为 RabbitMQ 不支持这个参数
		false,  // 是否不等待，等待 RabbitMQ 响应
		nil,    // 额外参数
	)
	if err != nil {
		logger.Error("无法消费消息", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 用于关闭 goroutine 的上下文
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("收到排班任务", slog.Int("size", len(msg.Body)))

				job := domain.ScheduleJob{}
				if err := json.Unmarshal(msg.Body, &job); err != nil {
					logger.Error("任务反序列化失败", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				runJob(ctx, cfg, rdb, &job)

				// 任务结果（包括失败）都已写回 redis，消息不再重新入队
				_ = msg.Ack(false)
			}
		}
	}()

	// 等待 CTRL+C 信号
	logger.Info("等待排班任务...（按 CTRL+C 退出）")
	<-sigChan

	// 优雅退出
	slog.Info("正在关闭 worker...")
	cancel()
	wg.Wait() // 等待所有 goroutine 完成
	slog.Info("worker 已成功关闭")
}
