package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/Azuma86/scheduler/internal/config"
)

// 异步排班任务使用的队列名和 redis 键前缀
const (
	ScheduleQueueName = "schedule_queue"
	JobKeyPrefix      = "schedule_job:"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	translator  ut.Translator
	jobChannel  *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, jobCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		translator:  trans,
		jobChannel:  jobCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 同步排班：请求内联全部输入，阻塞等待结果
	h.Mux.Post("/schedule", h.Schedule)

	// 异步排班：入队后轮询任务状态
	h.Mux.Route("/scheduling-jobs", func(r chi.Router) {
		r.Post("/", h.CreateScheduleJob)
		r.Get("/{id}", h.GetScheduleJob)
	})
}
