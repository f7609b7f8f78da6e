package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/calendar"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/repository"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/scheduler"
)

// Publisher 是 *amqp.Channel 中用到的部分
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel Publisher
	parameters  *scheduler.Parameters
	exporter    *calendar.Exporter
	now         func() time.Time

	// 优先使用数据库，失败时退回到 redis
	primaryStore  repository.ScheduleStore
	fallbackStore repository.ScheduleStore

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh Publisher, rdb *redis.Client, params *scheduler.Parameters) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	h := &Handler{
		validate:     validate,
		config:       cfg,
		repository:   repo,
		translator:   trans,
		mailChannel:  mailCh,
		parameters:   params,
		exporter:     calendar.NewExporter(cfg.Calendar.ProductID, cfg.Calendar.UIDDomain, calendar.RandomIDGenerator{}, time.Now),
		now:          time.Now,
		primaryStore: repository.NewPostgresScheduleStore(repo),

		Mux: chi.NewRouter(),
	}

	if rdb != nil {
		h.fallbackStore = repository.NewRedisScheduleStore(cfg, rdb)
	}

	return h, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 登录由外部认证服务负责，这里只校验令牌
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.myInfo)

		r.Get("/jobs", h.GetMyJobs)

		r.Route("/schedule", func(r chi.Router) {
			r.With(h.week).Get("/", h.GetMySchedule)
			r.Put("/", h.ReplaceMySchedule)
			r.Post("/auto", h.AutoSchedule)
			r.Route("/entries", func(r chi.Router) {
				r.Post("/", h.AddScheduleEntry)
				r.Delete("/", h.DeleteScheduleEntry)
				r.Post("/gesture", h.ApplyScheduleGesture)
			})
			r.With(h.optionalWeek).Get("/export.ics", h.ExportMySchedule)
			r.With(h.optionalWeek).Post("/export/mail", h.MailMySchedule)
		})

		r.Route("/drivers/{id}", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleDispatcher, domain.RoleAdmin}))
			r.Use(h.driverInfo)
			r.With(h.week).Get("/schedule", h.GetDriverSchedule)
		})
	})
}
