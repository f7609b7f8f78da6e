package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	JWT struct {
		CookieName string `env:"COOKIE_NAME" envDefault:"__ecnc_driver_planner_token"`
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Seed struct {
		Driver struct {
			Password string `env:"PASSWORD" envDefault:"driver123456"`
		} `envPrefix:"DRIVER_"`
	} `envPrefix:"SEED_"`
	Email struct {
		UserDomain string `env:"USER_DOMAIN" envDefault:"example.com"`
		SMTP       struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		Queue          string `env:"QUEUE" envDefault:"email_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD"`
		ConnectTimeout      int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	Scheduler struct {
		Timezone         string  `env:"TIMEZONE" envDefault:"UTC"`
		GridStartHour    int     `env:"GRID_START_HOUR" envDefault:"8"`
		GridEndHour      int     `env:"GRID_END_HOUR" envDefault:"20"`
		SlotMinutes      int     `env:"SLOT_MINUTES" envDefault:"30"`
		WorkdayStartHour int     `env:"WORKDAY_START_HOUR" envDefault:"9"`
		WorkdayEndHour   int     `env:"WORKDAY_END_HOUR" envDefault:"18"`
		AverageSpeedMPH  float64 `env:"AVERAGE_SPEED_MPH" envDefault:"35"`
		BufferHours      float64 `env:"BUFFER_HOURS" envDefault:"0.5"`
		MinHours         float64 `env:"MIN_HOURS" envDefault:"1"`
		MaxHours         float64 `env:"MAX_HOURS" envDefault:"10"`
		ResizePolicy     string  `env:"RESIZE_POLICY" envDefault:"permissive"` // strict 或 permissive
		Priority         string  `env:"PRIORITY" envDefault:"fifo"`            // fifo 或 distance
	} `envPrefix:"SCHEDULER_"`
	Calendar struct {
		ProductID string `env:"PRODUCT_ID" envDefault:"-//ECNC//Driver Planner//ZH"`
		UIDDomain string `env:"UID_DOMAIN" envDefault:"driver-planner"`
	} `envPrefix:"CALENDAR_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
