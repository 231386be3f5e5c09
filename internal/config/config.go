package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Attendance AttendanceConfig `mapstructure:"attendance"`
	Feedback   FeedbackConfig   `mapstructure:"feedback"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	RBAC       RBACConfig       `mapstructure:"rbac"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	Name       string `mapstructure:"name"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	SSLMode    string `mapstructure:"sslmode"`
	MaxRetries int    `mapstructure:"max_retries"`
	Migrate    bool   `mapstructure:"migrate"`
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers           []string      `mapstructure:"brokers"`
	NotificationTopic string        `mapstructure:"notification_topic"`
	ConsumerGroup     string        `mapstructure:"consumer_group"`
	OutboxPoll        time.Duration `mapstructure:"outbox_poll"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type AttendanceConfig struct {
	TokenSecret   string        `mapstructure:"token_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	ScanDedupeTTL time.Duration `mapstructure:"scan_dedupe_ttl"`
	CheckInLead   time.Duration `mapstructure:"checkin_lead"`
	CheckOutGrace time.Duration `mapstructure:"checkout_grace"`
}

type FeedbackConfig struct {
	CommentMaxLen int `mapstructure:"comment_max_len"`
}

type SchedulerConfig struct {
	Interval       time.Duration `mapstructure:"interval"`
	ReminderWindow time.Duration `mapstructure:"reminder_window"`
	RunOnStart     bool          `mapstructure:"run_on_start"`
	MetricsAddr    string        `mapstructure:"metrics_addr"`
}

type RBACConfig struct {
	PrivilegedRoles []string `mapstructure:"privileged_roles"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration with precedence env > config file > defaults.
// A .env file in the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("VOLUNTEER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.name", "volunteer")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_retries", 5)
	v.SetDefault("db.migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.notification_topic", "volunteer.notification.requested.v1")
	v.SetDefault("kafka.consumer_group", "go-volunteer-notifications")
	v.SetDefault("kafka.outbox_poll", "3s")

	v.SetDefault("attendance.token_ttl", "30s")
	v.SetDefault("attendance.scan_dedupe_ttl", "10s")
	v.SetDefault("attendance.checkin_lead", "15m")
	v.SetDefault("attendance.checkout_grace", "1h")

	v.SetDefault("feedback.comment_max_len", 2000)

	v.SetDefault("scheduler.interval", "15m")
	v.SetDefault("scheduler.reminder_window", "6h")
	v.SetDefault("scheduler.run_on_start", true)
	v.SetDefault("scheduler.metrics_addr", ":9101")

	v.SetDefault("rbac.privileged_roles", []string{"SUPER_ADMIN", "ADMIN", "STAFF"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret is required")
	}
	if len(c.Attendance.TokenSecret) < 16 {
		return errors.New("config: attendance.token_secret must be at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("config: server.port must be between 1 and 65535")
	}
	if c.Attendance.TokenTTL <= 0 {
		return errors.New("config: attendance.token_ttl must be positive")
	}
	if c.Scheduler.Interval <= 0 {
		return errors.New("config: scheduler.interval must be positive")
	}
	return nil
}
