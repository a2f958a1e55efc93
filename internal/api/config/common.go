package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	TikTok   TikTokConfig   `mapstructure:"tiktok"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 远程日志配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// ScraperConfig 采集与爆款判定配置
type ScraperConfig struct {
	ViralThreshold  float64 `mapstructure:"viral_threshold"`
	LookbackDays    int     `mapstructure:"lookback_days"`
	MinPostAgeHours int     `mapstructure:"min_post_age_hours"`
	IntervalHours   int     `mapstructure:"interval_hours"`
	Workers         int     `mapstructure:"workers"`
	MaxPosts        int     `mapstructure:"max_posts"`
}

// TikTokConfig RapidAPI 网关配置
type TikTokConfig struct {
	APIKey  string `mapstructure:"api_key"`
	APIHost string `mapstructure:"api_host"`
}

// TelegramConfig 告警机器人配置
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}
