package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Quota    QuotaConfig    `mapstructure:"quota"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// UpstreamConfig 远端账户/任务服务配置
type UpstreamConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// DatabaseConfig 偏好存储数据库配置
// driver 为 sqlite 时只使用 path，为 mysql 时使用其余字段
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Path         string `mapstructure:"path"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// QuotaConfig 额度展示配置
// PerUnit 为一个货币单位对应的原始额度数，AdminRole 为不过滤分组的最低角色值
type QuotaConfig struct {
	PerUnit   int64 `mapstructure:"per_unit"`
	AdminRole int   `mapstructure:"admin_role"`
}

type JobsConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

const (
	DefaultQuotaPerUnit    = 500000
	DefaultAdminRole       = 100
	DefaultJobPageSize     = 10
	DefaultUpstreamTimeout = 30
)

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实地址，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults 填充未配置项的默认值
func (c *Config) ApplyDefaults() {
	if c.Quota.PerUnit <= 0 {
		c.Quota.PerUnit = DefaultQuotaPerUnit
	}
	if c.Quota.AdminRole <= 0 {
		c.Quota.AdminRole = DefaultAdminRole
	}
	if c.Jobs.DefaultPageSize <= 0 {
		c.Jobs.DefaultPageSize = DefaultJobPageSize
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		c.Upstream.TimeoutSeconds = DefaultUpstreamTimeout
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "console.db"
	}
}
