package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 ADGEN_ADS_MAX_COUNT
const EnvPrefix = "ADGEN"

// Config 进程级配置，启动时加载一次，显式传入各组件
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Ads      AdsConfig      `mapstructure:"ads"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Database DatabaseConfig `mapstructure:"database"`
	Health   HealthConfig   `mapstructure:"health"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// AdsConfig 广告生成策略
type AdsConfig struct {
	DefaultCount        int           `mapstructure:"default_count" validate:"gte=1,ltefield=MaxCount"`
	MaxCount            int           `mapstructure:"max_count" validate:"gte=1"`
	Concurrency         int           `mapstructure:"concurrency" validate:"gte=1"`
	AssemblyTimeout     time.Duration `mapstructure:"assembly_timeout" validate:"gt=0"`
	ImageSize           string        `mapstructure:"image_size" validate:"required"`
	DefaultImageStyle   string        `mapstructure:"default_image_style"`
	DefaultImageQuality string        `mapstructure:"default_image_quality"`
}

// UpstreamConfig 三个生成服务
type UpstreamConfig struct {
	Persona ServiceEndpoint `mapstructure:"persona"`
	Image   ImageEndpoint   `mapstructure:"image"`
	Text    ServiceEndpoint `mapstructure:"text"`
}

type ServiceEndpoint struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// 图片服务探活方式
const (
	ProbeModeHealth   = "health"
	ProbeModeGenerate = "generate"
)

type ImageEndpoint struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	ProbeMode string        `mapstructure:"probe_mode" validate:"oneof=health generate"`
}

type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Driver  string `mapstructure:"driver" validate:"oneof=sqlite postgres"`
	DSN     string `mapstructure:"dsn"`
	Debug   bool   `mapstructure:"debug"`
}

type HealthConfig struct {
	MonitorEnabled bool          `mapstructure:"monitor_enabled"`
	Cron           string        `mapstructure:"cron" validate:"required"`
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout" validate:"gt=0"`
}

type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

// ==================== 加载 ====================

// Load 按 默认值 < 配置文件 < 环境变量 的优先级加载并校验配置
// path 为空时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置字段
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("配置校验失败: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("配置校验失败: %w", err)
	}
	return nil
}

// Default 返回只包含默认值的配置，主要给测试和 CLI 使用
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("ads.default_count", 3)
	v.SetDefault("ads.max_count", 5)
	v.SetDefault("ads.concurrency", 3)
	v.SetDefault("ads.assembly_timeout", 90*time.Second)
	v.SetDefault("ads.image_size", "1024x1024")
	v.SetDefault("ads.default_image_style", "")
	v.SetDefault("ads.default_image_quality", "")

	v.SetDefault("upstream.persona.base_url", "http://localhost:8101")
	v.SetDefault("upstream.persona.timeout", 15*time.Second)
	v.SetDefault("upstream.image.base_url", "http://localhost:8102")
	v.SetDefault("upstream.image.timeout", 60*time.Second)
	v.SetDefault("upstream.image.probe_mode", ProbeModeHealth)
	v.SetDefault("upstream.text.base_url", "http://localhost:8103")
	v.SetDefault("upstream.text.timeout", 30*time.Second)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.debug", false)

	v.SetDefault("health.monitor_enabled", true)
	v.SetDefault("health.cron", "0 */5 * * * *")
	v.SetDefault("health.probe_timeout", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}
