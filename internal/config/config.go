package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/chasingbytes/resume/backend/internal/service/assistant"
)

// 支持的大模型服务商。
const (
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Assistant AssistantConfig
	Content   ContentConfig
	LogLevel  string
}

// ConfigError 表示启动时缺失或非法的配置，进程应当直接退出。
type ConfigError struct {
	Key    string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Key, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Key, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	assistantCfg, err := loadAssistantConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		AI:        ai,
		Assistant: assistantCfg,
		Content: ContentConfig{
			ProfileFile: strings.TrimSpace(os.Getenv("PROFILE_FILE")),
			AssetsDir:   getEnvOrDefault("ASSETS_DIR", "assets"),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, &ConfigError{Key: "PORT", Reason: fmt.Sprintf("unexpected value %q", port)}
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig 描述大模型相关配置。凭证只在启动时读取一次。
type AIConfig struct {
	Provider  string
	APIKey    string
	AccessKey string
	SecretKey string
	Model     string
	BaseURL   string
	Region    string
	Timeout   time.Duration
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	if c.Model == "" {
		return false
	}
	if c.Provider == ProviderArk {
		return c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != "")
	}
	return c.APIKey != ""
}

// NewChatModel 使用配置创建一个 Ark 模型实例。采样参数保持服务端默认值，且不做自动重试。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if c.Provider != ProviderArk {
		return nil, fmt.Errorf("chat model requires provider %q, got %q", ProviderArk, c.Provider)
	}
	if !c.Enabled() {
		return nil, &ConfigError{Key: "ARK_API_KEY", Reason: "provide ARK_API_KEY or ARK_ACCESS_KEY + ARK_SECRET_KEY, and ARK_MODEL"}
	}

	timeout := c.Timeout
	retries := 0

	cfg := &ark.ChatModelConfig{
		BaseURL:    c.BaseURL,
		Region:     c.Region,
		APIKey:     c.APIKey,
		AccessKey:  c.AccessKey,
		SecretKey:  c.SecretKey,
		Model:      c.Model,
		Timeout:    &timeout,
		RetryTimes: &retries,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderOpenAI))

	timeoutSeconds := 30
	if override, err := parseOptionalIntEnv("AI_TIMEOUT_SECONDS"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return AIConfig{}, &ConfigError{Key: "AI_TIMEOUT_SECONDS", Reason: "must be at least 1"}
		}
		timeoutSeconds = *override
	}
	timeout := time.Duration(timeoutSeconds) * time.Second

	var cfg AIConfig
	switch provider {
	case ProviderOpenAI:
		apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		if apiKey == "" {
			// 兼容旧的变量名。
			apiKey = strings.TrimSpace(os.Getenv("OPEN_API_KEY"))
		}
		cfg = AIConfig{
			Provider: ProviderOpenAI,
			APIKey:   apiKey,
			Model:    getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
			BaseURL:  getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Timeout:  timeout,
		}
		if cfg.APIKey == "" {
			return AIConfig{}, &ConfigError{Key: "OPENAI_API_KEY", Reason: "credential is required"}
		}
	case ProviderArk:
		cfg = AIConfig{
			Provider:  ProviderArk,
			APIKey:    strings.TrimSpace(os.Getenv("ARK_API_KEY")),
			AccessKey: strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
			Model:     strings.TrimSpace(os.Getenv("ARK_MODEL")),
			BaseURL:   getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
			Region:    getEnvOrDefault("ARK_REGION", "cn-beijing"),
			Timeout:   timeout,
		}
		if cfg.Model == "" {
			return AIConfig{}, &ConfigError{Key: "ARK_MODEL", Reason: "model endpoint is required"}
		}
		if !cfg.Enabled() {
			return AIConfig{}, &ConfigError{Key: "ARK_API_KEY", Reason: "provide ARK_API_KEY or ARK_ACCESS_KEY + ARK_SECRET_KEY"}
		}
	default:
		return AIConfig{}, &ConfigError{Key: "AI_PROVIDER", Reason: fmt.Sprintf("unknown provider %q", provider)}
	}

	return cfg, nil
}

// AssistantConfig 描述会话与并发策略。
type AssistantConfig struct {
	Policy         assistant.Policy
	SessionIdleTTL time.Duration
	SweepInterval  time.Duration
}

func loadAssistantConfig() (AssistantConfig, error) {
	raw := os.Getenv("ASSISTANT_CONCURRENCY")
	policy, err := assistant.ParsePolicy(raw)
	if err != nil {
		return AssistantConfig{}, &ConfigError{Key: "ASSISTANT_CONCURRENCY", Reason: fmt.Sprintf("unknown policy %q", raw), Err: err}
	}

	idleTTL, err := parseDurationEnv("SESSION_IDLE_TTL", 30*time.Minute)
	if err != nil {
		return AssistantConfig{}, err
	}

	sweep, err := parseDurationEnv("SESSION_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return AssistantConfig{}, err
	}

	return AssistantConfig{
		Policy:         policy,
		SessionIdleTTL: idleTTL,
		SweepInterval:  sweep,
	}, nil
}

// ContentConfig 描述简历内容与附件的位置。
type ContentConfig struct {
	ProfileFile string
	AssetsDir   string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, &ConfigError{Key: key, Reason: fmt.Sprintf("value %q is not an integer", value), Err: err}
	}
	return &val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &ConfigError{Key: key, Reason: fmt.Sprintf("value %q is not a duration", raw), Err: err}
	}
	if val <= 0 {
		return 0, &ConfigError{Key: key, Reason: "must be positive"}
	}
	return val, nil
}
