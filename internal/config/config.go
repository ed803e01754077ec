// Package config 负责加载和管理应用程序的配置。
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Chat   ChatConfig   `mapstructure:"chat"`
	Assets AssetsConfig `mapstructure:"assets"`
	MinIO  MinIOConfig  `mapstructure:"minio"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LLMConfig 存储上游大语言模型相关的配置。
type LLMConfig struct {
	APIKey     string              `mapstructure:"api_key"`
	BaseURL    string              `mapstructure:"base_url"`
	Model      string              `mapstructure:"model"`
	Generation LLMGenerationConfig `mapstructure:"generation"`
}

// LLMGenerationConfig 配置生成相关参数（请求体中的同名字段优先生效）。
type LLMGenerationConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// ChatConfig 存储对话网关相关的配置。
type ChatConfig struct {
	// FreechatDefault 为 true 时，不带触发前缀的输入也允许自由聊天。
	FreechatDefault bool `mapstructure:"freechat_default"`
	// Persona 是默认的系统人设提示词，请求中的 systemOverride 优先生效。
	Persona string `mapstructure:"persona"`
}

// AssetsConfig 存储本地素材目录相关的配置。
type AssetsConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
}

// MinIOConfig 存储 MinIO 对象存储的配置。Endpoint 为空时不启用镜像存储。
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// DefaultPersona 是未配置人设时使用的默认系统提示词。
const DefaultPersona = "你是東嘉弥真 御奈，一位热爱时尚的少女。用简洁自然的中文口语回答，保持角色语气。" +
	"如果要切换情绪，在回复最开头用 (normal) 或 (change) 标注，正文中不要再出现这类标注。"

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
// 配置文件缺失时退回默认值与环境变量，便于零配置启动。
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	setDefaults()
	bindEnv()

	if err := viper.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			// 文件存在但解析失败属于配置错误，直接终止
			panic(fmt.Errorf("读取配置文件失败: %w", err))
		}
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("无法将配置解析到结构体中: %w", err))
	}
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("llm.base_url", "https://api.deepseek.com")
	viper.SetDefault("llm.model", "deepseek-chat")
	viper.SetDefault("llm.generation.temperature", 0.7)
	viper.SetDefault("llm.generation.max_tokens", 512)
	viper.SetDefault("chat.freechat_default", true)
	viper.SetDefault("chat.persona", DefaultPersona)
	viper.SetDefault("assets.upload_dir", "./public/uploads")
}

// bindEnv 绑定与原部署环境一致的环境变量名，环境变量优先于配置文件。
func bindEnv() {
	_ = viper.BindEnv("llm.api_key", "DEEPSEEK_API_KEY")
	_ = viper.BindEnv("llm.base_url", "DEEPSEEK_BASE_URL")
	_ = viper.BindEnv("llm.model", "DEEPSEEK_MODEL")
	_ = viper.BindEnv("llm.generation.temperature", "AI_TEMPERATURE")
	_ = viper.BindEnv("llm.generation.max_tokens", "AI_MAX_TOKENS")
	_ = viper.BindEnv("chat.freechat_default", "FREECHAT_DEFAULT")
	_ = viper.BindEnv("assets.upload_dir", "UPLOAD_DIR")
}
