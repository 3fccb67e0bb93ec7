package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log       Log       `yaml:"log"`
	Server    Server    `yaml:"server"`
	RentalAPI RentalAPI `yaml:"rental_api"`
	LLM       LLM       `yaml:"llm"`
	Session   Session   `yaml:"session"`
	MCP       MCP       `yaml:"mcp"`
}

type Server struct {
	// HTTP port the agent listens on
	Port int `yaml:"port" example:"8765"`
}

type RentalAPI struct {
	// Rental listing API root address
	BaseURL string `yaml:"base_url" example:"http://localhost:8080"`
	// Employee id sent as X-User-ID, required by the house endpoints
	UserID string `yaml:"user_id" example:"EMP_12345" validate:"required"`
	// Request timeout in seconds
	TimeoutSeconds int `yaml:"timeout_seconds" example:"30"`
}

type LLM struct {
	// OpenAI-compatible base url, leave empty to disable model extraction
	BaseURL string `yaml:"base_url" example:"https://openrouter.ai/api/v1"`
	// OpenAI token
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX"`
	// Model name
	Model string `yaml:"model" example:"qwen3"`
	// Port of a model service addressed via the request's model_ip
	ServicePort int `yaml:"service_port" example:"8888"`
	// Path prefix of such a model service
	ServicePath string `yaml:"service_path" example:"/v1"`
}

type Session struct {
	// How many recent exchanges each session keeps
	MaxHistoryTurns int `yaml:"max_history_turns" example:"10"`
}

type MCP struct {
	// Serve the listing toolset on stdio
	Enabled bool `yaml:"enabled" example:"false"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Port == 0 {
		result.Server.Port = 8765
	}
	if result.RentalAPI.BaseURL == "" {
		result.RentalAPI.BaseURL = "http://localhost:8080"
	}
	if result.RentalAPI.TimeoutSeconds == 0 {
		result.RentalAPI.TimeoutSeconds = 30
	}
	if result.LLM.Model == "" {
		result.LLM.Model = "qwen3"
	}
	if result.LLM.ServicePort == 0 {
		result.LLM.ServicePort = 8888
	}
	if result.LLM.ServicePath == "" {
		result.LLM.ServicePath = "/v1"
	}
	if result.Session.MaxHistoryTurns == 0 {
		result.Session.MaxHistoryTurns = 10
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
