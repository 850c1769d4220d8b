package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderDeepInfra = "deepinfra"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderWhisper   = "whisper"

	DefaultLLMBaseURL    = "https://api.deepinfra.com/v1/openai"
	DefaultLLMModel      = "deepseek-ai/DeepSeek-R1"
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultWhisperSize   = "base"
	DefaultMaxUploadSize = 25 << 20
)

type Config struct {
	Server      ServerConfig
	LLM         LLMConfig
	Transcriber TranscriberConfig
	Storage     StorageConfig
	S3          S3Config
}

type ServerConfig struct {
	Port string
	Env  string
}

// LLMConfig selects the remote model used for profile extraction and fit evaluation.
type LLMConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	MaxAttempts int
}

// TranscriberConfig selects the speech backend. ModelSize only matters for
// the whisper provider and is ignored when Model is set explicitly.
type TranscriberConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	ModelSize   string
	Model       string
	Concurrency int
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Load reads .env (if any) and JOBFIT_-prefixed environment variables over the defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	v := viper.New()
	v.SetEnvPrefix("JOBFIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8000")
	v.SetDefault("server.env", "development")

	v.SetDefault("llm.provider", ProviderDeepInfra)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", DefaultLLMBaseURL)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.max_attempts", 1)

	v.SetDefault("transcriber.provider", ProviderWhisper)
	v.SetDefault("transcriber.api_key", "")
	v.SetDefault("transcriber.base_url", "")
	v.SetDefault("transcriber.model_size", DefaultWhisperSize)
	v.SetDefault("transcriber.model", "")
	v.SetDefault("transcriber.concurrency", 1)

	v.SetDefault("storage.upload_path", filepath.Join(os.TempDir(), "jobfit-uploads"))
	v.SetDefault("storage.max_file_size", DefaultMaxUploadSize)

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")

	// Later names win only when the earlier ones are unset.
	envBindings := map[string][]string{
		"server.port":             {"JOBFIT_SERVER_PORT", "PORT"},
		"server.env":              {"JOBFIT_SERVER_ENV", "ENV"},
		"llm.provider":            {"JOBFIT_LLM_PROVIDER"},
		"llm.api_key":             {"JOBFIT_LLM_API_KEY", "DEEPINFRA_TOKEN", "GEMINI_API_KEY"},
		"llm.base_url":            {"JOBFIT_LLM_BASE_URL"},
		"llm.model":               {"JOBFIT_LLM_MODEL"},
		"llm.max_attempts":        {"JOBFIT_LLM_MAX_ATTEMPTS"},
		"transcriber.provider":    {"JOBFIT_TRANSCRIBER_PROVIDER"},
		"transcriber.api_key":     {"JOBFIT_TRANSCRIBER_API_KEY"},
		"transcriber.base_url":    {"JOBFIT_TRANSCRIBER_BASE_URL"},
		"transcriber.model_size":  {"JOBFIT_TRANSCRIBER_MODEL_SIZE", "WHISPER_MODEL_SIZE"},
		"transcriber.model":       {"JOBFIT_TRANSCRIBER_MODEL"},
		"transcriber.concurrency": {"JOBFIT_TRANSCRIBER_CONCURRENCY"},
		"storage.upload_path":     {"JOBFIT_STORAGE_UPLOAD_PATH", "UPLOAD_PATH"},
		"storage.max_file_size":   {"JOBFIT_STORAGE_MAX_FILE_SIZE", "MAX_FILE_SIZE"},
		"s3.region":               {"JOBFIT_S3_REGION"},
		"s3.endpoint":             {"JOBFIT_S3_ENDPOINT"},
		"s3.access_key":           {"JOBFIT_S3_ACCESS_KEY"},
		"s3.secret_key":           {"JOBFIT_S3_SECRET_KEY"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("server.port"),
			Env:  v.GetString("server.env"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			APIKey:      v.GetString("llm.api_key"),
			BaseURL:     v.GetString("llm.base_url"),
			Model:       v.GetString("llm.model"),
			MaxAttempts: v.GetInt("llm.max_attempts"),
		},
		Transcriber: TranscriberConfig{
			Provider:    strings.ToLower(v.GetString("transcriber.provider")),
			APIKey:      v.GetString("transcriber.api_key"),
			BaseURL:     v.GetString("transcriber.base_url"),
			ModelSize:   v.GetString("transcriber.model_size"),
			Model:       v.GetString("transcriber.model"),
			Concurrency: v.GetInt("transcriber.concurrency"),
		},
		Storage: StorageConfig{
			UploadPath:  v.GetString("storage.upload_path"),
			MaxFileSize: v.GetInt64("storage.max_file_size"),
		},
		S3: S3Config{
			Region:    v.GetString("s3.region"),
			Endpoint:  v.GetString("s3.endpoint"),
			AccessKey: v.GetString("s3.access_key"),
			SecretKey: v.GetString("s3.secret_key"),
		},
	}

	cfg.applyProviderDefaults()
	return cfg
}

func (c *Config) applyProviderDefaults() {
	if c.LLM.Model == "" {
		if c.LLM.Provider == ProviderGemini {
			c.LLM.Model = DefaultGeminiModel
		} else {
			c.LLM.Model = DefaultLLMModel
		}
	}
	if c.LLM.Provider == ProviderGemini && c.LLM.BaseURL == DefaultLLMBaseURL {
		c.LLM.BaseURL = ""
	}
	if c.LLM.MaxAttempts < 1 {
		c.LLM.MaxAttempts = 1
	}

	// The speech backend shares the LLM endpoint and credential unless told otherwise.
	if c.Transcriber.APIKey == "" {
		c.Transcriber.APIKey = c.LLM.APIKey
	}
	if c.Transcriber.BaseURL == "" && c.Transcriber.Provider == ProviderWhisper {
		c.Transcriber.BaseURL = DefaultLLMBaseURL
		if c.LLM.Provider != ProviderGemini {
			c.Transcriber.BaseURL = c.LLM.BaseURL
		}
	}
	if c.Transcriber.Model == "" && c.Transcriber.Provider == ProviderGemini {
		c.Transcriber.Model = DefaultGeminiModel
	}
	if c.Transcriber.ModelSize == "" {
		c.Transcriber.ModelSize = DefaultWhisperSize
	}
	if c.Transcriber.Concurrency < 1 {
		c.Transcriber.Concurrency = 1
	}
}

// WhisperModel is the hosted whisper model name for the configured size.
func (t TranscriberConfig) WhisperModel() string {
	if t.Model != "" {
		return t.Model
	}
	return "openai/whisper-" + t.ModelSize
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
