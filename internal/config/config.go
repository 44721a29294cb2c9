package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"jol/internal/logger"
)

// Config holds everything the client and the mock backend read at startup.
type Config struct {
	APIBase          string
	SortBy           string
	SortOrder        string
	Locale           string
	RequestTimeout   time.Duration
	ScrollDelay      time.Duration
	HighlightHold    time.Duration
	PlaceholderImage string

	LogLevel string
	LogFile  string

	MockAddr string
	MockDB   string

	// An empty OpenAIKey keeps the mock backend on its keyword rules.
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
}

const (
	KeyAPIBase          = "api_base"
	KeySortBy           = "sort_by"
	KeySortOrder        = "sort_order"
	KeyLocale           = "locale"
	KeyRequestTimeout   = "request_timeout"
	KeyScrollDelay      = "highlight.scroll_delay"
	KeyHighlightHold    = "highlight.hold"
	KeyPlaceholderImage = "placeholder_image"
	KeyLogLevel         = "log.level"
	KeyLogFile          = "log.file"
	KeyMockAddr         = "mock.addr"
	KeyMockDB           = "mock.db"
	KeyOpenAIKey        = "mock.openai_api_key"
	KeyOpenAIModel      = "mock.openai_model"
	KeyOpenAIBaseURL    = "mock.openai_base_url"
)

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIBase, "http://localhost:8000")
	v.SetDefault(KeySortBy, "last_boosted_at")
	v.SetDefault(KeySortOrder, "DESC")
	v.SetDefault(KeyLocale, "ko")
	v.SetDefault(KeyRequestTimeout, time.Duration(0))
	v.SetDefault(KeyScrollDelay, 500*time.Millisecond)
	v.SetDefault(KeyHighlightHold, 3*time.Second)
	v.SetDefault(KeyPlaceholderImage, "https://via.placeholder.com/100")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyMockAddr, ":8000")
	v.SetDefault(KeyMockDB, "")
	v.SetDefault(KeyOpenAIKey, "")
	v.SetDefault(KeyOpenAIModel, "gpt-4o-mini")
	v.SetDefault(KeyOpenAIBaseURL, "")
}

// New returns a viper instance wired for JOL_ environment variables.
// Nested keys map to underscores: JOL_HIGHLIGHT_HOLD, JOL_LOG_LEVEL.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("JOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyOpenAIKey, "JOL_MOCK_OPENAI_API_KEY", "OPENAI_API_KEY")
	return v
}

// Load reads .env (if present) and an optional config file, then decodes v.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using process environment")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		APIBase:          v.GetString(KeyAPIBase),
		SortBy:           v.GetString(KeySortBy),
		SortOrder:        v.GetString(KeySortOrder),
		Locale:           v.GetString(KeyLocale),
		RequestTimeout:   v.GetDuration(KeyRequestTimeout),
		ScrollDelay:      v.GetDuration(KeyScrollDelay),
		HighlightHold:    v.GetDuration(KeyHighlightHold),
		PlaceholderImage: v.GetString(KeyPlaceholderImage),
		LogLevel:         v.GetString(KeyLogLevel),
		LogFile:          v.GetString(KeyLogFile),
		MockAddr:         v.GetString(KeyMockAddr),
		MockDB:           v.GetString(KeyMockDB),
		OpenAIKey:        v.GetString(KeyOpenAIKey),
		OpenAIModel:      v.GetString(KeyOpenAIModel),
		OpenAIBaseURL:    v.GetString(KeyOpenAIBaseURL),
	}
	if cfg.APIBase == "" {
		return nil, fmt.Errorf("%s must not be empty", KeyAPIBase)
	}
	return cfg, nil
}
