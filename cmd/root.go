package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sushmitharayikanti/ai-job-screening/internal/scoring"
	"github.com/sushmitharayikanti/ai-job-screening/internal/screening"
)

const (
	app = "screener"
)

type Config struct {
	Workers     int                `mapstructure:"workers" json:"workers"`
	HistoryFile string             `mapstructure:"history-file" json:"history-file"`
	Scoring     *scoring.Overrides `mapstructure:"scoring" json:"-"`
	Judge       *JudgeConfig       `mapstructure:"judge" json:"judge"`
	Questions   *QuestionsConfig   `mapstructure:"questions" json:"questions"`
}

type JudgeConfig struct {
	Enabled  bool          `mapstructure:"enabled" json:"enabled"`
	Provider string        `mapstructure:"provider" json:"provider"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout"`
	Gemini   *GeminiConfig `mapstructure:"gemini" json:"gemini"`
	OpenAI   *OpenAIConfig `mapstructure:"openai" json:"openai"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file" json:"api-key-file"`
	Model        string `mapstructure:"model" json:"model"`
	MaxRetries   int    `mapstructure:"max-retries" json:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length" json:"max-log-length"`
}

type OpenAIConfig struct {
	BaseURL    string `mapstructure:"base-url" json:"base-url"`
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file" json:"api-key-file"`
	Model      string `mapstructure:"model" json:"model"`
	MaxRetries int    `mapstructure:"max-retries" json:"max-retries"`
}

type QuestionsConfig struct {
	Enabled  bool     `mapstructure:"enabled" json:"enabled"`
	MinScore *float64 `mapstructure:"min-score" json:"min-score,omitempty"`
	Count    int      `mapstructure:"count" json:"count"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "screener scores candidates against job postings and builds a shortlist",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"workers":                   "SCREENER_WORKERS",
		"history-file":              "SCREENER_HISTORY_FILE",
		"judge.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"judge.openai.api-key-file": "OPENAI_API_KEY_FILE",
		"judge.openai.base-url":     "OPENAI_BASE_URL",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("workers", screening.DefaultWorkers)
	viper.SetDefault("judge.provider", "gemini")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Without a config file every setting falls back to its default. An
	// explicit --config that cannot be read is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Judge == nil {
		config.Judge = &JudgeConfig{}
	}
	if config.Judge.Gemini == nil {
		config.Judge.Gemini = &GeminiConfig{}
	}
	if config.Judge.OpenAI == nil {
		config.Judge.OpenAI = &OpenAIConfig{}
	}
	if config.Questions == nil {
		config.Questions = &QuestionsConfig{}
	}
	if config.Scoring == nil {
		config.Scoring = &scoring.Overrides{}
	}

	return config, nil
}
