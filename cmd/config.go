package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sushmitharayikanti/ai-job-screening/internal/logger"
	"github.com/sushmitharayikanti/ai-job-screening/internal/scoring"
	"github.com/sushmitharayikanti/ai-job-screening/internal/screening"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved scoring configuration and filter chain",
	Run: func(_ *cobra.Command, _ []string) {
		showConfig()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func showConfig() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	scoringCfg, err := config.Scoring.Resolve()
	if err != nil {
		logger.Fatal("resolving scoring config", zap.Error(err))
	}

	out := struct {
		Config  *Config            `json:"settings"`
		Scoring scoring.Config     `json:"scoring"`
		Filters []screening.Status `json:"filters"`
	}{
		Config:  config,
		Scoring: scoringCfg,
		Filters: screening.Describe(prepareFilters(config, false)),
	}

	if err := printJSON(out); err != nil {
		logger.Fatal("printing config", zap.Error(err))
	}
}
