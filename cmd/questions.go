package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sushmitharayikanti/ai-job-screening/internal/logger"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Score one candidate and print interview questions for them",
	Run: func(cmd *cobra.Command, _ []string) {
		questions(cmd)
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)

	questionsCmd.Flags().String("job", "", "job file (yaml or json)")
	questionsCmd.Flags().StringP("candidates", "c", "", "candidates file (yaml or json) with a top level candidates list")
	questionsCmd.Flags().String("id", "", "candidate id. Default is the first candidate in the file.")

	questionsCmd.MarkFlagRequired("job")
	questionsCmd.MarkFlagRequired("candidates")
}

func questions(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	job, candidates := loadRecords(cmd, logger)

	id := cmd.Flag("id").Value.String()
	index := 0
	if id != "" {
		index = -1
		for i, c := range candidates {
			if c.ID == id {
				index = i
				break
			}
		}
		if index < 0 {
			logger.Fatal("candidate not found", zap.String("id", id))
		}
	}
	candidate := candidates[index]

	adapter, generator, err := newAdapter(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the scorer", zap.Error(err))
	}

	requirement := job.ToRequirement()
	profile := candidate.ToProfile()

	match := adapter.Evaluate(ctx, requirement, profile)
	logger.Info("candidate scored",
		zap.String("candidate", candidate.Name),
		zap.Float64("score", match.OverallScore),
		zap.String("source", string(match.Source)),
	)

	generated := newQuestionGenerator(config, generator, logger).Generate(ctx, requirement, profile, match)

	fmt.Printf("%s (%.2f): %s\n", candidate.Name, match.OverallScore, match.Recommendation)
	for i, q := range generated {
		fmt.Printf("%d. %s\n", i+1, q)
	}
}
