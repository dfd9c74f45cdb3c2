package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sushmitharayikanti/ai-job-screening/internal/logger"
	"github.com/sushmitharayikanti/ai-job-screening/internal/records"
	"github.com/sushmitharayikanti/ai-job-screening/internal/screening"
)

const (
	PromptShowAll         = "Show all results"
	PromptShortlisted     = "Show shortlisted"
	PromptReportByStatus  = "Report by status"
	PromptQuestions       = "Show interview questions"
	PromptResultsToFile   = "Dump results to file"
	PromptAppendToHistory = "Append results to history file"
	PromptExit            = "Exit"
	PromptBack            = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowAll, PromptShortlisted, PromptReportByStatus, PromptQuestions, PromptResultsToFile, PromptAppendToHistory, PromptExit},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score candidates against a job and build the shortlist",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().String("job", "", "job file (yaml or json)")
	scoreCmd.Flags().StringP("candidates", "c", "", "candidates file (yaml or json) with a top level candidates list")
	scoreCmd.Flags().BoolP("auto-approve", "y", false, "do not show the menu, print results and append them to the history file")
	scoreCmd.Flags().BoolP("rescreen", "f", false, "do not skip candidates already screened for the job")
	scoreCmd.Flags().StringP("history-file", "e", "", "json file with already screened candidates. Default is unset.")
	scoreCmd.Flags().IntP("workers", "w", 0, "number of candidates scored concurrently")

	scoreCmd.MarkFlagRequired("job")
	scoreCmd.MarkFlagRequired("candidates")

	viper.BindPFlag("history-file", scoreCmd.Flags().Lookup("history-file"))
	viper.BindPFlag("workers", scoreCmd.Flags().Lookup("workers"))
}

// score is the main command for the cli.
func score(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	job, candidates := loadRecords(cmd, logger)

	adapter, generator, err := newAdapter(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the scorer", zap.Error(err))
	}

	opts := screening.Options{
		Filters: prepareFilters(config, flagIsSet(cmd, "rescreen")),
		Config:  &screening.Config{HistoryFile: config.HistoryFile},
		Workers: config.Workers,
	}
	if config.Questions.Enabled {
		opts.Questions = newQuestionGenerator(config, generator, logger)
	}

	screener := screening.New(adapter, opts, logger)

	logger.Info("starting the screening",
		zap.String("job", job.Title),
		zap.Int("candidates", len(candidates)),
		zap.Bool("judge", adapter.Enabled()),
	)

	results, err := screener.Run(ctx, screening.Deps{Logger: logger}, *job, candidates)
	if err != nil {
		logger.Fatal("screening failed", zap.Error(err))
	}

	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	if flagIsSet(cmd, "auto-approve") {
		if err := printJSON(results); err != nil {
			logger.Fatal("printing results", zap.Error(err))
		}
		if err := appendHistory(config, results, logger); err != nil {
			logger.Fatal("appending to history file", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, config, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func loadRecords(cmd *cobra.Command, logger *zap.Logger) (*records.Job, []records.Candidate) {
	jobFile := cmd.Flag("job").Value.String()
	job, err := records.LoadJob(jobFile)
	if err != nil {
		logger.Fatal("loading the job", zap.Error(err), zap.String("file", jobFile))
	}

	if derived := job.Complete(); len(derived) > 0 {
		logger.Info("job fields derived from the description",
			zap.String("job_id", job.ID),
			zap.Strings("fields", derived),
		)
	}

	candidatesFile := cmd.Flag("candidates").Value.String()
	candidates, err := records.LoadCandidates(candidatesFile)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err), zap.String("file", candidatesFile))
	}

	return job, candidates
}

func handleAction(action string, logger *zap.Logger, config *Config, results *screening.Results) error {
	switch action {
	case PromptShowAll:
		return printJSON(results.Items)
	case PromptShortlisted:
		logger.Info("shortlisted candidates", zap.Int("count", len(results.Shortlisted())))
		return printJSON(results.Shortlisted())
	case PromptReportByStatus:
		pretty, _ := json.MarshalIndent(results.ReportByStatus(), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", results.Len()))
		return nil
	case PromptQuestions:
		return showQuestions(results)
	case PromptResultsToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToHistory:
		return appendHistory(config, results, logger)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showQuestions(results *screening.Results) error {
	for {
		items := make([]string, 0, results.Len())
		for _, item := range results.Items {
			label := fmt.Sprintf("%s %s / %.2f / %d questions",
				item.CandidateID, item.Name, item.Match.OverallScore, len(item.Questions),
			)
			items = append(items, label)
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		candidateID := strings.Split(selected, " ")[0]
		result := results.FindByID(candidateID)
		if result == nil {
			return fmt.Errorf("there is no such candidate id %s", candidateID)
		}

		if len(result.Questions) == 0 {
			fmt.Println("No questions generated. Enable questions in the config to get them.")
			continue
		}
		for i, q := range result.Questions {
			fmt.Printf("%d. %s\n", i+1, q)
		}
	}
}

func appendHistory(config *Config, results *screening.Results, logger *zap.Logger) error {
	historyFile := strings.TrimSpace(config.HistoryFile)
	if historyFile == "" {
		logger.Info("skipping history", zap.String("reason", "history-file is not set"))
		return nil
	}

	history, err := records.LoadHistory(historyFile)
	if err != nil {
		return err
	}

	history.Append(results.ToHistory())

	if err := history.ToFile(historyFile); err != nil {
		return err
	}

	logger.Info("appended to history file", zap.String("filename", historyFile), zap.Int("entries", len(history.Items)))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func flagIsSet(cmd *cobra.Command, name string) bool {
	flag := cmd.Flag(name)
	return flag != nil && strings.EqualFold(flag.Value.String(), "true")
}
