package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-scorer/internal/app"
	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/services"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a résumé file against a job description",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runScore(cmd.Context())
	},
}

type scoreOutput struct {
	models.ScoreResponse
	Breakdown *models.ScoreBreakdown `json:"breakdown,omitempty"`
	Entities  *models.EntitySet      `json:"entities,omitempty"`
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "résumé file (.pdf, .docx or .txt)")
	scoreCmd.Flags().String("job", "", "file holding the job description")
	scoreCmd.Flags().String("job-text", "", "job description text")
	scoreCmd.Flags().StringP("category", "c", "", "job category, e.g. 'backend engineer'")
	scoreCmd.Flags().StringP("experience", "e", "", "required experience, e.g. '3+ years'")
	scoreCmd.Flags().BoolP("breakdown", "b", false, "include the score breakdown and extracted entities")

	for _, name := range []string{"resume", "job", "job-text", "category", "experience", "breakdown"} {
		viper.BindPFlag("score."+name, scoreCmd.Flags().Lookup(name))
	}
	scoreCmd.MarkFlagRequired("resume")
	scoreCmd.MarkFlagsMutuallyExclusive("job", "job-text")
}

func runScore(ctx context.Context) error {
	cfg, zl := setup()
	defer zl.Sync() //nolint:errcheck

	components, err := app.Build(ctx, cfg, zl)
	if err != nil {
		return fmt.Errorf("initializing scoring services: %w", err)
	}

	jobDescription, err := readJobDescription(components.Extractor)
	if err != nil {
		return err
	}

	resumePath := viper.GetString("score.resume")
	data, err := os.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("reading résumé: %w", err)
	}

	result, err := components.Scorer.ScoreDocument(ctx, models.ResumeDocument{
		Filename: filepath.Base(resumePath),
		Data:     data,
	}, models.JobContext{
		Description: jobDescription,
		Category:    viper.GetString("score.category"),
		Experience:  viper.GetString("score.experience"),
	})
	if err != nil {
		if errors.Is(err, services.ErrExtractionFailed) {
			zl.Error(services.ExtractionFailureMessage, zap.String("file", resumePath), zap.Error(err))
		}
		return err
	}

	out := scoreOutput{ScoreResponse: result.Response()}
	if viper.GetBool("score.breakdown") {
		out.Breakdown = &result.Breakdown
		out.Entities = &result.Entities
	}

	pretty, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))

	return nil
}

func readJobDescription(extractor services.TextExtractorService) (string, error) {
	if text := viper.GetString("score.job-text"); text != "" {
		return text, nil
	}

	path := viper.GetString("score.job")
	if path == "" {
		return "", errors.New("either --job or --job-text is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading job description: %w", err)
	}

	text, err := extractor.ExtractText(filepath.Base(path), data)
	if err != nil {
		return "", fmt.Errorf("extracting job description: %w", err)
	}

	return text, nil
}
