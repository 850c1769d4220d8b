package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kponna/jobfitai/internal/config"
	"github.com/kponna/jobfitai/internal/models"
)

var (
	resumePath     string
	jobDescription string
	jobFile        string
	fileType       string
	outputFormat   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one resume and print the result",
	Long:  "One-shot analysis: reads a local or s3:// resume, runs profile extraction and fit evaluation, prints the result and exits.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&resumePath, "resume", "r", "", "resume file path or s3://bucket/key")
	analyzeCmd.Flags().StringVarP(&jobDescription, "job-description", "j", "", "job description text")
	analyzeCmd.Flags().StringVar(&jobFile, "job-file", "", "read the job description from a file")
	analyzeCmd.Flags().StringVarP(&fileType, "type", "t", "", "media type label (pdf, docx, audio, wav, mp3); inferred from the file name when empty")
	analyzeCmd.Flags().StringVarP(&outputFormat, "output", "o", "json", "output format: json or yaml")
	analyzeCmd.MarkFlagsMutuallyExclusive("job-description", "job-file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if outputFormat != "json" && outputFormat != "yaml" {
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}

	jd := jobDescription
	if jobFile != "" {
		data, err := os.ReadFile(jobFile)
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}
		jd = string(data)
	}

	req := models.AnalyzeRequest{
		ResumePath:     resumePath,
		JobDescription: jd,
		FileType:       strings.TrimSpace(fileType),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := setupApp(ctx, config.Load())
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.pipeline.Analyze(ctx, req)
	if err != nil {
		if writeErr := writeOutput(cmd.OutOrStdout(), outputFormat, models.ErrorResponse{Error: err.Error()}); writeErr != nil {
			return errors.Join(err, writeErr)
		}
		return err
	}

	return writeOutput(cmd.OutOrStdout(), outputFormat, result)
}

func writeOutput(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
