package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tonypottakkal/verba-resume-journal/internal/export"
	"github.com/tonypottakkal/verba-resume-journal/internal/resume"
)

var (
	generateJobFile    string
	generateTargetRole string
	generateFormat     string
	generateOutFile    string
)

var generateCmd = &cobra.Command{
	Use:   "generate [job description]",
	Short: "Generate a resume tailored to a job description",
	Long:  "Generate a resume from the journaled work experiences most relevant to a job description, and export it as markdown, PDF, or DOCX.",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateJobFile, "job-file", "j", "", "Read the job description from a file")
	generateCmd.Flags().StringVar(&generateTargetRole, "role", "", "Target role label stored with the resume")
	generateCmd.Flags().StringVar(&generateFormat, "format", "markdown", "Output format: markdown, pdf, or docx")
	generateCmd.Flags().StringVarP(&generateOutFile, "out", "o", "", "Write the resume to a file instead of stdout")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, args []string) error {
	var jobDescription string
	switch {
	case generateJobFile != "":
		data, err := os.ReadFile(generateJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description file: %w", err)
		}
		jobDescription = string(data)
	case len(args) > 0:
		jobDescription = args[0]
	default:
		return fmt.Errorf("provide a job description as an argument or use --job-file")
	}

	format, err := export.ParseFormat(generateFormat)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	record, err := a.generator.Generate(ctx, resume.Request{
		JobDescription: jobDescription,
		TargetRole:     generateTargetRole,
	})
	if err != nil {
		return err
	}
	a.log.Infow("resume stored in history", "resume_id", record.ID)

	result, err := export.Export(record.Content, format)
	if err != nil {
		return err
	}

	if generateOutFile == "" {
		if format != export.FormatMarkdown {
			return fmt.Errorf("binary formats need --out")
		}
		fmt.Fprintln(os.Stdout, string(result.Data))
		return nil
	}

	if err := os.WriteFile(generateOutFile, result.Data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stdout, "wrote %s (%d bytes)\n", generateOutFile, len(result.Data))
	return nil
}
