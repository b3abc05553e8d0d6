package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var extractFile string

var extractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Extract skills from text without recording them",
	Long:  "Run skill extraction over text or a file and print the detected skills as JSON. Nothing is recorded in the skill inventory.",
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Read the text from a file")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, args []string) error {
	var content string
	switch {
	case extractFile != "":
		data, err := os.ReadFile(extractFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		content = string(data)
	case len(args) > 0:
		content = args[0]
	default:
		return fmt.Errorf("provide text as an argument or use --file")
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	detected, err := a.extractor.ExtractSkills(ctx, content)
	if err != nil {
		return err
	}

	type detection struct {
		Name         string   `json:"name"`
		Category     string   `json:"category"`
		Confidence   float64  `json:"confidence"`
		ContextScore *float64 `json:"context_score,omitempty"`
	}
	out := make([]detection, 0, len(detected))
	for _, d := range detected {
		out = append(out, detection{
			Name:         d.Name,
			Category:     string(d.Category),
			Confidence:   d.Confidence,
			ContextScore: d.ContextScore,
		})
	}

	encoded, err := json.MarshalIndent(map[string]any{"skills": out}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}
