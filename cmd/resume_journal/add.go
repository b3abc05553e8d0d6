package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var addUserID string

var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Journal a work log entry",
	Long:  "Journal a new work log entry, extract the skills it demonstrates, and index it for resume generation.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addUserID, "user", "", "User ID to attribute the entry to")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	entry, err := a.worklogs.Create(ctx, strings.Join(args, " "), addUserID, nil)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
