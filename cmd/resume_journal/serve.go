package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tonypottakkal/verba-resume-journal/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server that exposes REST endpoints for work logs, skill tracking, and resume generation.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := newApp(context.Background())
	if err != nil {
		return err
	}

	port := a.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv := server.New(server.Config{
		Port:       port,
		AuthSecret: a.cfg.AuthSecret,
		ReportTopN: 10,
	}, server.Deps{
		WorkLogs:   a.worklogs,
		Generator:  a.generator,
		Skills:     a.skills,
		Extractor:  a.extractor,
		Log:        a.log,
		OnShutdown: a.Close,
	})

	return srv.Start()
}
