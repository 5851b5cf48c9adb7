// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/truevis/aifab-titanic/internal/config"
	"github.com/truevis/aifab-titanic/internal/dataset"
	"github.com/truevis/aifab-titanic/internal/server"
	"github.com/truevis/aifab-titanic/pkg/logging"
)

var (
	configPath string
	listenAddr string
	dataPath   string

	rootCmd = &cobra.Command{
		Use:   "titanic",
		Short: "Interactive explorer for the Titanic passenger manifest",
		Long: `titanic serves a browser-based exploration of the Titanic dataset:
filtering, grouping, pivoting, title extraction, and chart rendering,
all computed on demand from one cached in-memory table.`,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the explorer HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(logging.Config{
				Level:   logging.ParseLevel(cfg.LogLevel),
				LogDir:  cfg.LogDir,
				Service: "explorer",
			})
			defer logger.Close()

			store := dataset.NewStore(cfg.DatasetPath, logger)

			// Fail fast when the dataset is unreadable: a LoadError is
			// fatal at session init, not something to discover later.
			if _, err := store.Get(dataset.DefaultSession); err != nil {
				return fmt.Errorf("initializing dataset: %w", err)
			}

			return server.New(cfg, logger, store).Run()
		},
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect",
		Short: "Print the dataset overview and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.Load(cfg.DatasetPath)
			if err != nil {
				return err
			}
			ov := ds.Overview()
			fmt.Printf("Rows:    %d\n", ov.Rows)
			fmt.Printf("Columns: %d\n", ov.Columns)
			fmt.Printf("Memory:  %.1f KB\n", float64(ov.MemoryBytes)/1024)
			fmt.Println("Schema:")
			for _, col := range ov.Schema {
				fmt.Printf("  %-12s %s\n", col.Name, col.Type)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}
		if dataPath != "" {
			cfg.DatasetPath = dataPath
		}
		if _, statErr := os.Stat(configPath); statErr == nil {
			log.Println("Configuration loaded successfully.")
		}
	}

	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&dataPath, "dataset", "", "dataset path (overrides config)")
	inspectCmd.Flags().StringVar(&dataPath, "dataset", "", "dataset path (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
}
