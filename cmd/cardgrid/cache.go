package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/cardgrid/internal/adapter"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached pages and saved locations",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached pages and saved locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := adapter.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ClearCache(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", cfg.Cache.Dir)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
