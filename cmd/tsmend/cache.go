package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tsmend/internal/engine"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the clean-file cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every remembered clean-file verdict",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := engine.OpenDiskCache("tsmend")
		if err != nil {
			return fmt.Errorf("open disk cache: %w", err)
		}
		if err := cache.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
