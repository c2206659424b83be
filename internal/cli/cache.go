package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"personarank/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the extraction cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the extraction cache for the input directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.CacheDBPath(inputDir)
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("No cache to clear.")
				return nil
			}
			return fmt.Errorf("failed to remove cache: %w", err)
		}
		fmt.Printf("Removed %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
