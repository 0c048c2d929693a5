package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tsmend/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tsmend",
	Short: "Diagnostic-driven TypeScript source mender",
	Long:  `tsmend repairs recurring TypeScript breakage left behind by code generators and bulk edits`,
}

// main initializes the CLI by setting the command version, registering subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(assertionsCmd)
	rootCmd.AddCommand(importsCmd)
	rootCmd.AddCommand(narrowCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("jobs", 1, "number of files processed in parallel")
	rootCmd.PersistentFlags().String("config", "", "path to tsmend.toml (default: walk up from cwd)")
	rootCmd.PersistentFlags().String("paths", "auto", "how to render file paths (auto|absolute|relative|basename)")
	rootCmd.PersistentFlags().Bool("disk-cache", false, "remember clean files between runs")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
