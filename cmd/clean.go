package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kboone/vigil/internal/config"
	"github.com/kboone/vigil/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove captured command output and the debug log",
	Long: `Removes all per-profile output mirror files under ~/.vigil/logs and the
vigil debug log. Profiles themselves are kept.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	logsDir, err := config.LogsDir()
	if err != nil {
		return fmt.Errorf("error resolving logs directory: %w", err)
	}

	fmt.Println("This will remove:")
	fmt.Printf("  - All output mirror files in %s\n", logsDir)
	fmt.Printf("  - The debug log at %s\n", logger.DefaultLogPath)

	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	mirrorsCleared, err := config.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing output mirrors: %v\n", err)
	}

	debugCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing debug log: %v\n", err)
	}

	fmt.Println()
	if mirrorsCleared == 0 && debugCleared == 0 {
		fmt.Println("Nothing to clean.")
		return nil
	}
	fmt.Println("Cleaned:")
	if mirrorsCleared > 0 {
		fmt.Printf("  - %d output mirror file(s) removed\n", mirrorsCleared)
	}
	if debugCleared > 0 {
		fmt.Printf("  - %d debug log file(s) removed\n", debugCleared)
	}
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
