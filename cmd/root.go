package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/kboone/vigil/internal/app"
	"github.com/kboone/vigil/internal/config"
	"github.com/kboone/vigil/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	profileName           string
	logFilePath           string
	iconPath              string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "vigil",
	Short: "TUI for supervising a single long-running command",
	Long: `Vigil starts, watches, and stops one configured command per profile.
The command's stdout and stderr are streamed into a scrollback view, and
sudo commands are handled by prompting for the password in the TUI.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().StringVarP(&profileName, "config", "c", config.DefaultProfile, "Profile name to supervise")
	rootCmd.Flags().StringVar(&logFilePath, "log-file", "", "Mirror command output to this file (empty keeps the profile's setting)")
	rootCmd.Flags().StringVar(&iconPath, "icon", "", "Set the profile's notification icon from this image file")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("vigil %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("vigil %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	profile, err := config.Load(profileName)
	if err != nil {
		return fmt.Errorf("error loading profile: %w", err)
	}

	if err := applyFlagOverrides(cmd, profile); err != nil {
		return err
	}

	// One vigil instance per profile. The profile file's parent directory
	// exists at this point because Load created the profile on first use.
	lockPath, err := config.LockPath(profile.Name())
	if err != nil {
		return fmt.Errorf("error resolving profile lock: %w", err)
	}
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("error acquiring profile lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("profile %q is already being supervised by another vigil instance", profile.Name())
	}
	defer lock.Unlock()

	// Ensure logger is closed on exit
	defer logger.Close()

	// Create and run the app
	m := app.New(profile, version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// applyFlagOverrides folds the one-shot CLI flags into the profile and
// persists them, so the next plain `vigil -c name` keeps the settings.
func applyFlagOverrides(cmd *cobra.Command, profile *config.Profile) error {
	changed := false

	if cmd.Flags().Changed("log-file") {
		profile.EnableLogFile(logFilePath)
		changed = true
	}
	if iconPath != "" {
		if err := profile.SetIcon(iconPath); err != nil {
			return fmt.Errorf("error setting icon: %w", err)
		}
		changed = true
	}

	if changed {
		if err := profile.Save(); err != nil {
			return fmt.Errorf("error saving profile: %w", err)
		}
	}
	return nil
}
