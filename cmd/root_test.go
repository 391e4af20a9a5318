package cmd

import (
	"testing"
)

func TestDebugFlagDefaultTrue(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "true" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "true")
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestConfigFlagDefaultsToDefaultProfile(t *testing.T) {
	flag := rootCmd.Flags().Lookup("config")
	if flag == nil {
		t.Fatal("--config flag not found")
	}
	if flag.DefValue != "default" {
		t.Errorf("--config default = %q, want %q", flag.DefValue, "default")
	}
	if flag.Shorthand != "c" {
		t.Errorf("--config shorthand = %q, want %q", flag.Shorthand, "c")
	}
}

func TestVersionTemplate(t *testing.T) {
	tests := []struct {
		name                  string
		version, commit, date string
		want                  string
	}{
		{"release build", "1.2.3", "abc1234", "2026-01-01", "vigil 1.2.3\n  commit: abc1234\n  built:  2026-01-01\n"},
		{"dev build", "dev", "none", "unknown", "vigil dev\n"},
		{"empty commit", "dev", "", "", "vigil dev\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersionInfo(tt.version, tt.commit, tt.date)
			if got := versionTemplate(); got != tt.want {
				t.Errorf("versionTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}
