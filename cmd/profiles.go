package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kboone/vigil/internal/config"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the command profiles known to vigil",
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	names, err := config.ListProfiles()
	if err != nil {
		return fmt.Errorf("error listing profiles: %w", err)
	}

	if len(names) == 0 {
		fmt.Println("No profiles found. Run vigil to create the default profile.")
		return nil
	}

	for _, name := range names {
		profile, err := config.Load(name)
		if err != nil {
			fmt.Printf("%s (unreadable: %v)\n", name, err)
			continue
		}
		marker := " "
		if profile.GetAutostart() {
			marker = "*"
		}
		fmt.Printf("%s %s: %s\n", marker, name, profile.GetCommand())
	}
	return nil
}
