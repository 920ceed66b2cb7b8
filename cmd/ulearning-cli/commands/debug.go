package commands

import (
	"fmt"

	"ulearning-export/lib/prefstore"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(debugCmd)
}

var debugCmd = &cobra.Command{
	Use:   "debug [on|off|status]",
	Short: "Toggles persistent debug mode (verbose logging and HTTP exchange dumps).",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := prefstore.Open(*rootPrefs)
		if err != nil {
			return err
		}
		defer prefs.Close()

		action := "status"
		if len(args) > 0 {
			action = args[0]
		}

		switch action {
		case "on", "off":
			if err := prefs.SetBool(cmd.Context(), prefstore.KeyDebugMode, action == "on"); err != nil {
				return err
			}
			fmt.Printf("debug mode %s\n", action)
			return nil
		case "status":
			enabled, err := prefs.GetBool(cmd.Context(), prefstore.KeyDebugMode)
			if err != nil {
				return err
			}
			if enabled {
				fmt.Println("debug mode on")
			} else {
				fmt.Println("debug mode off")
			}
			return nil
		}
		return fmt.Errorf("unknown argument %q, want on, off or status", action)
	},
}
