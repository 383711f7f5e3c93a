package cmd

import (
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Re-read the program file and print the abstract counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return verifyProgram(cmd.OutOrStdout(), cfg.ProgramJSON)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
