package main

import (
	"os"

	"github.com/spf13/cobra"

	"mandi/log"
)

var verboseFlag bool

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "print every display event")
}

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Drive the chat from stdin commands on a virtual clock",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Close()
		return runScript(cfg, os.Stdin, os.Stdout, verboseFlag)
	},
}
