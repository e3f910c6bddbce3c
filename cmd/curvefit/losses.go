package main

import (
	"fmt"

	"github.com/cwbudde/curvefit/loss"
	"github.com/spf13/cobra"
)

var lossesCmd = &cobra.Command{
	Use:   "losses",
	Short: "List the registered loss functions",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range loss.Names() {
			if name == loss.DefaultName {
				fmt.Printf("%s (default)\n", name)
				continue
			}
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(lossesCmd)
}
