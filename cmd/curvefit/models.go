package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/curvefit/models"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the built-in model functions",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIGNATURE\tPARAMETERS")
	fmt.Fprintln(w, "----\t---------\t----------")

	for _, name := range models.Names() {
		fn, err := models.Lookup(name)
		if err != nil {
			return err
		}
		sig := fn.Signature()
		fmt.Fprintf(w, "%s\t%s\t%s\n", fn.Name(), fn, strings.Join(sig.Params(), ", "))
	}

	return w.Flush()
}
