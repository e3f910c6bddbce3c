package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/curvefit/table"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Summarize the columns of a data file",
	Long: `Reads a CSV or Excel data file and prints per-column summary
statistics, useful for picking guesses and spotting bad rows before a
fit.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	tbl, err := table.Read(args[0])
	if err != nil {
		return err
	}

	summaries := tbl.Describe()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tCOUNT\tMEAN\tSTDDEV\tMIN\tMEDIAN\tMAX")
	fmt.Fprintln(w, "------\t-----\t----\t------\t---\t------\t---")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\n",
			s.Name, s.Count, s.Mean, s.StdDev, s.Min, s.Median, s.Max)
	}
	w.Flush()

	fmt.Printf("\n%d row(s), %d column(s)\n", tbl.Len(), len(summaries))
	return nil
}
