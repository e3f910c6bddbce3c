package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/curvefit"
	"github.com/cwbudde/curvefit/models"
	"github.com/cwbudde/curvefit/opt"
	"github.com/cwbudde/curvefit/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	fitInput      string
	fitModel      string
	fitTarget     string
	fitLoss       string
	fitMethod     string
	fitMaxIters   int
	fitGuesses    []string
	fitFreezes    []string
	fitBounds     []string
	fitWeightsCol string
	fitSigmaCol   string
	fitJSON       bool
	fitBatchPath  string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a model to a data file",
	Long: `Fits a built-in model to a CSV or Excel data file and prints the
estimated parameters with their standard errors.

Argument columns are matched by the model's declared names; the target
column defaults to the model name and is usually set with --target.
Several fits can be batched in a YAML file passed via --batch.`,
	RunE: runFit,
}

func init() {
	fitCmd.Flags().StringVarP(&fitInput, "input", "i", "", "Data file (.csv or .xlsx)")
	fitCmd.Flags().StringVarP(&fitModel, "model", "m", "", "Model name (see 'curvefit models')")
	fitCmd.Flags().StringVar(&fitTarget, "target", "", "Target column (defaults to the model name)")
	fitCmd.Flags().StringVar(&fitLoss, "loss", "", "Loss function (see 'curvefit losses')")
	fitCmd.Flags().StringVar(&fitMethod, "method", "", "Minimizer: nelder-mead, bfgs, lbfgs, cg, newton, mayfly")
	fitCmd.Flags().IntVar(&fitMaxIters, "max-iters", 0, "Iteration budget (0 = method default)")
	fitCmd.Flags().StringArrayVar(&fitGuesses, "param", nil, "Initial guess as name=value (repeatable)")
	fitCmd.Flags().StringArrayVar(&fitFreezes, "freeze", nil, "Pin a parameter as name=value (repeatable)")
	fitCmd.Flags().StringArrayVar(&fitBounds, "bound", nil, "Constrain a parameter as name=low:high (repeatable)")
	fitCmd.Flags().StringVar(&fitWeightsCol, "weights-col", "", "Column with per-point weights")
	fitCmd.Flags().StringVar(&fitSigmaCol, "sigma-col", "", "Column with per-point uncertainties")
	fitCmd.Flags().BoolVar(&fitJSON, "json", false, "Print the result as JSON")
	fitCmd.Flags().StringVar(&fitBatchPath, "batch", "", "YAML file describing several fits")

	rootCmd.AddCommand(fitCmd)
}

// batchFile is the YAML layout accepted by --batch.
type batchFile struct {
	Fits []batchFit `yaml:"fits"`
}

// batchFit describes a single fit, either assembled from flags or read
// from a batch file.
type batchFit struct {
	Input         string                `yaml:"input"`
	Model         string                `yaml:"model"`
	Target        string                `yaml:"target"`
	Loss          string                `yaml:"loss"`
	Method        string                `yaml:"method"`
	MaxIterations int                   `yaml:"maxIterations"`
	Guesses       map[string]float64    `yaml:"guesses"`
	Freeze        map[string]float64    `yaml:"freeze"`
	Bounds        map[string][2]float64 `yaml:"bounds"`
	WeightsColumn string                `yaml:"weightsColumn"`
	SigmaColumn   string                `yaml:"sigmaColumn"`
}

func runFit(cmd *cobra.Command, args []string) error {
	if fitBatchPath != "" {
		return runFitBatch(fitBatchPath)
	}

	if fitInput == "" || fitModel == "" {
		return fmt.Errorf("--input and --model are required (or use --batch)")
	}

	guesses, err := parseAssignments(fitGuesses)
	if err != nil {
		return fmt.Errorf("invalid --param: %w", err)
	}
	freezes, err := parseAssignments(fitFreezes)
	if err != nil {
		return fmt.Errorf("invalid --freeze: %w", err)
	}
	bounds, err := parseBounds(fitBounds)
	if err != nil {
		return fmt.Errorf("invalid --bound: %w", err)
	}

	job := batchFit{
		Input:         fitInput,
		Model:         fitModel,
		Target:        fitTarget,
		Loss:          fitLoss,
		Method:        fitMethod,
		MaxIterations: fitMaxIters,
		Guesses:       guesses,
		Freeze:        freezes,
		Bounds:        bounds,
		WeightsColumn: fitWeightsCol,
		SigmaColumn:   fitSigmaCol,
	}

	res, err := runOneFit(job)
	if err != nil {
		return err
	}
	return printFitResult(job.Model, res, fitJSON)
}

func runFitBatch(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}

	var batch batchFile
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return fmt.Errorf("failed to parse batch file: %w", err)
	}
	if len(batch.Fits) == 0 {
		return fmt.Errorf("batch file %s declares no fits", path)
	}

	failed := 0
	for i, job := range batch.Fits {
		res, err := runOneFit(job)
		if err != nil {
			slog.Error("Fit failed", "index", i, "model", job.Model, "input", job.Input, "error", err)
			failed++
			continue
		}
		if err := printFitResult(job.Model, res, fitJSON); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d fit(s) failed", failed, len(batch.Fits))
	}
	return nil
}

// runOneFit resolves the model, applies freezes and bounds, loads the
// data file and runs the fit.
func runOneFit(job batchFit) (*curvefit.Result, error) {
	fn, err := models.Lookup(job.Model)
	if err != nil {
		return nil, err
	}
	if len(job.Freeze) > 0 {
		fn, err = fn.Freeze(job.Freeze)
		if err != nil {
			return nil, err
		}
	}
	if len(job.Bounds) > 0 {
		intervals := make(map[string]curvefit.Interval, len(job.Bounds))
		for name, b := range job.Bounds {
			intervals[name] = curvefit.Interval{Low: b[0], High: b[1]}
		}
		fn, err = fn.Bound(intervals)
		if err != nil {
			return nil, err
		}
	}

	tbl, err := table.Read(job.Input)
	if err != nil {
		return nil, err
	}

	minimizer, err := opt.ByName(job.Method, job.MaxIterations)
	if err != nil {
		return nil, err
	}
	opts := &curvefit.FitOptions{
		Minimizer:     minimizer,
		WeightsColumn: job.WeightsColumn,
		SigmaColumn:   job.SigmaColumn,
	}
	if job.Loss != "" {
		opts.Loss = job.Loss
	}

	return fn.FitTable(tbl, job.Target, job.Guesses, opts)
}

// paramReport is one fitted parameter in JSON output. Stderr is null
// when no estimate is available.
type paramReport struct {
	Name   string   `json:"name"`
	Value  float64  `json:"value"`
	Stderr *float64 `json:"stderr"`
	Frozen bool     `json:"frozen,omitempty"`
}

type fitReport struct {
	Model      string        `json:"model"`
	Params     []paramReport `json:"params"`
	Cost       float64       `json:"cost"`
	Loss       string        `json:"loss"`
	Iterations int           `json:"iterations"`
	Rendered   string        `json:"rendered"`
}

func printFitResult(model string, res *curvefit.Result, asJSON bool) error {
	if asJSON {
		report := fitReport{
			Model:      model,
			Cost:       res.Cost(),
			Loss:       res.Loss().Name(),
			Iterations: res.Iterations(),
			Rendered:   res.String(),
		}
		for _, p := range res.Params() {
			pr := paramReport{Name: p.Name, Value: p.Value, Frozen: p.Frozen}
			if !math.IsNaN(p.Stderr) {
				stderr := p.Stderr
				pr.Stderr = &stderr
			}
			report.Params = append(report.Params, pr)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println(res)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range res.Params() {
		switch {
		case p.Frozen:
			fmt.Fprintf(w, "  %s\t%.6g\t(frozen)\n", p.Name, p.Value)
		case math.IsNaN(p.Stderr):
			fmt.Fprintf(w, "  %s\t%.6g\t± n/a\n", p.Name, p.Value)
		default:
			fmt.Fprintf(w, "  %s\t%.6g\t± %.3g\n", p.Name, p.Value, p.Stderr)
		}
	}
	w.Flush()
	fmt.Printf("Cost %.6g with %s after %d iteration(s)\n", res.Cost(), res.Loss().Name(), res.Iterations())
	return nil
}

// parseAssignments turns repeated "name=value" flags into a map.
func parseAssignments(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("expected name=value, got %q", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value in %q: %w", pair, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

// parseBounds turns repeated "name=low:high" flags into bound pairs.
// Half-open intervals spell the missing side as -inf or inf.
func parseBounds(pairs []string) (map[string][2]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string][2]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("expected name=low:high, got %q", pair)
		}
		lowRaw, highRaw, ok := strings.Cut(raw, ":")
		if !ok {
			return nil, fmt.Errorf("expected name=low:high, got %q", pair)
		}
		low, err := strconv.ParseFloat(strings.TrimSpace(lowRaw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid lower bound in %q: %w", pair, err)
		}
		high, err := strconv.ParseFloat(strings.TrimSpace(highRaw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid upper bound in %q: %w", pair, err)
		}
		out[strings.TrimSpace(name)] = [2]float64{low, high}
	}
	return out, nil
}
