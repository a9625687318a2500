package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/titanic/internal/smoke"
	"github.com/okian/titanic/pkg/logger"
)

var checkCfg smoke.Config

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Smoke test running passenger and predictor services",
	Long: `Runs end-to-end checks against both services: health, the reference
prediction, missing-field rejection, pagination bounds and summary
consistency. Exits non-zero when any check fails.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringVar(&checkCfg.PassengersURL, "passengers-url", smoke.DefaultPassengersURL, "base URL of the passenger service")
	f.StringVar(&checkCfg.PredictorURL, "predictor-url", smoke.DefaultPredictorURL, "base URL of the predictor service")
	f.StringVar(&checkCfg.PathPrefix, "path-prefix", smoke.DefaultPathPrefix, "mount point of the passenger routes")
	f.DurationVar(&checkCfg.Timeout, "timeout", smoke.DefaultTimeout, "HTTP request timeout")
	f.IntVar(&checkCfg.Workers, "workers", smoke.DefaultWorkers, "concurrent prediction workers")
	f.IntVar(&checkCfg.Repeats, "repeats", smoke.DefaultRepeats, "predictions sent by the purity check")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	report := smoke.Run(cmd.Context(), checkCfg, logger.Named("check"))

	out := cmd.OutOrStdout()
	for _, r := range report.Results {
		status := "ok  "
		if !r.Passed() {
			status = "FAIL"
		}
		fmt.Fprintf(out, "%s %-30s %s\n", status, r.Name, r.Duration.Round(time.Microsecond))
		if r.Err != nil {
			fmt.Fprintf(out, "     %v\n", r.Err)
		}
	}
	fmt.Fprintf(out, "%d checks, %d failed in %s\n", len(report.Results), report.Failed(), report.Duration.Round(time.Microsecond))

	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%d smoke checks failed", n)
	}
	return nil
}
