package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/config"
	"github.com/loganalters123/r2d-reconciliation-tool/internal/importer"
	"github.com/loganalters123/r2d-reconciliation-tool/internal/logger"
	"github.com/loganalters123/r2d-reconciliation-tool/internal/recon"
	"github.com/loganalters123/r2d-reconciliation-tool/internal/report"
)

func newRunCommand() *cobra.Command {
	var (
		ledgerPath string
		bankPath   string
		outDir     string
		configPath string
		cutoff     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a reconciliation pass and write CSV reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, ledgerPath, bankPath, outDir, configPath, cutoff)
		},
	}

	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "R2D ledger export CSV (required)")
	_ = cmd.MarkFlagRequired("ledger")
	cmd.Flags().StringVar(&bankPath, "bank", "", "Chase statement CSV (required)")
	_ = cmd.MarkFlagRequired("bank")
	cmd.Flags().StringVar(&outDir, "out", "recon_out", "output directory for reports")
	cmd.Flags().StringVar(&configPath, "config", "", "r2drecon.yaml path (defaults built in when omitted)")
	cmd.Flags().StringVar(&cutoff, "ignore-debits-before", "", "exclude unmatched debits posted before this date (YYYY-MM-DD)")

	return cmd
}

func runReconcile(cmd *cobra.Command, ledgerPath, bankPath, outDir, configPath, cutoff string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	log := logger.New(cfg.Logging)

	params := recon.ParamsFromConfig(cfg)
	if cutoff != "" {
		t, err := time.Parse("2006-01-02", cutoff)
		if err != nil {
			return fmt.Errorf("parsing --ignore-debits-before: %w", err)
		}
		params.IgnoreDebitsBefore = t
	}

	ledgerFile, err := os.Open(ledgerPath)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer ledgerFile.Close()

	ledger, err := (&importer.R2DParser{}).ParseLedger(ledgerFile)
	if err != nil {
		return fmt.Errorf("parsing ledger: %w", err)
	}

	bankFile, err := os.Open(bankPath)
	if err != nil {
		return fmt.Errorf("opening bank statement: %w", err)
	}
	defer bankFile.Close()

	bank, err := (&importer.ChaseParser{}).ParseBank(bankFile)
	if err != nil {
		return fmt.Errorf("parsing bank statement: %w", err)
	}

	res, err := recon.New(params, log).Reconcile(ledger, bank)
	if err != nil {
		return err
	}

	if err := report.WriteAll(outDir, res); err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}

	printSummary(cmd, res, outDir)
	return nil
}

func printSummary(cmd *cobra.Command, res *recon.Result, outDir string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s\n\n", res.RunID)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, m := range res.Summary {
		fmt.Fprintf(tw, "%s\t%s\n", m.Metric, m.Value.String())
	}
	tw.Flush()

	fmt.Fprintf(out, "\nReports written to %s\n", outDir)
}
