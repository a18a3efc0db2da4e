package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/iwvelando/trid-reconcile/internal/document"
	"github.com/iwvelando/trid-reconcile/internal/reconcile"
	"github.com/iwvelando/trid-reconcile/pkg/adapters"
	"github.com/iwvelando/trid-reconcile/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type reconcileFlags struct {
	le           string
	cd           string
	matched      string
	loanAmount   float64
	interestRate float64
}

func reconcileCmd() *cobra.Command {
	flags := &reconcileFlags{}
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile a Loan Estimate against a Closing Disclosure",
		Long: `Reconcile either two structured disclosure documents (--le and --cd, given in
any order) or a list of fees already paired by an external matcher
(--matched). The report is written to stdout in the configured output format.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := buildRequest(cmd, flags)
			if err != nil {
				return err
			}

			res, err := reconcile.New(logger).Run(req, conf.Rules)
			if err != nil {
				return fmt.Errorf("failed to reconcile: %w", err)
			}

			logger.Debug("reconciliation finished",
				zap.String("op", "main.reconcile"),
				zap.Int("exceptions", len(res.Exceptions)),
			)
			return output.Write(cmd.OutOrStdout(), conf.Output.Format, res)
		},
	}

	cmd.Flags().StringVar(&flags.le, "le", "", "path to the Loan Estimate JSON record")
	cmd.Flags().StringVar(&flags.cd, "cd", "", "path to the Closing Disclosure JSON record")
	cmd.Flags().StringVar(&flags.matched, "matched", "", "path to a JSON array of pre-matched fees")
	cmd.Flags().Float64Var(&flags.loanAmount, "loan-amount", 0, "loan amount for per-diem interest checks")
	cmd.Flags().Float64Var(&flags.interestRate, "interest-rate", 0, "annual interest rate percent for per-diem interest checks")
	cmd.MarkFlagsRequiredTogether("le", "cd")
	cmd.MarkFlagsOneRequired("le", "matched")

	return cmd
}

func buildRequest(cmd *cobra.Command, flags *reconcileFlags) (reconcile.Request, error) {
	req := reconcile.Request{Overrides: conf.RuleOverrides()}

	if flags.le != "" {
		le, err := document.Load(flags.le)
		if err != nil {
			return req, err
		}
		cd, err := document.Load(flags.cd)
		if err != nil {
			return req, err
		}
		req.LoanEstimate, req.ClosingDisclosure = le, cd
	}

	if flags.matched != "" {
		matched, err := loadMatchedFees(flags.matched)
		if err != nil {
			return req, err
		}
		req.MatchedFees = matched
	}

	if cmd.Flags().Changed("loan-amount") {
		v := flags.loanAmount
		req.Loan.LoanAmount = &v
	}
	if cmd.Flags().Changed("interest-rate") {
		v := flags.interestRate
		req.Loan.InterestRate = &v
	}
	return req, nil
}

func loadMatchedFees(path string) ([]adapters.MatchedFee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read matched fees: %w", err)
	}
	var matched []adapters.MatchedFee
	if err := json.Unmarshal(data, &matched); err != nil {
		return nil, fmt.Errorf("failed to parse matched fees %s: %w", path, err)
	}
	if len(matched) == 0 {
		return nil, errors.New("matched fee list is empty")
	}
	return matched, nil
}
