package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/orientation/core/analysis"
)

// analyze prints the analysis report of a user, as text or JSON.
func (cli *commandLine) analyze(userID string, asJSON bool) error {
	report, err := cli.analysisSvc.Analyze(context.Background(), userID)
	if err != nil {
		return errors.Cause(err)
	}

	if asJSON {
		enc := json.NewEncoder(cli.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding report")
	}
	cli.printReport(report)
	return nil
}

func (cli *commandLine) printReport(report analysis.Report) {
	fmt.Fprintln(cli.out, "Points forts :")
	for _, s := range report.Strengths {
		fmt.Fprintf(cli.out, "  - %s\n", s)
	}
	fmt.Fprintln(cli.out, "Domaines recommandés :")
	for _, r := range report.Recommendations {
		fmt.Fprintf(cli.out, "  - %s (%.1f/10) : %s\n", r.Field, r.Score, r.Reason)
	}
	fmt.Fprintln(cli.out, "Tests suggérés :")
	for _, t := range report.SuggestedTests {
		fmt.Fprintf(cli.out, "  - %s\n", t)
	}
}
