package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dropwatch/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded assessments",
	Long:  "List the assessments recorded by the prediction page and `dropwatch predict`, newest first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		source, _ := cmd.Flags().GetString("source")

		s, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().QueryAssessments(cmd.Context(), store.QueryOpts{Limit: limit, Source: source})
		if err != nil {
			return fmt.Errorf("query assessments: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No assessments recorded.")
			return nil
		}

		t := newTable(w, "ID", "Time", "Source", "Age", "Admit", "Sem1", "Sch", "Paid", "P", "Risk", "Programmes")
		for _, e := range events {
			t.rowf("%d\t%s\t%s\t%.0f\t%.1f\t%.2f\t%s\t%s\t%.3f\t%s\t%s",
				e.ID, e.Timestamp.Local().Format(timeLayout), e.Source,
				e.Age, e.AdmissionGrade, e.FirstSemesterGrade,
				yesNo(e.ScholarshipHolder), yesNo(e.TuitionUpToDate),
				e.Probability, e.Bucket, strings.Join(e.Programs, "; "))
		}
		return t.flush()
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of assessments to show")
	historyCmd.Flags().StringP("source", "s", "", "Only show assessments from this source (predict or cli)")
}
