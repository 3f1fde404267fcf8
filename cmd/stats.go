package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/insight"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dataset statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ds, err := dataset.Load(cfg.DataPath)
		if err != nil {
			return err
		}
		top, _ := cmd.Flags().GetInt("correlations")
		printStats(cmd.OutOrStdout(), ds, top)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("correlations", "c", 10, "Number of strongest correlations to show (0 = all)")
}

func printStats(w io.Writer, ds *dataset.Dataset, top int) {
	o := ds.Overview()
	rep := ds.Report()
	rule := strings.Repeat("─", 72)

	fmt.Fprintf(w, "Source:      %s\n", ds.Source())
	fmt.Fprintf(w, "Students:    %d\n", o.Total)
	fmt.Fprintf(w, "Dropouts:    %d (%.2f%%)\n", o.Dropouts, o.DropoutRate)
	if dropped := rep.NullRowsDropped + rep.DuplicateRowsDropped; dropped > 0 {
		fmt.Fprintf(w, "Removed:     %d incomplete, %d duplicate rows\n",
			rep.NullRowsDropped, rep.DuplicateRowsDropped)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Status")
	fmt.Fprintln(w, rule)
	counts := ds.StatusCounts()
	for _, c := range counts {
		fmt.Fprintf(w, "%-10s  %6d  %6.2f%%\n", c.Outcome, c.Count, c.Share*100)
	}
	printNotes(w, insight.StatusNotes(counts))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Programmes")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-6s  %-38s  %6s  %7s  %8s  %8s\n", "Code", "Name", "Total", "Dropout", "Enrolled", "Graduate")
	for _, c := range ds.CourseCounts() {
		fmt.Fprintf(w, "%-6d  %-38s  %6d  %7d  %8d  %8d\n", c.Code, truncate(c.Name, 38), c.Count,
			c.ByOutcome[dataset.OutcomeDropout], c.ByOutcome[dataset.OutcomeEnrolled], c.ByOutcome[dataset.OutcomeGraduate])
	}
	printNotes(w, insight.CourseNotes(ds))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Means by status")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-10s  %8s  %10s  %10s\n", "Status", "Age", "Admission", "1st-sem")
	means := ds.MeansByStatus()
	for _, m := range means {
		fmt.Fprintf(w, "%-10s  %8.2f  %10.2f  %10.2f\n", m.Outcome, m.Age, m.AdmissionGrade, m.FirstSemesterGrade)
	}
	printNotes(w, insight.MeansNotes(means))

	corrs := strongest(ds.TargetCorrelations(), top)
	if len(corrs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Correlation with Target")
		fmt.Fprintln(w, rule)
		for _, c := range corrs {
			fmt.Fprintf(w, "%-48s  %+.3f\n", truncate(c.Column, 48), c.Value)
		}
		printNotes(w, insight.CorrelationNotes(ds.TargetCorrelations()))
	}
}

// strongest keeps the n correlations with the largest magnitude, in their
// original ascending order.
func strongest(corrs []dataset.Correlation, n int) []dataset.Correlation {
	if n <= 0 || n >= len(corrs) {
		return corrs
	}
	// corrs is sorted ascending, so the extremes sit at both ends.
	lo, hi := 0, len(corrs)-1
	keep := make(map[int]bool, n)
	for len(keep) < n {
		if math.Abs(corrs[lo].Value) >= math.Abs(corrs[hi].Value) {
			keep[lo] = true
			lo++
		} else {
			keep[hi] = true
			hi--
		}
	}
	out := make([]dataset.Correlation, 0, n)
	for i, c := range corrs {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}

func printNotes(w io.Writer, notes []string) {
	for _, n := range notes {
		fmt.Fprintf(w, "  • %s\n", n)
	}
}
