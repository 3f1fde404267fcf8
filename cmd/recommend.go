package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/insight"
	"github.com/abhisek/dropwatch/internal/risk"
	"github.com/abhisek/dropwatch/internal/session"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print cohort insights and programmes for sampled students",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		w := cmd.ErrOrStderr()
		rt, err := openRuntime(cmd, runtimeOptions{Warnings: w})
		if err != nil {
			return err
		}
		defer closeRuntime(rt, &err)
		if err := rt.loadData(); err != nil {
			return err
		}

		q := session.CohortQuery{Course: session.AllCourses}
		riskFlag, _ := cmd.Flags().GetString("risk")
		if q.Risk, err = risk.ParseFilter(riskFlag); err != nil {
			return err
		}
		courseName := "All courses"
		if c, _ := cmd.Flags().GetString("course"); c != "" {
			cc, ok := rt.data.ResolveCourse(c)
			if !ok {
				return fmt.Errorf("no course matches %q", c)
			}
			q.Course = cc.Code
			courseName = fmt.Sprintf("%s (%d)", cc.Name, cc.Code)
		}
		if cmd.Flags().Changed("sample") {
			rt.cfg.SampleSize, _ = cmd.Flags().GetInt("sample")
		}

		sess := rt.newSession(nil, w)
		if _, err := sess.Train(cmd.Context()); err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
		}
		c := sess.Cohort(cmd.Context(), q)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Filter:   %s, %s\n", q.Risk.DisplayName(), courseName)
		printCohort(out, c)
		return nil
	},
}

func init() {
	f := recommendCmd.Flags()
	f.String("risk", "all", "Risk filter: all, high, medium or low")
	f.String("course", "", "Course code or part of its name")
	f.Int("sample", 5, "Number of sampled students")
}

func printCohort(w io.Writer, c session.Cohort) {
	if !c.Scored {
		fmt.Fprintln(w, "No trained model is cached; every student is shown as Medium risk.")
	}
	fmt.Fprintf(w, "Matching: %d students\n", c.Data.Len())
	if c.Scored {
		for _, b := range risk.Buckets {
			fmt.Fprintf(w, "  %-12s %6d\n", b.DisplayName(), c.Buckets[b])
		}
	}

	if c.Data.Len() > 0 {
		for _, p := range c.Summary.Panels() {
			printPanel(w, p)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sample students")
	for i, st := range c.Sample {
		fmt.Fprintf(w, "\n%d. row %d, %s: %s (%.2f)\n", i+1, st.Record.Row,
			dataset.CourseName(st.Record.Course), st.Risk.Bucket.DisplayName(), st.Risk.Probability)
		for _, kv := range insight.Profile(st.Input()) {
			fmt.Fprintf(w, "   %-16s %s\n", kv[0]+":", kv[1])
		}
		for _, p := range st.Recommendations.Programs {
			fmt.Fprintf(w, "   → %s\n", p)
		}
	}

	printPanel(w, insight.Strategy)
}

func printPanel(w io.Writer, p insight.Panel) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Title)
	printNotes(w, p.Insights)
	for _, a := range p.Actions {
		fmt.Fprintf(w, "  → %s\n", a)
	}
}
