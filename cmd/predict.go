package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/dropwatch/internal/features"
	"github.com/abhisek/dropwatch/internal/insight"
	"github.com/abhisek/dropwatch/internal/session"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score one hypothetical student",
	Long: "Score one hypothetical student. Unset attributes default to the dataset mean; " +
		"flags default to the majority value.",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		withNote, _ := cmd.Flags().GetBool("note")
		rt, sess, err := openSession(cmd, withNote)
		if err != nil {
			return err
		}
		defer closeRuntime(rt, &err)

		in := predictInput(cmd, features.DefaultInput(sess.Ranges()))
		a, err := sess.Assess(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("no prediction available: %w", err)
		}

		w := cmd.OutOrStdout()
		printAssessment(w, a)

		if withNote {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Counselor note")
			fmt.Fprintln(w, sess.Note(cmd.Context(), a).String())
		}

		if record, _ := cmd.Flags().GetBool("record"); record {
			if err := sess.Record(cmd.Context(), a, session.SourceCLI); err != nil {
				return err
			}
			fmt.Fprintln(w, "\nAssessment recorded.")
		}
		return nil
	},
}

func init() {
	f := predictCmd.Flags()
	f.Float64("age", 0, "Age at enrollment")
	f.Float64("admission-grade", 0, "Admission grade")
	f.Bool("scholarship", false, "Scholarship holder")
	f.Float64("first-sem-grade", 0, "Average first-semester grade")
	f.Bool("tuition-paid", false, "Tuition fees up to date")
	f.Bool("note", false, "Draft a counselor note with the configured LLM provider")
	f.Bool("record", true, "Record the assessment in the event store")
}

// predictInput overlays the flags the user set onto def.
func predictInput(cmd *cobra.Command, def features.Input) features.Input {
	f := cmd.Flags()
	in := def
	if f.Changed("age") {
		in.Age, _ = f.GetFloat64("age")
	}
	if f.Changed("admission-grade") {
		in.AdmissionGrade, _ = f.GetFloat64("admission-grade")
	}
	if f.Changed("scholarship") {
		in.ScholarshipHolder, _ = f.GetBool("scholarship")
	}
	if f.Changed("first-sem-grade") {
		in.FirstSemesterGrade, _ = f.GetFloat64("first-sem-grade")
	}
	if f.Changed("tuition-paid") {
		in.TuitionUpToDate, _ = f.GetBool("tuition-paid")
	}
	return in
}

func printAssessment(w io.Writer, a session.Assessment) {
	for _, kv := range insight.Profile(a.Input) {
		fmt.Fprintf(w, "%-16s %s\n", kv[0]+":", kv[1])
	}
	fmt.Fprintln(w)

	verdict := "not dropout"
	if a.Dropout {
		verdict = "dropout"
	}
	fmt.Fprintf(w, "Probability:     %.4f\n", a.Risk.Probability)
	fmt.Fprintf(w, "Risk:            %s\n", a.Risk.Bucket.DisplayName())
	fmt.Fprintf(w, "Decision:        %s\n", verdict)
	fmt.Fprintf(w, "Evaluation:      %s\n", a.Evaluation)

	fmt.Fprintln(w)
	fmt.Fprintln(w, a.Report.Headline)
	if len(a.Report.Factors) > 0 {
		fmt.Fprintln(w, a.Report.FactorLabel+":")
		printNotes(w, a.Report.Factors)
	}
	fmt.Fprintln(w, a.Report.Advice)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recommended programmes:")
	for i, p := range a.Recommendations.Programs {
		fmt.Fprintf(w, "  %d. %s\n", i+1, p)
	}
}
