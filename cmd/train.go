package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the risk model, or load it from the cache",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		rt, err := openRuntime(cmd, runtimeOptions{Warnings: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		defer closeRuntime(rt, &err)
		if err := rt.loadData(); err != nil {
			return err
		}

		if force, _ := cmd.Flags().GetBool("force"); force {
			if err := rt.models.Forget(cmd.Context(), rt.data); err != nil {
				return fmt.Errorf("drop cached model: %w", err)
			}
		}

		start := time.Now()
		res, err := rt.models.Train(cmd.Context(), rt.data)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		source := "trained"
		if res.CacheHit {
			source = "loaded from cache"
		}
		fmt.Fprintf(w, "Model:       %s in %s\n", source, time.Since(start).Round(time.Millisecond))
		fmt.Fprintf(w, "Cache:       %s (%s)\n", rt.backend, res.Key[:16])
		fmt.Fprintf(w, "Rows:        %d trained, %d support vectors\n", res.Model.TrainedRows(), res.Model.SupportVectors())
		fmt.Fprintf(w, "Evaluation:  %s\n", res.Evaluation)
		st := rt.cache.Stats()
		fmt.Fprintf(w, "Lookups:     %d hit, %d miss, %d error\n", st.Hits, st.Misses, st.Errors)
		return nil
	},
}

func init() {
	trainCmd.Flags().Bool("force", false, "Drop the cached model and retrain")
}
