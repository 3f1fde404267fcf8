package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete cached models and recorded events",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cacheOnly, _ := cmd.Flags().GetBool("cache-only")

		rt, err := openRuntime(cmd, runtimeOptions{Warnings: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		defer closeRuntime(rt, &err)

		ctx := cmd.Context()
		w := cmd.OutOrStdout()

		if err := rt.cache.Clear(ctx); err != nil {
			return fmt.Errorf("clear %s cache: %w", rt.backend, err)
		}
		fmt.Fprintf(w, "Cleared %s model cache.\n", rt.backend)

		if cacheOnly {
			return nil
		}
		if err := rt.store.EventRepo().Reset(ctx); err != nil {
			return fmt.Errorf("delete events: %w", err)
		}
		fmt.Fprintln(w, "Deleted recorded assessments and LLM events.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("cache-only", false, "Only clear cached models, keep recorded events")
}
