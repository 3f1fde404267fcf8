package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/dropwatch/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the dashboard (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI. A
// dataset that fails to load is shown on an error page.
func runApp(cmd *cobra.Command) (err error) {
	rt, err := openRuntime(cmd, runtimeOptions{Warnings: io.Discard})
	if err != nil {
		return err
	}
	defer closeRuntime(rt, &err)

	if err := rt.loadData(); err != nil {
		return app.Run(app.Options{LoadErr: err})
	}

	// Provider problems are reported before the alternate screen starts.
	adv := rt.newAdvisor(cmd.Context(), os.Stderr)
	if !adv.Enabled() {
		fmt.Fprintln(os.Stderr, "LLM provider not configured; counselor notes will be unavailable.")
	}

	return app.Run(app.Options{Session: rt.newSession(adv, io.Discard)})
}
