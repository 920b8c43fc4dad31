package cli

import (
	"github.com/spf13/cobra"

	"github.com/stratadoc/strata/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history <project-id>",
		Short: "Show a project's history, newest first",
		Long:  "Show version and action entries newest-first. Snapshots are omitted; use the snapshot command for full content.",
		Args:  cobra.ExactArgs(1),
		Run:   runHistory,
	}

	cmd.Flags().String("type", "", "Filter by entry type: version or action")
	cmd.Flags().IntP("limit", "l", 0, "Maximum entries (default 50)")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	typeFilter, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	entries, err := e.ws.Log().History(cmd.Context(), store.HistoryParams{
		ProjectID: args[0],
		Type:      typeFilter,
		Limit:     limit,
	})
	if err != nil {
		exitErr("history", err)
	}
	printJSON(entries)
}
