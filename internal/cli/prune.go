package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "prune <project-id>",
		Short: "Trim a project's history",
		Long:  "Keep only the most recent N versions plus the actions recorded since the oldest kept version. --keep 0 wipes the whole stream. The prune itself is recorded as an action.",
		Args:  cobra.ExactArgs(1),
		Run:   runPrune,
	}

	cmd.Flags().IntP("keep", "k", -1, "Versions to keep (default: $STRATA_KEEP_VERSIONS or 50)")

	RootCmd.AddCommand(cmd)
}

func runPrune(cmd *cobra.Command, args []string) {
	keep, _ := cmd.Flags().GetInt("keep")

	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	if !cmd.Flags().Changed("keep") {
		keep = e.cfg.KeepVersions
	}

	removed, err := e.ws.Log().Prune(cmd.Context(), args[0], keep, e.cfg.Actor)
	if err != nil {
		exitErr("prune", err)
	}
	printJSON(map[string]int{"removed": removed, "kept": keep})
}
