package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "snapshot <project-id> <version-id>",
		Short: "Show the full project state captured by a version",
		Args:  cobra.ExactArgs(2),
		Run:   runSnapshot,
	}
	RootCmd.AddCommand(cmd)
}

func runSnapshot(cmd *cobra.Command, args []string) {
	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	snap, err := e.ws.Log().Snapshot(cmd.Context(), args[0], args[1])
	if err != nil {
		exitErr("snapshot", err)
	}
	printJSON(snap)
}
