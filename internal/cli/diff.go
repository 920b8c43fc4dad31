package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "diff <project-id> <version-a> <version-b>",
		Short: "Compare two versions",
		Long:  "Compute a fresh unified diff between two version snapshots. Either order is valid; the diff runs from the first id to the second.",
		Args:  cobra.ExactArgs(3),
		Run:   runVersionDiff,
	}
	RootCmd.AddCommand(cmd)
}

func runVersionDiff(cmd *cobra.Command, args []string) {
	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	diff, err := e.ws.Log().Compare(cmd.Context(), args[0], args[1], args[2])
	if err != nil {
		exitErr("diff", err)
	}
	if diff == "" {
		fmt.Println("(no differences)")
		return
	}
	fmt.Print(diff)
}
