package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "restore <project-id> <version-id>",
		Short: "Restore a project to a recorded version",
		Long:  "Overwrite current state with a version's snapshot. History is preserved: the restoration is appended as a new version, past entries are never rewritten.",
		Args:  cobra.ExactArgs(2),
		Run:   runRestore,
	}
	RootCmd.AddCommand(cmd)
}

func runRestore(cmd *cobra.Command, args []string) {
	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	if !e.ws.Restore(cmd.Context(), args[0], args[1]) {
		fmt.Fprintf(os.Stderr, "restore failed: version %s not applied\n", args[1])
		os.Exit(1)
	}
	printJSON(map[string]string{"restored": args[1]})
}
