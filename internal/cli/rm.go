package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <project-id>",
		Short: "Delete a project and its history",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}
	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	if err := e.ws.Projects().Delete(cmd.Context(), args[0]); err != nil {
		exitErr("rm", err)
	}
	printJSON(map[string]bool{"deleted": true})
}
