package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project's current state",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}
	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	proj, err := e.ws.Projects().Load(cmd.Context(), args[0])
	if err != nil {
		exitErr("show", err)
	}
	printJSON(proj)
}
