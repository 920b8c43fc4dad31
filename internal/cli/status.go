package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status <project-id> <status>",
		Short: "Set project status",
		Long:  "Set project status: created, storyboard_ready, draft_in_progress, revision_in_progress, completed. Any status may follow any other.",
		Args:  cobra.ExactArgs(2),
		Run:   runStatus,
	}
	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	if err := e.ws.SetStatus(cmd.Context(), args[0], args[1]); err != nil {
		exitErr("status", err)
	}
	printJSON(map[string]string{"status": args[1]})
}
