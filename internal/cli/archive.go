package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "archive <project-id>",
		Short: "Dump a project with its full history as JSON",
		Long:  "Write the project's current state plus its complete history stream, snapshots included, as JSON on stdout. Feed the output to import to restore it elsewhere.",
		Args:  cobra.ExactArgs(1),
		Run:   runArchive,
	}
	RootCmd.AddCommand(cmd)
}

func runArchive(cmd *cobra.Command, args []string) {
	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	arch, err := e.ws.Projects().ExportProject(cmd.Context(), args[0])
	if err != nil {
		exitErr("archive", err)
	}
	printJSON(arch)
}
