package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/stratadoc/strata/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a project archive",
		Long:  "Restore a project archive produced by the archive command, from a file or stdin. An existing project with the same id is overwritten.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}
	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("import", err)
	}

	var arch store.Archive
	if err := json.Unmarshal(data, &arch); err != nil {
		exitErr("import", fmt.Errorf("bad archive: %w", err))
	}

	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	imported, err := e.ws.Projects().ImportProject(cmd.Context(), &arch)
	if err != nil {
		exitErr("import", err)
	}
	printJSON(map[string]any{"project_id": arch.Project.ID, "entries": imported})
}
