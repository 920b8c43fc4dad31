package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stratadoc/strata/internal/export"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export <project-id>",
		Short: "Export a project document",
		Args:  cobra.ExactArgs(1),
		Run:   runExport,
	}

	cmd.Flags().StringP("format", "f", "md", "Output format: txt, md or json")
	cmd.Flags().StringP("out", "o", "", "Output file (default stdout)")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	proj, err := e.ws.Projects().Load(cmd.Context(), args[0])
	if err != nil {
		exitErr("export", err)
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			exitErr("export", err)
		}
		defer f.Close()
		out = f
	}

	if err := export.Write(out, proj, format); err != nil {
		exitErr("export", err)
	}
}
