package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "draft <project-id> <section-id> [prompt]",
		Short: "Generate section content with the configured model",
		Long:  "Generate content for a section and record the result as a new version. With no STRATA_OLLAMA_URL set, a deterministic outline scaffold is produced instead.",
		Args:  cobra.MinimumNArgs(2),
		Run:   runDraft,
	}
	RootCmd.AddCommand(cmd)
}

func runDraft(cmd *cobra.Command, args []string) {
	prompt := strings.Join(args[2:], " ")

	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	text, err := e.ws.Draft(cmd.Context(), args[0], args[1], prompt)
	if err != nil {
		exitErr("draft", err)
	}
	fmt.Println(text)
}
