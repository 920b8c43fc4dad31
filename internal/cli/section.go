package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/stratadoc/strata/internal/store"
)

func init() {
	sectionCmd := &cobra.Command{
		Use:   "section",
		Short: "Manage project sections",
	}

	addCmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a section",
		Args:  cobra.ExactArgs(1),
		Run:   runSectionAdd,
	}
	addCmd.Flags().StringP("title", "t", "", "Section title (required)")
	addCmd.Flags().String("content", "", "Initial content (or pipe via stdin)")
	addCmd.Flags().String("type", "", "Section type, e.g. introduction, methods")
	addCmd.MarkFlagRequired("title")

	updateCmd := &cobra.Command{
		Use:   "update <project-id> <section-id>",
		Short: "Update a section's title or content",
		Args:  cobra.ExactArgs(2),
		Run:   runSectionUpdate,
	}
	updateCmd.Flags().StringP("title", "t", "", "New title")
	updateCmd.Flags().String("content", "", "New content (or pipe via stdin)")

	rmCmd := &cobra.Command{
		Use:   "rm <project-id> <section-id>",
		Short: "Remove a section",
		Args:  cobra.ExactArgs(2),
		Run:   runSectionRm,
	}

	sectionCmd.AddCommand(addCmd, updateCmd, rmCmd)
	RootCmd.AddCommand(sectionCmd)
}

// stdinContent returns piped stdin, or "" when stdin is a terminal.
func stdinContent() string {
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return ""
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}
	return string(b)
}

func runSectionAdd(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")
	content, _ := cmd.Flags().GetString("content")
	sectionType, _ := cmd.Flags().GetString("type")
	if content == "" {
		content = stdinContent()
	}

	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	id, err := e.ws.AddSection(cmd.Context(), args[0], title, content, sectionType)
	if err != nil {
		exitErr("section add", err)
	}
	printJSON(map[string]string{"section_id": id})
}

func runSectionUpdate(cmd *cobra.Command, args []string) {
	upd := store.SectionUpdate{}
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		upd.Title = &title
	}
	if cmd.Flags().Changed("content") {
		content, _ := cmd.Flags().GetString("content")
		upd.Content = &content
	} else if piped := stdinContent(); piped != "" {
		upd.Content = &piped
	}
	if upd.Title == nil && upd.Content == nil {
		exitErr("section update", fmt.Errorf("nothing to update: pass --title, --content or pipe content"))
	}

	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	ok, err := e.ws.UpdateSection(cmd.Context(), args[0], args[1], upd)
	if err != nil {
		exitErr("section update", err)
	}
	if !ok {
		exitErr("section update", fmt.Errorf("section not found: %s", args[1]))
	}
	printJSON(map[string]bool{"updated": true})
}

func runSectionRm(cmd *cobra.Command, args []string) {
	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	ok, err := e.ws.RemoveSection(cmd.Context(), args[0], args[1])
	if err != nil {
		exitErr("section rm", err)
	}
	if !ok {
		exitErr("section rm", fmt.Errorf("section not found: %s", args[1]))
	}
	printJSON(map[string]bool{"removed": true})
}
