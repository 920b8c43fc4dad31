package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stratadoc/strata/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Run:   runCreate,
	}

	cmd.Flags().StringP("title", "t", "", "Project title (required, max 100 characters)")
	cmd.Flags().String("description", "", "Project description (required)")
	cmd.Flags().String("type", "article", "Project type: article, thesis, report")
	cmd.Flags().StringSlice("pref", nil, "Preference as key=value (repeatable)")

	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("description")

	RootCmd.AddCommand(cmd)
}

func runCreate(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	projectType, _ := cmd.Flags().GetString("type")
	prefPairs, _ := cmd.Flags().GetStringSlice("pref")

	prefs := make(map[string]string)
	for _, pair := range prefPairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			exitErr("create", fmt.Errorf("bad preference %q, want key=value", pair))
		}
		prefs[k] = v
	}

	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	proj, err := e.ws.CreateProject(cmd.Context(), store.CreateParams{
		Title:       title,
		Description: description,
		ProjectType: projectType,
		Preferences: prefs,
	})
	if err != nil {
		exitErr("create", err)
	}
	printJSON(proj)
}
