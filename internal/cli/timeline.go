package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "timeline <project-id>",
		Short: "List versions with word and character counts",
		Long:  "List version summaries newest-first. With --growth, show the oldest-first growth series with per-version word and character deltas.",
		Args:  cobra.ExactArgs(1),
		Run:   runTimeline,
	}

	cmd.Flags().Bool("growth", false, "Show the oldest-first growth series")
	cmd.Flags().IntP("limit", "l", 0, "Maximum versions (default 50, list mode only)")

	RootCmd.AddCommand(cmd)
}

func runTimeline(cmd *cobra.Command, args []string) {
	growth, _ := cmd.Flags().GetBool("growth")
	limit, _ := cmd.Flags().GetInt("limit")

	e, err := openEnv()
	if err != nil {
		exitErr("open store", err)
	}
	defer e.Close()

	if growth {
		series, err := e.timeline.GrowthSeries(cmd.Context(), args[0])
		if err != nil {
			exitErr("timeline", err)
		}
		printJSON(series)
		return
	}

	versions, err := e.timeline.ListVersions(cmd.Context(), args[0], limit)
	if err != nil {
		exitErr("timeline", err)
	}
	printJSON(versions)
}
