package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"descgen/internal/render"
)

var listCmd = &cobra.Command{
	Use:   "list <corrections|saved|history|examples|prompts>",
	Short: "List stored records, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		switch args[0] {
		case "corrections":
			corrections, err := client.ListCorrections(ctx)
			if err != nil {
				return err
			}
			fmt.Println(render.Corrections.Render(corrections))
		case "saved":
			saved, err := client.ListSavedDescriptions(ctx)
			if err != nil {
				return err
			}
			fmt.Println(render.SavedDescriptions.Render(saved))
		case "history":
			dash, err := flow.RefreshDashboard(ctx)
			if err != nil {
				return err
			}
			fmt.Println(render.GeneratedHistory.Render(dash.GeneratedDescriptions))
		case "examples":
			examples, err := client.ListExamples(ctx)
			if err != nil {
				return err
			}
			fmt.Println(render.Examples.Render(examples))
		case "prompts":
			prompts, err := client.ListPrompts(ctx)
			if err != nil {
				return err
			}
			fmt.Println(render.Prompts.Render(prompts))
		default:
			return fmt.Errorf("unknown list target %q", args[0])
		}
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show recent corrections, saved descriptions and generation history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dash, err := flow.RefreshDashboard(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(render.Corrections.Render(dash.Corrections))
		fmt.Println()
		fmt.Println(render.SavedDescriptions.Render(dash.SavedDescriptions))
		fmt.Println()
		fmt.Println(render.GeneratedHistory.Render(dash.GeneratedDescriptions))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show activity totals and recent counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := client.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(render.Detail([][2]string{
			{"corrections", fmt.Sprintf("%d (%d in the last 7 days)", stats.TotalCorrections, stats.RecentCorrections)},
			{"saved descriptions", fmt.Sprintf("%d", stats.TotalSaved)},
			{"generated", fmt.Sprintf("%d (%d in the last 7 days)", stats.TotalGenerated, stats.RecentGenerated)},
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(statsCmd)
}
