package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"descgen/internal/render"
)

var viewCmd = &cobra.Command{
	Use:   "view <description-id>",
	Short: "Show one generated description from the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, err := flow.View(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		pairs := [][2]string{
			{"id", desc.ID},
			{"type", string(desc.Type)},
			{"input", desc.InputText},
			{"description", desc.GeneratedDescription},
			{"created", desc.CreatedAt.Format("2006-01-02 15:04:05")},
		}
		if desc.ModelVersion != "" {
			pairs = append(pairs, [2]string{"model", desc.ModelVersion})
		}
		if desc.TokensUsed != nil {
			pairs = append(pairs, [2]string{"tokens", strconv.Itoa(*desc.TokensUsed)})
		}
		if desc.ProcessingTime > 0 {
			pairs = append(pairs, [2]string{"took", fmt.Sprintf("%.2fs", desc.ProcessingTime)})
		}
		fmt.Println(render.Detail(pairs))
		return nil
	},
}

var viewSavedCmd = &cobra.Command{
	Use:   "view-saved <saved-id>",
	Short: "Show one saved description from the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, err := client.GetSavedDescription(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		visibility := "private"
		if desc.IsPublic {
			visibility = "public"
		}
		fmt.Println(render.Detail([][2]string{
			{"id", desc.ID},
			{"title", desc.Title},
			{"type", string(desc.Type)},
			{"category", desc.Category},
			{"tags", strings.Join(desc.Tags, ", ")},
			{"visibility", visibility},
			{"content", desc.Content},
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(viewSavedCmd)
}
