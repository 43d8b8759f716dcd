package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"descgen/internal/model"
	"descgen/internal/render"
	"descgen/internal/workflow"
)

var (
	generateSave     bool
	generateTitle    string
	generateCategory string
	generateTags     string
	generatePublic   bool
	generateSuggest  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <guitar|company> <input text...>",
	Short: "Generate a description from input text",
	Long: `Generate a description of the given type from free-form input text.

With --save the result is stored in the library immediately; --title is then
required and --suggest asks the backend to fill in missing category/tags.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := model.ParseDescriptionType(args[0])
		if err != nil {
			return err
		}
		input := strings.Join(args[1:], " ")

		result, err := flow.Generate(cmd.Context(), typ, input)
		if err != nil {
			return err
		}

		fmt.Println(render.Detail([][2]string{
			{"id", result.DescriptionID},
			{"type", string(result.Type)},
			{"description", result.Output},
		}))

		if !generateSave {
			return nil
		}

		id, err := flow.SaveCurrent(cmd.Context(), workflow.SaveOptions{
			Title:    generateTitle,
			Category: generateCategory,
			Tags:     generateTags,
			Public:   generatePublic,
			Suggest:  generateSuggest,
		})
		if err != nil {
			return fmt.Errorf("generated but not saved: %w", err)
		}
		fmt.Println("saved:", id)
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "save the result to the library")
	generateCmd.Flags().StringVar(&generateTitle, "title", "", "title for the saved record (required with --save)")
	generateCmd.Flags().StringVar(&generateCategory, "category", "", "category for the saved record")
	generateCmd.Flags().StringVar(&generateTags, "tags", "", "comma-separated tags for the saved record")
	generateCmd.Flags().BoolVar(&generatePublic, "public", false, "make the saved record public")
	generateCmd.Flags().BoolVar(&generateSuggest, "suggest", false, "ask the backend to suggest missing category/tags")
	rootCmd.AddCommand(generateCmd)
}
