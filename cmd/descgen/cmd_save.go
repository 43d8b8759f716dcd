package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"descgen/internal/model"
	"descgen/internal/workflow"
)

var (
	saveType     string
	saveTitle    string
	saveCategory string
	saveTags     string
	savePublic   bool
	saveSuggest  bool
)

var saveCmd = &cobra.Command{
	Use:   "save <content...>",
	Short: "Save text to the description library",
	Long: `Save free-standing text to the library.

With --suggest the backend proposes a category and tags from the existing
public library; explicit --category/--tags always win over suggestions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := model.ParseDescriptionType(saveType)
		if err != nil {
			return err
		}

		id, err := flow.Save(cmd.Context(), workflow.SaveOptions{
			Type:     typ,
			Content:  strings.Join(args, " "),
			Title:    saveTitle,
			Category: saveCategory,
			Tags:     saveTags,
			Public:   savePublic,
			Suggest:  saveSuggest,
		})
		if err != nil {
			return err
		}
		fmt.Println("saved:", id)
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <saved-id>",
	Short: "Toggle a saved description between public and private",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		isPublic, err := flow.ToggleVisibility(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if isPublic {
			fmt.Println("now public")
		} else {
			fmt.Println("now private")
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <saved-id>",
	Short: "Delete a saved description permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := flow.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("deleted:", args[0])
		return nil
	},
}

func init() {
	saveCmd.Flags().StringVar(&saveType, "type", "", "description type (guitar or company)")
	saveCmd.Flags().StringVar(&saveTitle, "title", "", "title for the record")
	saveCmd.Flags().StringVar(&saveCategory, "category", "", "category for the record")
	saveCmd.Flags().StringVar(&saveTags, "tags", "", "comma-separated tags")
	saveCmd.Flags().BoolVar(&savePublic, "public", false, "make the record public")
	saveCmd.Flags().BoolVar(&saveSuggest, "suggest", false, "ask the backend to suggest missing category/tags")
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(deleteCmd)
}
