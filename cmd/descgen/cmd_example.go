package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"descgen/internal/api"
	"descgen/internal/model"
	"descgen/internal/render"
	"descgen/internal/workflow"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Manage manual examples",
	Long: `Manual examples are always public: they feed the learning context of
future generations of the same type.`,
}

var (
	exampleType     string
	exampleTitle    string
	exampleCategory string
	exampleTags     string
)

var exampleAddCmd = &cobra.Command{
	Use:   "add <content...>",
	Short: "Add a manual example",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := model.ParseDescriptionType(exampleType)
		if err != nil {
			return err
		}
		id, err := client.AddExample(cmd.Context(), api.ExampleRequest{
			Type:     typ,
			Title:    exampleTitle,
			Content:  strings.Join(args, " "),
			Category: exampleCategory,
			Tags:     workflow.ParseTags(exampleTags),
		})
		if err != nil {
			return err
		}
		fmt.Println("example added:", id)
		return nil
	},
}

var exampleUpdateCmd = &cobra.Command{
	Use:   "update <example-id> <content...>",
	Short: "Update an example's content and metadata",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := model.ParseDescriptionType(exampleType)
		if err != nil {
			return err
		}
		err = client.UpdateExample(cmd.Context(), args[0], api.ExampleRequest{
			Type:     typ,
			Title:    exampleTitle,
			Content:  strings.Join(args[1:], " "),
			Category: exampleCategory,
			Tags:     workflow.ParseTags(exampleTags),
		})
		if err != nil {
			return err
		}
		fmt.Println("example updated:", args[0])
		return nil
	},
}

var exampleDeleteCmd = &cobra.Command{
	Use:   "delete <example-id>",
	Short: "Delete an example permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.DeleteExample(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("example deleted:", args[0])
		return nil
	},
}

var examplePublicCmd = &cobra.Command{
	Use:   "public",
	Short: "List the public example pool",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		examples, err := client.ListPublicExamples(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(render.Examples.Render(examples))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{exampleAddCmd, exampleUpdateCmd} {
		c.Flags().StringVar(&exampleType, "type", "", "description type (guitar or company)")
		c.Flags().StringVar(&exampleTitle, "title", "", "example title")
		c.Flags().StringVar(&exampleCategory, "category", "", "example category")
		c.Flags().StringVar(&exampleTags, "tags", "", "comma-separated tags")
	}
	examplesCmd.AddCommand(exampleAddCmd, exampleUpdateCmd, exampleDeleteCmd, examplePublicCmd)
	rootCmd.AddCommand(examplesCmd)
}
