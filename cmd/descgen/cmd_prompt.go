package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"descgen/internal/api"
	"descgen/internal/model"
	"descgen/internal/render"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage prompt templates",
	Long: `Prompt templates steer the generation backend. At most one template
per type is active at a time; activating one deactivates its siblings.`,
}

var (
	promptType     string
	promptTitle    string
	promptContent  string
	promptActivate bool
)

var promptAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new prompt template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := model.ParseDescriptionType(promptType)
		if err != nil {
			return err
		}
		req := api.PromptRequest{
			PromptType: typ,
			Title:      promptTitle,
			Content:    promptContent,
		}
		if promptActivate {
			active := true
			req.IsActive = &active
		}
		id, err := client.AddPrompt(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Println("prompt added:", id)
		return nil
	},
}

var promptUpdateCmd = &cobra.Command{
	Use:   "update <prompt-id>",
	Short: "Update a prompt template",
	Long:  `Only the flags you pass are changed; content changes bump the version.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var update api.PromptUpdate
		if cmd.Flags().Changed("title") {
			update.Title = &promptTitle
		}
		if cmd.Flags().Changed("content") {
			update.Content = &promptContent
		}
		if cmd.Flags().Changed("activate") {
			update.IsActive = &promptActivate
		}
		if update.Title == nil && update.Content == nil && update.IsActive == nil {
			return fmt.Errorf("nothing to update: pass --title, --content or --activate")
		}
		if err := client.UpdatePrompt(cmd.Context(), args[0], update); err != nil {
			return err
		}
		fmt.Println("prompt updated:", args[0])
		return nil
	},
}

var promptActivateCmd = &cobra.Command{
	Use:   "activate <prompt-id>",
	Short: "Make a template the active one for its type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.ActivatePrompt(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("prompt activated:", args[0])
		return nil
	},
}

var promptDeleteCmd = &cobra.Command{
	Use:   "delete <prompt-id>",
	Short: "Delete a prompt template permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.DeletePrompt(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("prompt deleted:", args[0])
		return nil
	},
}

var promptActiveCmd = &cobra.Command{
	Use:   "active <guitar|company>",
	Short: "Show the active template for a type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := model.ParseDescriptionType(args[0])
		if err != nil {
			return err
		}
		p, err := client.GetActivePrompt(cmd.Context(), typ)
		if err != nil {
			return err
		}
		fmt.Println(render.Detail([][2]string{
			{"id", p.ID},
			{"type", string(p.PromptType)},
			{"title", p.Title},
			{"version", fmt.Sprintf("%d", p.Version)},
			{"content", p.Content},
		}))
		return nil
	},
}

var promptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all prompt templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompts, err := client.ListPrompts(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(render.Prompts.Render(prompts))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{promptAddCmd, promptUpdateCmd} {
		c.Flags().StringVar(&promptType, "type", "", "prompt type (guitar or company)")
		c.Flags().StringVar(&promptTitle, "title", "", "template title")
		c.Flags().StringVar(&promptContent, "content", "", "template content")
		c.Flags().BoolVar(&promptActivate, "activate", false, "make this the active template for its type")
	}
	// update does not take --type: the type of a stored template is fixed.
	_ = promptUpdateCmd.Flags().MarkHidden("type")

	promptsCmd.AddCommand(promptAddCmd, promptUpdateCmd, promptActivateCmd, promptDeleteCmd, promptActiveCmd, promptListCmd)
	rootCmd.AddCommand(promptsCmd)
}
