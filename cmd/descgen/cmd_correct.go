package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"descgen/internal/model"
	"descgen/internal/workflow"
)

var (
	correctDescriptionID string
	correctOriginal      string
	correctType          string
	correctNotes         string
)

var correctCmd = &cobra.Command{
	Use:   "correct <corrected text...>",
	Short: "Submit a correction for generated text",
	Long: `Submit corrected text so future generations learn from it.

With --description-id the original text is fetched from the history and the
correction is linked to that generation. With --original the correction is
free-text: you supply both sides yourself and --type is required.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		corrected := strings.Join(args, " ")

		var draft *workflow.CorrectionDraft
		switch {
		case correctDescriptionID != "":
			desc, err := flow.View(cmd.Context(), correctDescriptionID)
			if err != nil {
				return err
			}
			draft = flow.BeginCorrectionFor(desc)
		case correctOriginal != "":
			typ, err := model.ParseDescriptionType(correctType)
			if err != nil {
				return err
			}
			draft = workflow.NewFreeTextDraft(correctOriginal, typ)
		default:
			return fmt.Errorf("either --description-id or --original is required")
		}

		if err := flow.SubmitCorrection(cmd.Context(), draft, corrected, correctNotes); err != nil {
			return err
		}
		fmt.Println("correction submitted")
		return nil
	},
}

var applyCorrectionCmd = &cobra.Command{
	Use:   "apply-correction <correction-id>",
	Short: "Mark a correction as applied",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.ApplyCorrection(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("correction applied:", args[0])
		return nil
	},
}

func init() {
	correctCmd.Flags().StringVar(&correctDescriptionID, "description-id", "", "history ID of the generation being corrected")
	correctCmd.Flags().StringVar(&correctOriginal, "original", "", "original text for a free-text correction")
	correctCmd.Flags().StringVar(&correctType, "type", "", "description type for a free-text correction")
	correctCmd.Flags().StringVar(&correctNotes, "notes", "", "optional notes on the correction")
	rootCmd.AddCommand(correctCmd)
	rootCmd.AddCommand(applyCorrectionCmd)
}
