package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-ai/inkwell/internal/types"
)

var regenerateCmd = &cobra.Command{
	Use:   "regenerate PROJECT_ID SECTION_ID",
	Short: "Regenerate one section in place",
	Long: `Clear a finished section and rewrite it. The surrounding context is
recomputed from the current content of all earlier sections; no other
section is modified.`,
	Args: cobra.ExactArgs(2),
	RunE: runRegenerate,
}

func runRegenerate(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	projectID, err := types.ParseID(args[0])
	if err != nil {
		return err
	}
	sectionID, err := types.ParseID(args[1])
	if err != nil {
		return err
	}

	section, err := eng.RegenerateSection(cmd.Context(), projectID, sectionID)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s (%d words, %s)\n",
		successStyle.Render("Regenerated:"),
		section.Title, section.WordCount, section.BackendID)
	if section.FallbackUsed {
		fmt.Println(warnStyle.Render("Template fallback was used; every backend failed."))
	}
	return nil
}
