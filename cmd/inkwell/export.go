package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwell-ai/inkwell/internal/assembler"
	"github.com/inkwell-ai/inkwell/internal/types"
)

var exportCmd = &cobra.Command{
	Use:   "export PROJECT_ID",
	Short: "Export a completed project",
	Long:  `Assemble the completed document and write it to a file or stdout.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var (
	exportFormat string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format (txt|md)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (stdout if empty)")
}

func runExport(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	projectID, err := types.ParseID(args[0])
	if err != nil {
		return err
	}

	data, err := eng.Export(cmd.Context(), projectID, assembler.RenderFormat(exportFormat))
	if err != nil {
		return err
	}

	if exportOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("%s %s\n", successStyle.Render("Exported:"), exportOutput)
	return nil
}
