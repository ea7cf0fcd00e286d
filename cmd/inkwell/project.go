package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inkwell-ai/inkwell/internal/document"
	"github.com/inkwell-ai/inkwell/internal/engine"
	"github.com/inkwell-ai/inkwell/internal/types"
)

var newCmd = &cobra.Command{
	Use:   "new PROMPT",
	Short: "Create and run a new document project",
	Long: `Plan an outline for the prompt, then write every section in order.
Generation can be interrupted with Ctrl-C; the project pauses after the
current section and can be resumed later.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show PROJECT_ID",
	Short: "Show project details and per-section status",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var resumeCmd = &cobra.Command{
	Use:   "resume PROJECT_ID",
	Short: "Resume a paused project",
	Args:  cobra.ExactArgs(1),
	RunE:  runResume,
}

var pauseCmd = &cobra.Command{
	Use:   "pause PROJECT_ID",
	Short: "Pause a writing project",
	Args:  cobra.ExactArgs(1),
	RunE:  runPause,
}

var deleteCmd = &cobra.Command{
	Use:   "delete PROJECT_ID",
	Short: "Delete a project and its sections",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

// Flags
var (
	newTitle      string
	newWords      int
	newStyle      string
	newTone       string
	newFormat     string
	newReferences bool
	newReview     bool
	newRestrict   bool
)

func init() {
	newCmd.Flags().StringVar(&newTitle, "title", "", "Document title (derived from prompt if empty)")
	newCmd.Flags().IntVar(&newWords, "words", 3000, "Target total word count")
	newCmd.Flags().StringVar(&newStyle, "style", "", "Writing style hint")
	newCmd.Flags().StringVar(&newTone, "tone", "", "Tone hint")
	newCmd.Flags().StringVar(&newFormat, "format", "generic", "Document format (article|report|essay|tutorial|generic)")
	newCmd.Flags().BoolVar(&newReferences, "references", false, "Ask for reference suggestions")
	newCmd.Flags().BoolVar(&newReview, "review", false, "Run the best-effort review pass")
	newCmd.Flags().BoolVar(&newRestrict, "restrict-backend", false, "Pin each section to its assigned backend")
}

func runNew(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	settings := document.Settings{
		TargetWordCount:   newWords,
		Style:             newStyle,
		Tone:              newTone,
		Format:            document.Format(newFormat),
		IncludeReferences: newReferences,
		ReviewEnabled:     newReview || cfg.Engine.ReviewEnabled,
		RestrictBackend:   newRestrict,
	}

	ctx := cmd.Context()
	project, err := eng.Create(ctx, newTitle, args[0], settings)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", titleStyle.Render(project.Title), dimStyle.Render(project.ID.String()))

	return runProject(ctx, eng, project.ID)
}

// runProject drives the run loop while streaming progress to the terminal.
// Interruption pauses the project after the in-flight section instead of
// abandoning it mid-write.
func runProject(ctx context.Context, eng *engine.Engine, projectID types.ID) error {
	events, unsubscribe := eng.Events().Subscribe(ctx)
	defer unsubscribe()

	go func() {
		for event := range events {
			switch event.Type {
			case engine.EventSectionStarted:
				fmt.Printf("  %s %s\n", dimStyle.Render("writing"), event.Message)
			case engine.EventProgress:
				if event.Progress != nil {
					fmt.Printf("  %s %d%% (%d/%d sections, %d words)\n",
						labelStyle.Render("progress"),
						event.Progress.Percent,
						event.Progress.CompletedSections,
						event.Progress.TotalSections,
						event.Progress.WordCount)
				}
			case engine.EventProjectPaused:
				fmt.Println(warnStyle.Render("Paused.") + " Resume with: inkwell resume " + event.ProjectID.String())
			case engine.EventProjectCompleted:
				fmt.Println(successStyle.Render("Completed."))
			}
		}
	}()

	// Detach the run from the signal context so an interrupt pauses
	// cleanly instead of failing the in-flight backend call.
	runCtx := context.WithoutCancel(ctx)
	go func() {
		<-ctx.Done()
		_ = eng.Pause(runCtx, projectID)
	}()

	return eng.Run(runCtx, projectID)
}

func runList(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	projects, err := eng.ListProjects(cmd.Context())
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println(dimStyle.Render("No projects."))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPROGRESS\tWORDS\tCREATED")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\t%d\t%s\n",
			p.ID,
			truncate(p.Title, 40),
			statusStyle(p.Status).Render(p.Status.String()),
			p.Progress,
			p.WordCount,
			p.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runShow(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	projectID, err := types.ParseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	project, err := eng.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	sections, err := eng.GetSections(ctx, projectID)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(project.Title))
	fmt.Printf("%s %s\n", labelStyle.Render("Status:"), statusStyle(project.Status).Render(project.Status.String()))
	fmt.Printf("%s %d%%\n", labelStyle.Render("Progress:"), project.Progress)
	fmt.Printf("%s %d\n", labelStyle.Render("Words:"), project.WordCount)
	if project.Error != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Error:"), errorStyle.Render(project.Error))
	}

	fmt.Println()
	for _, sec := range sections {
		line := fmt.Sprintf("%s %2d. %s", sectionMark(sec.Status), sec.OrderIndex+1, sec.Title)
		if sec.WordCount > 0 {
			line += dimStyle.Render(fmt.Sprintf(" (%d words, %s)", sec.WordCount, sec.BackendID))
		}
		if sec.FallbackUsed {
			line += " " + warnStyle.Render("[fallback]")
		}
		fmt.Println(line)
	}
	return nil
}

func runResume(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	projectID, err := types.ParseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	events, unsubscribe := eng.Events().Subscribe(ctx)
	defer unsubscribe()
	go func() {
		for event := range events {
			if event.Type == engine.EventSectionStarted {
				fmt.Printf("  %s %s\n", dimStyle.Render("writing"), event.Message)
			}
			if event.Type == engine.EventProjectCompleted {
				fmt.Println(successStyle.Render("Completed."))
			}
		}
	}()

	runCtx := context.WithoutCancel(ctx)
	go func() {
		<-ctx.Done()
		_ = eng.Pause(runCtx, projectID)
	}()

	return eng.Resume(runCtx, projectID)
}

func runPause(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	projectID, err := types.ParseID(args[0])
	if err != nil {
		return err
	}
	if err := eng.Pause(cmd.Context(), projectID); err != nil {
		return err
	}
	fmt.Println(warnStyle.Render("Paused."))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	projectID, err := types.ParseID(args[0])
	if err != nil {
		return err
	}
	if err := eng.DeleteProject(cmd.Context(), projectID); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-1]) + "…"
}
