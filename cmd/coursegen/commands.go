package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/mentai/internal/classifier"
	"github.com/p-n-ai/mentai/internal/content"
	"github.com/p-n-ai/mentai/internal/course"
	"github.com/p-n-ai/mentai/internal/registry"
)

// App holds what the commands operate on.
type App struct {
	Library *content.Library
	Courses *course.Service
}

// NewRootCmd creates the top-level "coursegen" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "coursegen",
		Short:         "Generate and inspect MentAI courses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newClassifyCmd(),
		newGenerateCmd(app),
		newLanguagesCmd(),
		newValidateCmd(app),
	)
	return root
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <topic>",
		Short: "Show how a topic is classified",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := classifier.Classify(strings.Join(args, " "))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:      %s\n", res.DisplayTitle)
			fmt.Fprintf(out, "Slug:       %s\n", res.CanonicalSlug)
			fmt.Fprintf(out, "Language:   %s\n", res.LanguageSlug)
			fmt.Fprintf(out, "Type:       %s\n", res.ContentType)
			fmt.Fprintf(out, "Executable: %t\n", res.ExecutionEnabled)
			if res.WasCorrected {
				fmt.Fprintln(out, "Corrected:  yes")
			}
			return nil
		},
	}
}

func newGenerateCmd(app *App) *cobra.Command {
	var asJSON bool
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "generate <topic>",
		Short: "Generate a course",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Courses.Generate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				if err := writeWorkbookFile(xlsxPath, c); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", xlsxPath)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(c)
			}
			printOutline(cmd, c)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full course as JSON")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the course to an Excel workbook")
	return cmd
}

func writeWorkbookFile(path string, c *course.Course) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return course.WriteWorkbook(f, c)
}

func printOutline(cmd *cobra.Command, c *course.Course) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, c.Title)
	if c.Metadata.IsPending {
		fmt.Fprintln(out, "Content for this topic is pending.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, m := range c.Modules {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d questions\t%s\n", m.ID, m.Title, m.Difficulty, len(m.Quiz.Questions), m.Source)
	}
	tw.Flush()
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List languages known to the execution sandbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tNAME\tRUNTIME\tEDITOR")
			for _, l := range registry.All() {
				runtime := "-"
				if l.Executable() {
					runtime = fmt.Sprint(l.RuntimeID)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.Slug, l.Name, runtime, l.EditorID)
			}
			return tw.Flush()
		},
	}
}

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the content tables for foreign code and missing syllabi",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			langs := app.Library.Languages()
			fmt.Fprintf(out, "%d languages loaded\n", len(langs))
			if pending := app.Library.Pending(); len(pending) > 0 {
				fmt.Fprintf(out, "pending syllabus: %s\n", strings.Join(pending, ", "))
			}

			issues := app.Library.Lint()
			for _, issue := range issues {
				fmt.Fprintln(out, issue.String())
			}
			if len(issues) > 0 {
				return fmt.Errorf("%d content issues found", len(issues))
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}
