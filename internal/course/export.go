package course

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	sheetOverview = "Overview"
	sheetModules  = "Modules"
	sheetQuiz     = "Quiz"
	sheetLabs     = "Labs"
)

// WriteWorkbook writes c as an .xlsx workbook with Overview, Modules, Quiz
// and Labs sheets.
func WriteWorkbook(w io.Writer, c *Course) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetOverview); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	for _, name := range []string{sheetModules, sheetQuiz, sheetLabs} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	overview := [][]any{
		{"Title", c.Title},
		{"Description", c.Description},
		{"Topic", c.Topic},
		{"Language", c.Metadata.Language},
		{"Topic Type", string(c.Metadata.TopicType)},
		{"Execution Enabled", c.Metadata.ExecutionEnabled},
		{"Pending", c.Metadata.IsPending},
		{"Modules", len(c.Modules)},
	}
	if err := writeRows(f, sheetOverview, overview); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetOverview, "A1", fmt.Sprintf("A%d", len(overview)), bold); err != nil {
		return fmt.Errorf("styling %s: %w", sheetOverview, err)
	}

	modules := [][]any{{"Module", "Title", "Difficulty", "Source", "Project", "Learning Outcome"}}
	var quizRows, labRows [][]any
	quizRows = append(quizRows, []any{"Module", "#", "Question", "Options", "Answer", "Difficulty", "Type", "Explanation"})
	labRows = append(labRows, []any{"Module", "Lab", "Description", "Tasks", "Starter Code"})

	for _, m := range c.Modules {
		modules = append(modules, []any{m.ID, m.Title, m.Difficulty, m.Source, m.MiniProject.Title, m.LearningOutcome})
		for i, q := range m.Quiz.Questions {
			quizRows = append(quizRows, []any{
				m.ID, i + 1, q.Question, strings.Join(q.Options, " | "), q.Answer, q.Difficulty, q.Type, q.Explanation,
			})
		}
		for _, lab := range m.MiniLabs {
			labRows = append(labRows, []any{m.ID, lab.Title, lab.Description, strings.Join(lab.Tasks, "\n"), lab.PreloadedCode})
		}
	}

	for sheet, rows := range map[string][][]any{sheetModules: modules, sheetQuiz: quizRows, sheetLabs: labRows} {
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return fmt.Errorf("header range: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return fmt.Errorf("styling %s: %w", sheet, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
