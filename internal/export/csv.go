package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/litdebate/backend/internal/domain"
	"github.com/litdebate/backend/pkg/logger"
)

// ListSeparator joins list-valued fields into one cell. The downstream
// document renderer re-splits on the same separator. Items containing the
// separator are not escaped; this is an accepted limitation of the contract.
const ListSeparator = " | "

// BasicColumns is the fixed schema consumed by the document renderer. All
// fourteen columns must be present, in this order, unrenamed.
var BasicColumns = []string{
	"Topic_ID", "Title", "Description", "Level", "Area", "Format",
	"Pro_Arguments", "Con_Arguments", "Background", "Vocabulary",
	"Time_Minutes", "Book_Title", "Book_Author", "AR_Level",
}

func JoinList(items []string) string {
	return strings.Join(items, ListSeparator)
}

func SplitList(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, ListSeparator)
}

// WriteBasicCSV flattens each topic into one row of the fixed 14-column
// schema.
func WriteBasicCSV(path string, result *domain.AnalysisResult) error {
	rows := make([][]string, 0, len(result.Topics))
	for _, topic := range result.Topics {
		rows = append(rows, []string{
			topic.TopicID,
			topic.Title,
			topic.Description,
			string(topic.Level),
			string(topic.Area),
			string(topic.Format),
			JoinList(topic.ProArguments),
			JoinList(topic.ConArguments),
			topic.BackgroundInfo,
			JoinList(topic.VocabularyList),
			strconv.Itoa(topic.TimeEstimate),
			result.Book.Title,
			result.Book.Author,
			formatFloat(result.Book.ARLevel),
		})
	}

	return writeCSV(path, BasicColumns, rows)
}

// EnrichedColumns includes the per-topic educational material bundle.
// Reading question/answer pairs occupy ten columns (Q1..Q5, A1..A5
// interleaved) and the writing template structure is JSON-encoded.
func EnrichedColumns() []string {
	cols := []string{
		"Topic_ID", "Title", "Description", "Level", "Area", "Format",
		"Opening_Statement", "Pro_Arguments", "Con_Arguments",
		"Evidence_Sources", "Difficulty_Score", "Time_Estimate",
		"Learning_Objectives",
	}
	for i := 1; i <= readingQuestionColumns; i++ {
		cols = append(cols, fmt.Sprintf("Reading_Q%d", i), fmt.Sprintf("Reading_A%d", i))
	}
	return append(cols, "Writing_Template", "Word_Count_Target", "Writing_Time_Limit")
}

const readingQuestionColumns = 5

func WriteEnrichedCSV(path string, result *domain.AnalysisResult) error {
	rows := make([][]string, 0, len(result.Topics))
	for _, topic := range result.Topics {
		row := []string{
			topic.TopicID,
			topic.Title,
			topic.Description,
			string(topic.Level),
			string(topic.Area),
			string(topic.Format),
			topic.OpeningStatement,
			JoinList(topic.ProArguments),
			JoinList(topic.ConArguments),
			JoinList(topic.EvidenceSources),
			formatFloat(topic.DifficultyScore),
			strconv.Itoa(topic.TimeEstimate),
			JoinList(topic.LearningObjectives),
		}

		questions := topic.Materials.ReadingQuestions
		for i := 0; i < readingQuestionColumns; i++ {
			if i < len(questions) {
				row = append(row, questions[i].QuestionText, questions[i].SampleAnswer)
			} else {
				row = append(row, "", "")
			}
		}

		template := topic.Materials.WritingTemplate
		structure, err := json.Marshal(template.Structure)
		if err != nil {
			return fmt.Errorf("failed to encode writing template: %w", err)
		}

		row = append(row,
			string(structure),
			strconv.Itoa(template.WordCountTarget),
			strconv.Itoa(template.TimeLimit),
		)
		rows = append(rows, row)
	}

	return writeCSV(path, EnrichedColumns(), rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}

	logger.Info("CSV exported", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
