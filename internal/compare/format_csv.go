package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results, one row per alternative in rank order
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Rank",
		"Name",
		"Description",
		"Type",
		compSet.MonthlyLabel,
		compSet.AnnualLabel,
		"Diff from Base",
		"% Change",
		"Notes",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, r := range compSet.ranked() {
		kind := "alternative"
		if r.Name == compSet.BaseName {
			kind = "base"
		}
		if err := writer.Write(cf.formatRow(&r, kind)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, kind string) []string {
	return []string{
		formatInt(result.Rank),
		result.Name,
		result.Description,
		kind,
		result.Monthly.StringFixed(2),
		result.Annual.StringFixed(2),
		result.DiffFromBase.StringFixed(2),
		result.PctFromBase.StringFixed(2),
		strings.Join(result.Notes, "; "),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
