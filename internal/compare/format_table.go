package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finwise/internal/output"
	"github.com/shopspring/decimal"
)

var (
	lakh  = decimal.NewFromInt(100000)
	crore = decimal.NewFromInt(10000000)
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table of every alternative in rank order
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString(strings.ToUpper(compSet.Title) + "\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base: %s\n", compSet.BaseName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 18

	sb.WriteString(fmt.Sprintf("%-4s %-*s %*s %*s %*s\n",
		"#",
		nameWidth, "Name",
		numWidth, compSet.MonthlyLabel,
		numWidth, compSet.AnnualLabel,
		numWidth-6, "vs Base"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, r := range compSet.ranked() {
		sb.WriteString(tf.formatRow(&r, compSet.BaseName, nameWidth, numWidth))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Service breakdown for cloud comparisons
	if compSet.Subject == SubjectCloud {
		for _, r := range compSet.ranked() {
			if len(r.Lines) == 0 && len(r.Notes) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("\n%s:\n", r.Name))
			for _, line := range r.Lines {
				sb.WriteString(fmt.Sprintf("  %-*s %*s\n", nameWidth, line.Service, numWidth, output.FormatCurrency(line.Monthly)))
			}
			for _, note := range r.Notes {
				sb.WriteString(fmt.Sprintf("  note: %s\n", note))
			}
		}
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single alternative row
func (tf *TableFormatter) formatRow(result *ComparisonResult, baseName string, nameWidth, numWidth int) string {
	name := result.Name
	if result.Description != "" {
		name = result.Description
	}
	delta := "base"
	if result.Name != baseName {
		delta = tf.deltaSymbol(result.DiffFromBase) + formatCompact(result.DiffFromBase.Abs())
	}
	return fmt.Sprintf("%-4d %-*s %*s %*s %*s\n",
		result.Rank,
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, output.FormatCurrency(result.Monthly),
		numWidth, output.FormatCurrency(result.Annual),
		numWidth-6, delta)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of the ranking
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.DiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.DiffFromBase) + formatCompact(alt.DiffFromBase.Abs())
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Name, change))
	}

	return sb.String()
}

// formatCompact formats a rupee amount in crores or lakhs when large enough.
func formatCompact(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	switch {
	case d.GreaterThanOrEqual(crore):
		return sign + output.CurrencySymbol + d.Div(crore).StringFixed(2) + "Cr"
	case d.GreaterThanOrEqual(lakh):
		return sign + output.CurrencySymbol + d.Div(lakh).StringFixed(2) + "L"
	}
	return sign + output.CurrencySymbol + d.StringFixed(0)
}
