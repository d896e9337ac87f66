package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/finwise/internal/domain"
)

// Result pairs a calculator report with the kind that produced it.
type Result struct {
	Kind   domain.Kind
	Report domain.Report
}

// Notes returns the degraded-lookup notes of the report, if any.
func (r *Result) Notes() []string {
	if d, ok := r.Report.(domain.Degradable); ok {
		return d.DegradedNotes()
	}
	return nil
}

// Formatter renders a result into bytes.
type Formatter interface {
	Name() string
	Format(res *Result) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(res *Result) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(res *Result) ([]byte, error) { return f.F(res) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"summary": ConsoleFormatter{SummaryOnly: true},
	"json":    JSONFormatter{},
	"csv":     CSVFormatter{},
	"xlsx":    XLSXFormatter{},
	"html":    HTMLFormatter{},
}

var formatAliases = map[string]string{
	"text":  "console",
	"table": "console",
	"brief": "summary",
	"excel": "xlsx",
}

// Extension returns the file extension conventionally used for a formatter.
func Extension(name string) string {
	switch canonical(name) {
	case "json":
		return "json"
	case "csv":
		return "csv"
	case "xlsx":
		return "xlsx"
	case "html":
		return "html"
	default:
		return "txt"
	}
}

// IsBinary reports whether the formatter output should not be printed to a terminal.
func IsBinary(name string) bool {
	return canonical(name) == "xlsx"
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	return formatters[canonical(name)]
}

// AvailableFormatterNames lists the registered formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted alternative names.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(formatAliases))
	for n := range formatAliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func canonical(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[n]; ok {
		return target
	}
	return n
}

// WriteFormatted formats res and writes it to a timestamped file in the
// working directory, returning the file name.
func WriteFormatted(f Formatter, res *Result, ext string) (string, error) {
	filename := fmt.Sprintf("%s_report_%s.%s", res.Kind, time.Now().Format("20060102_150405"), ext)
	if err := WriteFormattedTo(f, res, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteFormattedTo formats res and writes it to path, creating parent
// directories as needed.
func WriteFormattedTo(f Formatter, res *Result, path string) error {
	data, err := f.Format(res)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
