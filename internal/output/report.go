package output

import (
	"fmt"
	"strings"

	"github.com/cgfgestion/investment-simulator/internal/domain"
)

// allFormats are written by the "all" pseudo-format.
var allFormats = []string{"console", "csv", "pdf"}

// GenerateReport writes the report in the requested format to dir and returns
// the created file paths. "all" writes the console, trajectory CSV and PDF
// renderings.
func GenerateReport(report *domain.Report, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, name := range allFormats {
			path, err := WriteFormatted(GetFormatterByName(name), report, dir)
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s, all (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	path, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}
