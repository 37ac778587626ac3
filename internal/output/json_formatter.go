package output

import (
	"encoding/json"

	"github.com/cgfgestion/investment-simulator/internal/domain"
)

// JSONFormatter serializes the report as pretty-printed JSON. Monthly
// trajectories are omitted; the yearly points are kept.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
