package stats

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
)

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

func (r *CsvStatsRendererImpl) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (r *CsvStatsRendererImpl) FileExtension() string {
	return ".csv"
}

func (r *CsvStatsRendererImpl) RenderStats(summary WeekSummary) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, cells := range summaryTable(summary) {
		record := make([]string, 0, len(cells))
		for _, cell := range cells {
			record = append(record, cellToString(cell))
		}
		if err := writer.Write(record); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return nil, err
	}

	return b.Bytes(), nil
}
