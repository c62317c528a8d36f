package command

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cardioinsight/riskservice/patients"
)

func loadRecord(path string) (patients.Record, error) {
	var record patients.Record
	data, err := os.ReadFile(path)
	if err != nil {
		return record, fmt.Errorf("reading record file: %w", err)
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("parsing record file %s: %w", path, err)
	}
	if err := record.Validate(); err != nil {
		return record, err
	}
	return record, nil
}
