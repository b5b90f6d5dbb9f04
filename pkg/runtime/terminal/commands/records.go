package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/de-tools/cost-atlas/pkg/models/api"
)

func loadRecordSet(path string) (api.RecordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.RecordSet{}, fmt.Errorf("read records file: %w", err)
	}

	var set api.RecordSet
	if err := json.Unmarshal(data, &set); err != nil {
		return api.RecordSet{}, fmt.Errorf("parse records file: %w", err)
	}
	return set, nil
}
