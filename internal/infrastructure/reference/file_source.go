package reference

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
)

// record is one pre-sampled reference line as stored on disk.
type record struct {
	PlayerID int64              `json:"player_id"`
	Season   int                `json:"season"`
	Metrics  map[string]float64 `json:"metrics"`
}

// FileSource answers reconciliation lookups from a pre-sampled JSON snapshot
// of the external source of truth. The whole file loads at open time; lookups
// never touch the network.
type FileSource struct {
	values map[string]float64
}

// NewFileSource loads the snapshot at path.
func NewFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read reference snapshot")
	}

	var records []record
	if err := sonic.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "decode reference snapshot")
	}

	values := make(map[string]float64)
	for _, rec := range records {
		for metric, value := range rec.Metrics {
			values[metricKey(rec.PlayerID, rec.Season, metric)] = value
		}
	}

	return &FileSource{values: values}, nil
}

// PlayerSeasonMetric returns the reference value for one sampled metric, or
// false when the snapshot does not cover it.
func (s *FileSource) PlayerSeasonMetric(_ context.Context, playerID int64, seasonYear int, metric string) (float64, bool) {
	v, ok := s.values[metricKey(playerID, seasonYear, metric)]
	return v, ok
}

func metricKey(playerID int64, seasonYear int, metric string) string {
	return fmt.Sprintf("%d|%d|%s", playerID, seasonYear, metric)
}
