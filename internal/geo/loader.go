package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading the dataset from the local file
// system. The file is a JSON array of provinces.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a file-based geo dataset loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "geo-loader").Logger(),
	}
}

// Load reads and indexes a geo dataset file.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Dataset, error) {
	l.logger.Info().Str("file", filePath).Msg("loading geo dataset")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open geo dataset")
		return nil, fmt.Errorf("failed to open geo dataset %s: %w", filePath, err)
	}
	defer file.Close()

	var provinces []Province
	if err := json.NewDecoder(file).Decode(&provinces); err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to decode geo dataset")
		return nil, fmt.Errorf("failed to decode geo dataset %s: %w", filePath, err)
	}

	dataset := NewDataset(provinces)

	l.logger.Info().
		Str("file", filePath).
		Int("provinces", dataset.Size()).
		Msg("geo dataset loaded successfully")

	return dataset, nil
}
