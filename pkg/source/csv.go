package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
)

// CSV reads identities from one named column of a CSV file. The first
// row is the header; the column match is case-insensitive so exports
// from different tools line up.
type CSV struct {
	path   string
	column string
}

// NewCSV builds a source over the given file and column name
func NewCSV(path, column string) *CSV {
	return &CSV{path: path, column: column}
}

func (s *CSV) Load(ctx context.Context) ([]types.Identity, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, goerr.Wrap(model.ErrSourceLookup, "failed to open csv file",
			goerr.V("path", s.path), goerr.V("cause", err.Error()))
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, goerr.Wrap(model.ErrSourceFormat, "failed to read csv header",
			goerr.V("path", s.path), goerr.V("cause", err.Error()))
	}
	if len(header) > 0 {
		// Excel exports carry a UTF-8 BOM on the first cell
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	column := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), s.column) {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, goerr.Wrap(model.ErrSourceFormat, "csv column not found",
			goerr.V("path", s.path), goerr.V("column", s.column), goerr.V("header", header))
	}

	var identities []types.Identity
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(model.ErrSourceFormat, "failed to read csv row",
				goerr.V("path", s.path), goerr.V("cause", err.Error()))
		}
		identities = append(identities, types.Identity(record[column]))
	}
	return identities, nil
}

func (s *CSV) Describe() string {
	return fmt.Sprintf("csv:%s#%s", filepath.Base(s.path), s.column)
}
