package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/mixmc/errs"
	"github.com/arloliu/mixmc/model"
)

// DatasetHeader lists the columns of a dataset file.
var DatasetHeader = []string{"group", "x1", "x2"}

// ReadDataset parses a dataset from r. Errors carry the line number of the
// offending record; an invalid group code wraps errs.ErrInvalidGroup.
func ReadDataset(r io.Reader) (*model.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(DatasetHeader)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errs.ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	if err := checkHeader(header, DatasetHeader); err != nil {
		return nil, err
	}

	var obs []model.Observation
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}

		line, _ := cr.FieldPos(0)
		o, err := parseObservation(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		obs = append(obs, o)
	}

	return model.NewDataset(obs)
}

// LoadDataset reads the dataset file at path.
func LoadDataset(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := ReadDataset(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}

func parseObservation(rec []string) (model.Observation, error) {
	code, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return model.Observation{}, fmt.Errorf("%w: %q", errs.ErrInvalidGroup, rec[0])
	}
	g, err := model.ParseGroup(code)
	if err != nil {
		return model.Observation{}, err
	}

	x1, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil {
		return model.Observation{}, fmt.Errorf("x1: %w", err)
	}
	x2, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
	if err != nil {
		return model.Observation{}, fmt.Errorf("x2: %w", err)
	}

	return model.Observation{Group: g, X1: x1, X2: x2}, nil
}

func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: got %v, want %v", errs.ErrInvalidHeader, got, want)
	}
	for i := range want {
		if !strings.EqualFold(strings.TrimSpace(got[i]), want[i]) {
			return fmt.Errorf("%w: got %v, want %v", errs.ErrInvalidHeader, got, want)
		}
	}

	return nil
}
