// Package zoneimport seeds a zone store from CSV or dBase (.dbf) files.
package zoneimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mapselect/mapserver/internal/app"
	"github.com/mapselect/mapserver/internal/domain"
)

var (
	ErrMissingColumns    = errors.New("x and y columns required")
	ErrUnsupportedFormat = errors.New("unsupported seed file format")
)

// Adder receives each imported point.
type Adder interface {
	AddZone(ctx context.Context, in app.AddZoneInput) (domain.Zone, error)
}

type Result struct {
	Imported int
	Skipped  int
}

type Importer struct {
	adder  Adder
	logger *log.Logger
}

func New(adder Adder, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.Default()
	}
	return &Importer{
		adder:  adder,
		logger: logger,
	}
}

// ImportFile picks the reader from the file extension.
func (i *Importer) ImportFile(ctx context.Context, path string) (Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return Result{}, fmt.Errorf("open seed file: %w", err)
		}
		defer f.Close()
		return i.ImportCSV(ctx, f)
	case ".dbf":
		return i.ImportDBF(ctx, path)
	default:
		return Result{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// ImportCSV reads a header row naming x and y columns, then one zone per
// row. Unreadable rows are logged and skipped.
func (i *Importer) ImportCSV(ctx context.Context, r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return Result{}, fmt.Errorf("read header: %w", err)
	}
	xCol, yCol := columnIndex(header, "x"), columnIndex(header, "y")
	if xCol < 0 || yCol < 0 {
		return Result{}, ErrMissingColumns
	}

	var res Result
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			i.logger.Printf("WARN: skipping unreadable row: %v", err)
			res.Skipped++
			continue
		}
		if xCol >= len(fields) || yCol >= len(fields) {
			i.logger.Printf("WARN: skipping short row: %v", fields)
			res.Skipped++
			continue
		}
		x, errX := toFloat(fields[xCol])
		y, errY := toFloat(fields[yCol])
		if errX != nil || errY != nil {
			i.logger.Printf("WARN: skipping row with bad coordinates: %v", fields)
			res.Skipped++
			continue
		}
		if err := i.add(ctx, x, y, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (i *Importer) add(ctx context.Context, x, y float64, res *Result) error {
	_, err := i.adder.AddZone(ctx, app.AddZoneInput{X: x, Y: y})
	switch {
	case err == nil:
		res.Imported++
		return nil
	case errors.Is(err, domain.ErrInvalidCoordinate):
		i.logger.Printf("WARN: skipping zone x=%v y=%v: %v", x, y, err)
		res.Skipped++
		return nil
	default:
		return fmt.Errorf("add zone: %w", err)
	}
}

func columnIndex(header []string, name string) int {
	for idx, col := range header {
		col = strings.TrimPrefix(col, "\ufeff")
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return idx
		}
	}
	return -1
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	case nil:
		return 0, errors.New("empty value")
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}
