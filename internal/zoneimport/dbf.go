package zoneimport

import (
	"context"
	"fmt"
	"strings"

	"github.com/Valentin-Kaiser/go-dbase/dbase"
)

// ImportDBF reads X and Y numeric fields from a dBase table, such as the
// attribute table shipped with a point shapefile. Deleted records are
// ignored.
func (i *Importer) ImportDBF(ctx context.Context, path string) (Result, error) {
	table, err := dbase.OpenTable(&dbase.Config{
		Filename:   path,
		TrimSpaces: true,
		// Shapefile attribute tables are dBase III (0x03), which go-dbase
		// only opens when untested versions are allowed.
		Untested: true,
	})
	if err != nil {
		return Result{}, fmt.Errorf("open dbf: %w", err)
	}
	defer table.Close()

	xName, yName := "", ""
	for _, col := range table.Columns() {
		switch strings.ToUpper(col.Name()) {
		case "X":
			xName = col.Name()
		case "Y":
			yName = col.Name()
		}
	}
	if xName == "" || yName == "" {
		return Result{}, ErrMissingColumns
	}

	var res Result
	for !table.EOF() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		row, err := table.Next()
		if err != nil {
			return res, fmt.Errorf("read dbf record: %w", err)
		}
		if row.Deleted {
			continue
		}

		x, errX := fieldFloat(row, xName)
		y, errY := fieldFloat(row, yName)
		if errX != nil || errY != nil {
			i.logger.Printf("WARN: skipping record with bad coordinates: x=%v y=%v", errX, errY)
			res.Skipped++
			continue
		}
		if err := i.add(ctx, x, y, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func fieldFloat(row *dbase.Row, name string) (float64, error) {
	field := row.FieldByName(name)
	if field == nil {
		return 0, fmt.Errorf("field %s missing", name)
	}
	return toFloat(field.GetValue())
}
