package zoneimport

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mapselect/mapserver/internal/app"
	"github.com/mapselect/mapserver/internal/domain"
)

type dbfRecord struct {
	deleted bool
	a, b    float64
}

// writeDBaseIII writes a dBase III table with two N(10,2) columns, the
// layout shapefile tools emit for point attributes.
func writeDBaseIII(t *testing.T, path string, cols [2]string, records []dbfRecord) {
	t.Helper()

	const fieldLen, decimals = 10, 2
	headerLen := 32 + 32*len(cols) + 1
	recordLen := 1 + fieldLen*len(cols)

	buf := &bytes.Buffer{}
	header := make([]byte, 32)
	header[0] = 0x03
	header[1], header[2], header[3] = 125, 1, 1
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(records)))
	binary.LittleEndian.PutUint16(header[8:10], uint16(headerLen))
	binary.LittleEndian.PutUint16(header[10:12], uint16(recordLen))
	header[29] = 0x03
	buf.Write(header)

	for _, name := range cols {
		desc := make([]byte, 32)
		copy(desc[0:11], name)
		desc[11] = 'N'
		desc[16] = fieldLen
		desc[17] = decimals
		buf.Write(desc)
	}
	buf.WriteByte(0x0D)

	for _, rec := range records {
		if rec.deleted {
			buf.WriteByte('*')
		} else {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%10.2f%10.2f", rec.a, rec.b)
	}
	buf.WriteByte(0x1A)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write dbf: %v", err)
	}
}

func TestImportDBF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "points.dbf")
	writeDBaseIII(t, path, [2]string{"X", "Y"}, []dbfRecord{
		{a: 12.5, b: -3},
		{deleted: true, a: 99, b: 99},
		{a: 0.25, b: 40},
	})

	imp, svc, _ := newTestImporter(t)
	res, err := imp.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("import dbf: %v", err)
	}
	if res.Imported != 2 || res.Skipped != 0 {
		t.Fatalf("expected 2 imported and 0 skipped, got %+v", res)
	}

	zones, _ := svc.ListZones(context.Background())
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(zones))
	}
	if zones[0].X != 12.5 || zones[0].Y != -3 {
		t.Fatalf("expected first zone {12.5 -3}, got {%v %v}", zones[0].X, zones[0].Y)
	}
	if zones[1].X != 0.25 || zones[1].Y != 40 {
		t.Fatalf("expected second zone {0.25 40}, got {%v %v}", zones[1].X, zones[1].Y)
	}
	for _, z := range zones {
		if z.X == 99 {
			t.Fatalf("expected deleted record to be ignored, got %+v", z)
		}
	}
}

func TestImportDBF_OutOfBoundsSkipped(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "points.dbf")
	writeDBaseIII(t, path, [2]string{"x", "y"}, []dbfRecord{
		{a: 12.5, b: -3},
		{a: 1, b: 1},
	})

	imp, _, _ := newTestImporter(t, app.WithBounds(domain.Bounds{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10}))
	res, err := imp.ImportDBF(context.Background(), path)
	if err != nil {
		t.Fatalf("import dbf: %v", err)
	}
	if res.Imported != 1 || res.Skipped != 1 {
		t.Fatalf("expected 1 imported and 1 skipped, got %+v", res)
	}
}

func TestImportDBF_MissingColumns(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "latlon.dbf")
	writeDBaseIII(t, path, [2]string{"LAT", "LON"}, []dbfRecord{{a: 1, b: 2}})

	imp, _, _ := newTestImporter(t)
	if _, err := imp.ImportDBF(context.Background(), path); !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
}
