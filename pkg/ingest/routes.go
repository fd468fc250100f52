// Package ingest reads route tables exported from spreadsheets.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/kilianp07/transitplan/core/model"
)

// ErrInvalidCSV is returned for empty, short or non-numeric route tables.
var ErrInvalidCSV = errors.New("invalid route csv")

const routeFields = 8

var bom = []byte{0xEF, 0xBB, 0xBF}

// ParseRoutes reads a header row followed by one route per line with the
// columns no, name, length A→B, length B→A, travel time A→B, travel time B→A,
// peak A→B and peak B→A. The separator is ';' when the header contains one,
// ',' otherwise. Blank lines are skipped and extra columns ignored.
func ParseRoutes(r io.Reader) ([]model.Route, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read routes: %w", err)
	}
	data = bytes.TrimPrefix(data, bom)

	header, _, _ := bytes.Cut(data, []byte("\n"))
	sep := ','
	if bytes.ContainsRune(header, ';') {
		sep = ';'
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file is empty", ErrInvalidCSV)
		}
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidCSV, err)
	}

	var routes []model.Route
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}
		route, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidCSV, line, err)
		}
		routes = append(routes, route)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("%w: no routes after header", ErrInvalidCSV)
	}
	return routes, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseRecord(rec []string) (model.Route, error) {
	if len(rec) < routeFields {
		return model.Route{}, fmt.Errorf("expected %d fields, got %d", routeFields, len(rec))
	}
	f := make([]string, routeFields)
	for i := range f {
		f[i] = strings.TrimSpace(rec[i])
		if f[i] == "" {
			return model.Route{}, fmt.Errorf("field %d is empty", i+1)
		}
	}
	var (
		r   = model.Route{RouteNo: f[0], RouteName: f[1]}
		err error
	)
	if r.LengthAtoB, err = parseFloat("length A→B", f[2]); err != nil {
		return r, err
	}
	if r.LengthBtoA, err = parseFloat("length B→A", f[3]); err != nil {
		return r, err
	}
	if r.TravelTimeAtoB, err = parseInt("travel time A→B", f[4]); err != nil {
		return r, err
	}
	if r.TravelTimeBtoA, err = parseInt("travel time B→A", f[5]); err != nil {
		return r, err
	}
	if r.PeakAtoB, err = parseInt("peak A→B", f[6]); err != nil {
		return r, err
	}
	if r.PeakBtoA, err = parseInt("peak B→A", f[7]); err != nil {
		return r, err
	}
	return r, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number", name, s)
	}
	return v, nil
}

// parseInt accepts decimals and truncates them toward zero, as spreadsheets
// often export whole minutes and passenger counts as "30.0".
func parseInt(name, s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%s %q is not a number", name, s)
	}
	return int(math.Trunc(f)), nil
}
