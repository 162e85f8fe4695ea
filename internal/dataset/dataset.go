// Package dataset loads the comma-separated feature and target files and
// normalizes ad-hoc inference rows.
package dataset

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FeatureWidth is the fixed input width: 20x20 digit images, flattened.
const FeatureWidth = 400

// ErrMalformed marks rows whose fields fail to parse as numbers. Callers can
// use errors.Is to tell format corruption apart from plain I/O failures,
// which tolerate partial data.
var ErrMalformed = errors.New("malformed field")

// maxLine bounds one data line; rows carry at least 400 numeric fields.
const maxLine = 1 << 20

// LoadFeatures reads lines [startLine, startLine+maxLines) (1-indexed) from
// path. Each line must carry at least FeatureWidth comma-separated numeric
// fields; shorter lines are skipped, and only the first FeatureWidth fields
// of a line are kept. On failure the rows read so far are returned together
// with the error, so callers may proceed with partial data.
func LoadFeatures(path string, startLine, maxLines int) ([][]float64, error) {
	var rows [][]float64
	err := scanWindow(path, startLine, maxLines, func(lineNo int, fields []string) (bool, error) {
		if len(fields) < FeatureWidth {
			return false, nil
		}
		row := make([]float64, FeatureWidth)
		for i := 0; i < FeatureWidth; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
			if err != nil {
				return false, errors.Wrapf(ErrMalformed, "%s line %d field %d: %v", path, lineNo, i+1, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
		return true, nil
	})
	return rows, err
}

// LoadTargets reads the same 1-indexed line window as LoadFeatures and parses
// the first comma-separated field of each line as the target label.
func LoadTargets(path string, startLine, maxLines int) ([]float64, error) {
	var targets []float64
	err := scanWindow(path, startLine, maxLines, func(lineNo int, fields []string) (bool, error) {
		if len(fields) < 1 {
			return false, nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return false, errors.Wrapf(ErrMalformed, "%s line %d field 1: %v", path, lineNo, err)
		}
		targets = append(targets, v)
		return true, nil
	})
	return targets, err
}

// scanWindow walks the 1-indexed window [startLine, startLine+maxLines) of
// path and hands each line's fields to accept, which reports whether the line
// counted towards the window.
func scanWindow(path string, startLine, maxLines int, accept func(lineNo int, fields []string) (bool, error)) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	lineNo := 0
	read := 0
	for scanner.Scan() {
		lineNo++
		if lineNo < startLine {
			continue
		}
		if read >= maxLines {
			break
		}
		counted, err := accept(lineNo, strings.Split(scanner.Text(), ","))
		if err != nil {
			return err
		}
		if counted {
			read++
		}
	}
	return errors.Wrapf(scanner.Err(), "read %s", path)
}

// ParseRow parses one comma-separated line into floats.
func ParseRow(line string) ([]float64, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	row := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "field %d: %v", i+1, err)
		}
		row[i] = v
	}
	return row, nil
}

// NormalizeRow min-max scales a row into [0,1] against the row's own observed
// range. A constant row has no range and degrades to all zeros. The input is
// not mutated.
func NormalizeRow(row []float64) []float64 {
	out := make([]float64, len(row))
	if len(row) == 0 {
		return out
	}

	min, max := row[0], row[0]
	for _, v := range row {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return out
	}
	for i, v := range row {
		out[i] = (v - min) / (max - min)
	}
	return out
}
