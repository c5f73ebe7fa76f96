// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"

	"github.com/katalvlaran/strainnet/labels"
)

// readValues parses one value per non-blank line of path, showing progress.
func readValues[T any](path string, parse func(string) (T, error)) ([]T, error) {
	total, err := countLines(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	bar := pb.Full.Start64(total)
	bar.Set(pb.Bytes, false)
	defer bar.Finish()

	out := make([]T, 0, total)
	scanner := bufio.NewScanner(file)
	for line := 1; scanner.Scan(); line++ {
		bar.Increment()
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, err := parse(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		out = append(out, v)
	}

	return out, scanner.Err()
}

func countLines(path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var n int64
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		n++
	}

	return n, scanner.Err()
}

// parseLabel accepts 1/within and 0/between.
func parseLabel(s string) (labels.Label, error) {
	switch strings.ToLower(s) {
	case "1", "within":
		return labels.WithinStrain, nil
	case "0", "between":
		return labels.BetweenStrain, nil
	default:
		return 0, fmt.Errorf("bad pair label %q", s)
	}
}

func readLabels(path string) ([]labels.Label, error) { return readValues(path, parseLabel) }

func readAssignments(path string) ([]int, error) { return readValues(path, strconv.Atoi) }

// parseMeans reads "core,acc;core,acc;..." component means.
func parseMeans(s string) ([][2]float64, error) {
	var out [][2]float64
	for _, part := range strings.Split(s, ";") {
		xy := strings.Split(strings.TrimSpace(part), ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("bad component mean %q: want core,accessory", part)
		}
		var m [2]float64
		for i, v := range xy {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("bad component mean %q: %w", part, err)
			}
			m[i] = f
		}
		out = append(out, m)
	}

	return out, nil
}
