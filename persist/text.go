// SPDX-License-Identifier: MIT

package persist

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/strainnet/cluster"
	"github.com/katalvlaran/strainnet/dists"
	"github.com/katalvlaran/strainnet/errkind"
	"github.com/katalvlaran/strainnet/tree"
)

// Column headers of the clustering CSV.
const (
	ColumnTaxon   = "Taxon"
	ColumnCluster = "Cluster"
	ColumnLineage = "Lineage"
)

// WriteNewick atomically writes t to path in Newick notation.
func WriteNewick(path string, t *tree.Tree) error {
	if t == nil {
		return errkind.Malformed("persist.WriteNewick", "nil tree")
	}

	return WriteFileAtomic(path, t.WriteNewick)
}

// EncodeClusters writes "Taxon,Cluster" rows in taxon order. A non-nil lineage
// map adds a Lineage column; taxa missing from it get an empty cell.
func EncodeClusters(w io.Writer, c *cluster.Clustering, lineage map[string]string) error {
	if c == nil {
		return errkind.Malformed("persist.EncodeClusters", "nil clustering")
	}
	cw := csv.NewWriter(w)
	header := []string{ColumnTaxon, ColumnCluster}
	if lineage != nil {
		header = append(header, ColumnLineage)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, id := range c.IDs() {
		name, _ := c.Name(id)
		row := []string{id, name}
		if lineage != nil {
			row = append(row, lineage[id])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// DecodeClusters reads a clustering CSV. Columns are found by header name, so
// extra columns are ignored. The lineage map is nil without a Lineage column.
func DecodeClusters(r io.Reader) (*cluster.Clustering, map[string]string, error) {
	const op = "persist.DecodeClusters"

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, nil, errkind.Wrap(errkind.ErrMalformedInput, op, err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	ti, okT := col[ColumnTaxon]
	ci, okC := col[ColumnCluster]
	if !okT || !okC {
		return nil, nil, errkind.Malformed(op, "header needs Taxon and Cluster columns")
	}
	li, okL := col[ColumnLineage]

	assign := make(map[string]string)
	var lineage map[string]string
	if okL {
		lineage = make(map[string]string)
	}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errkind.Wrap(errkind.ErrMalformedInput, op, err)
		}
		if ti >= len(rec) || ci >= len(rec) {
			return nil, nil, errkind.Malformed(op, fmt.Sprintf("line %d: short row", line))
		}
		id := rec[ti]
		if _, dup := assign[id]; dup {
			return nil, nil, errkind.Malformed(op, fmt.Sprintf("line %d: duplicate taxon", line), id)
		}
		assign[id] = rec[ci]
		if okL && li < len(rec) {
			lineage[id] = rec[li]
		}
	}

	c, err := cluster.FromMap(assign)
	if err != nil {
		return nil, nil, err
	}

	return c, lineage, nil
}

// WriteClusters atomically writes the clustering CSV and its name ledger
// (ClusterNamesPath). The ledger goes first: a CSV write that fails after it
// leaves a counter that is only ahead of the old CSV, never behind.
func WriteClusters(path string, c *cluster.Clustering, lineage map[string]string) error {
	if c == nil {
		return errkind.Malformed("persist.WriteClusters", "nil clustering")
	}
	if err := writeClusterNames(path, c); err != nil {
		return err
	}

	return WriteFileAtomic(path, func(w io.Writer) error { return EncodeClusters(w, c, lineage) })
}

// ReadClusters reads a clustering CSV and, when present, its name ledger, which
// restores absorbed names and the name counter. Without a ledger the counter
// only continues above the highest name in the CSV; see HasClusterNames.
func ReadClusters(path string) (*cluster.Clustering, map[string]string, error) {
	var (
		c       *cluster.Clustering
		lineage map[string]string
	)
	err := readFile(path, func(r io.Reader) error {
		var derr error
		c, lineage, derr = DecodeClusters(r)
		return derr
	})
	if err != nil {
		return nil, nil, err
	}
	if err = readClusterNames(path, c); err != nil {
		return nil, nil, err
	}

	return c, lineage, nil
}

// WriteReferences atomically writes one isolate ID per line, sorted.
func WriteReferences(path string, ids []string) error {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	return WriteFileAtomic(path, func(w io.Writer) error {
		for _, id := range sorted {
			if _, err := io.WriteString(w, id+"\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadReferences reads a reference list, skipping blank lines.
func ReadReferences(path string) ([]string, error) {
	var ids []string
	err := readFile(path, func(r io.Reader) error {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			if id := strings.TrimSpace(sc.Text()); id != "" {
				ids = append(ids, id)
			}
		}
		return sc.Err()
	})

	return ids, err
}

// EncodeQueryDistances writes "Query,Reference,Core,Accessory" rows for a
// reference-vs-query record in record order.
func EncodeQueryDistances(w io.Writer, rec *dists.Record) error {
	const op = "persist.EncodeQueryDistances"
	if rec == nil || rec.IsSelf() {
		return errkind.Inconsistent(op, "query distances need a reference-vs-query record")
	}
	pairs, err := rec.Pairs()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err = cw.Write([]string{"Query", "Reference", "Core", "Accessory"}); err != nil {
		return err
	}
	for _, p := range pairs {
		c, err := rec.Distance(p.Index, dists.Core)
		if err != nil {
			return err
		}
		a, err := rec.Distance(p.Index, dists.Accessory)
		if err != nil {
			return err
		}
		row := []string{p.First, p.Second, strconv.FormatFloat(c, 'g', -1, 64), strconv.FormatFloat(a, 'g', -1, 64)}
		if err = cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteQueryDistances atomically writes the query distance table.
func WriteQueryDistances(path string, rec *dists.Record) error {
	return WriteFileAtomic(path, func(w io.Writer) error { return EncodeQueryDistances(w, rec) })
}
