// SPDX-License-Identifier: MIT

package persist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"github.com/katalvlaran/strainnet/cluster"
	"github.com/katalvlaran/strainnet/errkind"
)

// ClusterNamesSuffix is appended to a clustering CSV path to name its ledger.
const ClusterNamesSuffix = ".names"

// Row kinds of the name ledger.
const (
	namesKindNext  = "next"
	namesKindAlias = "alias"
)

// ClusterNamesPath returns the ledger path that belongs to a clustering CSV.
func ClusterNamesPath(clustersPath string) string { return clustersPath + ClusterNamesSuffix }

// HasClusterNames reports whether the clustering CSV at path has a ledger.
func HasClusterNames(clustersPath string) bool {
	_, err := os.Stat(ClusterNamesPath(clustersPath))

	return err == nil
}

// EncodeClusterNames writes the name ledger of c as CSV "Kind,Name,Survivor":
// one "next" row with the name NewName would issue, then one "alias" row per
// absorbed name in name order. The CSV alone cannot carry either, and without
// them a reloaded clustering could issue an absorbed name again.
func EncodeClusterNames(w io.Writer, c *cluster.Clustering) error {
	if c == nil {
		return errkind.Malformed("persist.EncodeClusterNames", "nil clustering")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Kind", "Name", "Survivor"}); err != nil {
		return err
	}
	if err := cw.Write([]string{namesKindNext, c.NextName(), ""}); err != nil {
		return err
	}
	aliases := c.Aliases()
	absorbed := make([]string, 0, len(aliases))
	for a := range aliases {
		absorbed = append(absorbed, a)
	}
	sort.Slice(absorbed, func(i, j int) bool { return cluster.CompareNames(absorbed[i], absorbed[j]) < 0 })
	for _, a := range absorbed {
		if err := cw.Write([]string{namesKindAlias, a, aliases[a]}); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// DecodeClusterNames restores a ledger written by EncodeClusterNames into c.
func DecodeClusterNames(r io.Reader, c *cluster.Clustering) error {
	const op = "persist.DecodeClusterNames"
	if c == nil {
		return errkind.Malformed(op, "nil clustering")
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	if _, err := cr.Read(); err != nil {
		return errkind.Wrap(errkind.ErrMalformedInput, op, err)
	}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errkind.Wrap(errkind.ErrMalformedInput, op, err)
		}
		switch rec[0] {
		case namesKindNext:
			err = c.SetNextName(rec[1])
		case namesKindAlias:
			err = c.SetAlias(rec[1], rec[2])
		default:
			err = errkind.Malformed(op, fmt.Sprintf("line %d: unknown row kind", line), rec[0])
		}
		if err != nil {
			return err
		}
	}
}

func writeClusterNames(clustersPath string, c *cluster.Clustering) error {
	return WriteFileAtomic(ClusterNamesPath(clustersPath), func(w io.Writer) error { return EncodeClusterNames(w, c) })
}

// readClusterNames applies the ledger of clustersPath to c. A missing ledger
// leaves c untouched.
func readClusterNames(clustersPath string, c *cluster.Clustering) error {
	err := readFile(ClusterNamesPath(clustersPath), func(r io.Reader) error { return DecodeClusterNames(r, c) })
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}
