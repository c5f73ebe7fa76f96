// SPDX-License-Identifier: MIT

// Package cluster assigns stable names to the connected components of a
// relatedness graph.
//
// A Clustering maps isolate IDs to cluster names. Names are decimal strings
// issued from a monotonic counter that never reuses a value, absorbed names
// included. When components merge, the lowest name survives (numerically when
// both names are integers, otherwise lexicographically) and every absorbed name
// is recorded as an alias of the survivor.
package cluster

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/katalvlaran/strainnet/bfs"
	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/errkind"
)

// Merge records one merge event.
type Merge struct {
	Survivor string
	Absorbed []string
}

// Clustering maps isolates to cluster names.
type Clustering struct {
	assign  map[string]string
	aliases map[string]string
	next    uint64 // next integer name to issue
}

// New returns an empty clustering whose first issued name is "1".
func New() *Clustering {
	return &Clustering{
		assign:  make(map[string]string),
		aliases: make(map[string]string),
		next:    1,
	}
}

// FromMap builds a clustering from an existing id -> name assignment. The name
// counter continues above the highest integer name present; absorbed names and
// a counter saved alongside the assignment must be restored with SetAlias and
// SetNextName, or an absorbed name may be issued again.
func FromMap(m map[string]string) (*Clustering, error) {
	c := New()
	for id, name := range m {
		if err := c.Set(id, name); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Fresh names the connected components of g from scratch: "1", "2", ... ordered
// by component size descending, then by smallest member ID.
func Fresh(g *core.Graph) (*Clustering, error) {
	comps, err := Components(g)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(comps, func(i, j int) bool {
		if len(comps[i]) != len(comps[j]) {
			return len(comps[i]) > len(comps[j])
		}
		return comps[i][0] < comps[j][0]
	})

	c := New()
	for _, comp := range comps {
		name := c.NewName()
		for _, id := range comp {
			c.assign[id] = name
		}
	}

	return c, nil
}

// Components returns the connected components of g, each sorted ascending,
// ordered by smallest member.
func Components(g *core.Graph) ([][]string, error) {
	return bfs.Components(g, nil)
}

// Set assigns id to name, advancing the counter past integer names.
func (c *Clustering) Set(id, name string) error {
	if id == "" || name == "" {
		return errkind.Malformed("cluster.Set", "empty isolate or cluster name", id)
	}
	c.assign[id] = name
	c.observe(name)

	return nil
}

func (c *Clustering) observe(name string) {
	if n, ok := parseName(name); ok && n >= c.next {
		c.next = n + 1
	}
}

// SetAlias records that absorbed was merged into survivor.
func (c *Clustering) SetAlias(absorbed, survivor string) error {
	if absorbed == "" || survivor == "" || absorbed == survivor {
		return errkind.Malformed("cluster.SetAlias", "invalid alias", absorbed, survivor)
	}
	c.aliases[absorbed] = survivor
	c.observe(absorbed)
	c.observe(survivor)

	return nil
}

// NewName issues the next unused name.
func (c *Clustering) NewName() string {
	name := strconv.FormatUint(c.next, 10)
	c.next++

	return name
}

// Reserve marks name as issued so NewName never returns it.
func (c *Clustering) Reserve(name string) { c.observe(name) }

// SetNextName advances the counter so NewName issues name or a later one. It
// never moves the counter back.
func (c *Clustering) SetNextName(name string) error {
	n, ok := parseName(name)
	if !ok || n == 0 {
		return errkind.Malformed("cluster.SetNextName", "next name must be a positive integer", name)
	}
	if n > c.next {
		c.next = n
	}

	return nil
}

// NextName reports the name NewName would issue, without issuing it.
func (c *Clustering) NextName() string { return strconv.FormatUint(c.next, 10) }

// Name returns the cluster of id.
func (c *Clustering) Name(id string) (string, bool) {
	n, ok := c.assign[id]

	return n, ok
}

// Len returns the number of assigned isolates.
func (c *Clustering) Len() int { return len(c.assign) }

// IDs returns every assigned isolate, sorted.
func (c *Clustering) IDs() []string {
	ids := make([]string, 0, len(c.assign))
	for id := range c.assign {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Names returns the distinct cluster names in name order.
func (c *Clustering) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range c.assign {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Slice(names, func(i, j int) bool { return CompareNames(names[i], names[j]) < 0 })

	return names
}

// Members returns the isolates of cluster name, sorted.
func (c *Clustering) Members(name string) []string {
	var out []string
	for id, n := range c.assign {
		if n == name {
			out = append(out, id)
		}
	}
	sort.Strings(out)

	return out
}

// Groups returns name -> sorted members.
func (c *Clustering) Groups() map[string][]string {
	out := make(map[string][]string)
	for id, n := range c.assign {
		out[n] = append(out[n], id)
	}
	for _, m := range out {
		sort.Strings(m)
	}

	return out
}

// Map returns a copy of the id -> name assignment.
func (c *Clustering) Map() map[string]string {
	out := make(map[string]string, len(c.assign))
	for id, n := range c.assign {
		out[id] = n
	}

	return out
}

// Aliases returns a copy of absorbed name -> surviving name.
func (c *Clustering) Aliases() map[string]string {
	out := make(map[string]string, len(c.aliases))
	for a, s := range c.aliases {
		out[a] = s
	}

	return out
}

// Resolve follows aliases from name to the live cluster it was merged into.
func (c *Clustering) Resolve(name string) string {
	for i := 0; i <= len(c.aliases); i++ {
		next, ok := c.aliases[name]
		if !ok {
			return name
		}
		name = next
	}

	return name
}

// Merge folds the named clusters into the lowest name. Every isolate carrying an
// absorbed name is relabelled and each absorbed name becomes an alias. Merging a
// single name (or duplicates of one name) is a no-op merge with no absorbed names.
func (c *Clustering) Merge(names ...string) (Merge, error) {
	if len(names) == 0 {
		return Merge{}, errkind.Malformed("cluster.Merge", "no cluster names")
	}
	uniq := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			return Merge{}, errkind.Malformed("cluster.Merge", "empty cluster name")
		}
		if !seen[n] {
			seen[n] = true
			uniq = append(uniq, n)
		}
	}
	sort.Slice(uniq, func(i, j int) bool { return CompareNames(uniq[i], uniq[j]) < 0 })

	m := Merge{Survivor: uniq[0], Absorbed: uniq[1:]}
	if len(m.Absorbed) == 0 {
		return m, nil
	}
	absorbed := make(map[string]bool, len(m.Absorbed))
	for _, a := range m.Absorbed {
		absorbed[a] = true
		c.aliases[a] = m.Survivor
	}
	for id, n := range c.assign {
		if absorbed[n] {
			c.assign[id] = m.Survivor
		}
	}

	return m, nil
}

// Clone returns a deep copy, counter included.
func (c *Clustering) Clone() *Clustering {
	return &Clustering{assign: c.Map(), aliases: c.Aliases(), next: c.next}
}

// Covers fails with ErrInconsistentGraph listing every vertex of g without a cluster.
func (c *Clustering) Covers(g *core.Graph) error {
	var missing []string
	for _, id := range g.Vertices() {
		if _, ok := c.assign[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return errkind.Inconsistent("cluster.Covers", "graph vertices without a cluster", missing...)
	}

	return nil
}

// String renders "id=name" pairs in ID order.
func (c *Clustering) String() string {
	ids := c.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = fmt.Sprintf("%s=%s", id, c.assign[id])
	}

	return fmt.Sprint(out)
}

// CompareNames orders cluster names: numerically when both are non-negative
// integers, otherwise lexicographically. Returns -1, 0 or +1.
func CompareNames(a, b string) int {
	na, okA := parseName(a)
	nb, okB := parseName(b)
	switch {
	case okA && okB && na < nb:
		return -1
	case okA && okB && na > nb:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func parseName(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 64)

	return n, err == nil
}
