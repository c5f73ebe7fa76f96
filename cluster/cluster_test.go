// SPDX-License-Identifier: MIT

package cluster_test

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/katalvlaran/strainnet/cluster"
	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/errkind"
)

func TestFresh_NamingOrder(t *testing.T) {
	g := core.NewGraph()
	// {D,E} size 2, {A,B,C} size 3, {F} size 1, {G,H} size 2
	for _, e := range [][2]string{{"A", "B"}, {"B", "C"}, {"D", "E"}, {"H", "G"}} {
		_, err := g.AddEdge(e[0], e[1], 0.1)
		require.NoError(t, err)
	}
	require.NoError(t, g.AddVertex("F"))

	c, err := cluster.Fresh(g)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"A": "1", "B": "1", "C": "1",
		"D": "2", "E": "2",
		"G": "3", "H": "3",
		"F": "4",
	}, c.Map())
	assert.Equal(t, []string{"1", "2", "3", "4"}, c.Names())
	assert.Equal(t, "5", c.NextName())
	assert.NoError(t, c.Covers(g))
}

func TestCompareNames(t *testing.T) {
	assert.Equal(t, -1, cluster.CompareNames("2", "10"))
	assert.Equal(t, 1, cluster.CompareNames("10", "9"))
	assert.Equal(t, 0, cluster.CompareNames("7", "7"))
	assert.Equal(t, -1, cluster.CompareNames("10", "a"), "mixed names compare lexicographically")
	assert.Equal(t, -1, cluster.CompareNames("alpha", "beta"))
}

func TestMerge_LowestSurvives(t *testing.T) {
	c, err := cluster.FromMap(map[string]string{"a": "10", "b": "2", "c": "3", "d": "7"})
	require.NoError(t, err)

	m, err := c.Merge("10", "3", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "2", m.Survivor)
	assert.Equal(t, []string{"3", "10"}, m.Absorbed)
	assert.Equal(t, map[string]string{"a": "2", "b": "2", "c": "2", "d": "7"}, c.Map())
	assert.Equal(t, map[string]string{"3": "2", "10": "2"}, c.Aliases())
	assert.Equal(t, "2", c.Resolve("10"))

	// Absorbed names are never reissued.
	assert.Equal(t, "11", c.NewName())

	m, err = c.Merge("7")
	require.NoError(t, err)
	assert.Empty(t, m.Absorbed)

	_, err = c.Merge()
	assert.ErrorIs(t, err, errkind.ErrMalformedInput)
}

func TestResolveChain(t *testing.T) {
	c := cluster.New()
	require.NoError(t, c.SetAlias("9", "5"))
	require.NoError(t, c.SetAlias("5", "1"))
	assert.Equal(t, "1", c.Resolve("9"))
	assert.Equal(t, "10", c.NextName())
	c.Reserve("41")
	assert.Equal(t, "42", c.NewName())
	assert.Error(t, c.SetAlias("1", "1"))
}

func TestCovers(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddEdge("A", "B", 1)
	c := cluster.New()
	require.NoError(t, c.Set("A", "1"))
	err := c.Covers(g)
	require.ErrorIs(t, err, errkind.ErrInconsistentGraph)
	assert.Equal(t, []string{"B"}, errkind.IDs(err))
}

// TestComponentsMatchGonum cross-checks the component partition against gonum topo.
func TestComponentsMatchGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 120
	g := core.NewGraph()
	ug := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		require.NoError(t, g.AddVertex(strconv.Itoa(i)))
		ug.AddNode(simple.Node(i))
	}
	for k := 0; k < 90; k++ {
		a, b := rng.Intn(n), rng.Intn(n)
		if a == b {
			continue
		}
		_, err := g.AddEdge(strconv.Itoa(a), strconv.Itoa(b), rng.Float64())
		require.NoError(t, err)
		ug.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
	}

	ours, err := cluster.Components(g)
	require.NoError(t, err)

	var theirs [][]string
	for _, comp := range topo.ConnectedComponents(ug) {
		ids := make([]string, len(comp))
		for i, node := range comp {
			ids[i] = strconv.FormatInt(node.ID(), 10)
		}
		sort.Strings(ids)
		theirs = append(theirs, ids)
	}
	sort.Slice(theirs, func(i, j int) bool { return theirs[i][0] < theirs[j][0] })

	assert.Equal(t, theirs, ours)

	c, err := cluster.Fresh(g)
	require.NoError(t, err)
	assert.Len(t, c.Names(), len(theirs))
	for _, comp := range ours {
		name, _ := c.Name(comp[0])
		assert.Equal(t, comp, c.Members(name), fmt.Sprintf("cluster %s", name))
	}
}
