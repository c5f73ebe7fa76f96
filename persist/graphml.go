// SPDX-License-Identifier: MIT

package persist

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/errkind"
)

const (
	graphmlIDKey     = "id"
	graphmlWeightKey = "weight"
)

type graphmlDoc struct {
	XMLName xml.Name     `xml:"http://graphml.graphdrawing.org/xmlns graphml"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// EncodeGraphML writes g as GraphML: one node per vertex in insertion order
// carrying the isolate ID, one edge per pair in insertion order carrying the
// weight.
func EncodeGraphML(w io.Writer, g *core.Graph) error {
	if g == nil {
		return errkind.Malformed("persist.EncodeGraphML", "nil graph")
	}
	doc := graphmlDoc{
		Keys: []graphmlKey{
			{ID: graphmlIDKey, For: "node", Name: "id", Type: "string"},
			{ID: graphmlWeightKey, For: "edge", Name: "weight", Type: "double"},
		},
		Graph: graphmlGraph{ID: "G", EdgeDefault: "undirected"},
	}

	ids := g.VerticesInOrder()
	node := make(map[string]string, len(ids))
	for i, id := range ids {
		nid := "n" + strconv.Itoa(i)
		node[id] = nid
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphmlNode{
			ID:   nid,
			Data: []graphmlData{{Key: graphmlIDKey, Value: id}},
		})
	}
	for _, e := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			Source: node[e.From],
			Target: node[e.To],
			Data:   []graphmlData{{Key: graphmlWeightKey, Value: strconv.FormatFloat(e.Weight, 'g', -1, 64)}},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")

	return err
}

// DecodeGraphML reads an undirected GraphML document. Keys are resolved by
// attr.name: node data named "id" supplies the isolate ID (the node id is used
// when absent) and edge data named "weight" supplies the weight.
func DecodeGraphML(r io.Reader) (*core.Graph, error) {
	const op = "persist.DecodeGraphML"

	var doc graphmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errkind.Wrap(errkind.ErrMalformedInput, op, err)
	}
	if doc.Graph.EdgeDefault == "directed" {
		return nil, errkind.Malformed(op, "directed graphs are not supported")
	}
	names := make(map[string]string, len(doc.Keys))
	for _, k := range doc.Keys {
		names[k.ID] = k.Name
	}

	g := core.NewGraph(core.WithCapacity(len(doc.Graph.Nodes), len(doc.Graph.Edges)))
	vertex := make(map[string]string, len(doc.Graph.Nodes))
	taken := make(map[string]bool, len(doc.Graph.Nodes))
	for _, n := range doc.Graph.Nodes {
		id := n.ID
		for _, d := range n.Data {
			if names[d.Key] == graphmlIDKey {
				id = d.Value
			}
		}
		if _, dup := vertex[n.ID]; dup || taken[id] {
			return nil, errkind.Malformed(op, "duplicate node", id)
		}
		taken[id] = true
		if err := g.AddVertex(id); err != nil {
			return nil, errkind.Wrap(errkind.ErrMalformedInput, op, err, n.ID)
		}
		vertex[n.ID] = id
	}
	for i, e := range doc.Graph.Edges {
		from, okF := vertex[e.Source]
		to, okT := vertex[e.Target]
		if !okF || !okT {
			return nil, errkind.Malformed(op, fmt.Sprintf("edge %d names an unknown node", i), e.Source, e.Target)
		}
		weight, found := 0.0, false
		for _, d := range e.Data {
			if names[d.Key] != graphmlWeightKey {
				continue
			}
			v, err := strconv.ParseFloat(d.Value, 64)
			if err != nil {
				return nil, errkind.Wrap(errkind.ErrMalformedInput, op, err, from, to)
			}
			weight, found = v, true
		}
		if !found {
			return nil, errkind.Malformed(op, fmt.Sprintf("edge %d has no weight", i), from, to)
		}
		if _, err := g.AddEdge(from, to, weight); err != nil {
			return nil, errkind.Wrap(errkind.ErrMalformedInput, op, err, from, to)
		}
	}

	return g, nil
}

// WriteGraphML atomically writes g to path.
func WriteGraphML(path string, g *core.Graph) error {
	return WriteFileAtomic(path, func(w io.Writer) error { return EncodeGraphML(w, g) })
}

// ReadGraphML reads a graph written by WriteGraphML or another GraphML producer.
func ReadGraphML(path string) (*core.Graph, error) {
	var g *core.Graph
	err := readFile(path, func(r io.Reader) error {
		var derr error
		g, derr = DecodeGraphML(r)
		return derr
	})

	return g, err
}
