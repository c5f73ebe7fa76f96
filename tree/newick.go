// SPDX-License-Identifier: MIT

package tree

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Newick renders t, terminated by ';'.
func (t *Tree) Newick() string {
	var sb strings.Builder
	_ = t.WriteNewick(&sb)

	return sb.String()
}

// WriteNewick writes t in Newick notation followed by a newline.
func (t *Tree) WriteNewick(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if t.Root != nil {
		writeNode(bw, t.Root, true)
	}
	bw.WriteString(";\n")

	return bw.Flush()
}

func writeNode(w *bufio.Writer, n *Node, root bool) {
	if len(n.Children) > 0 {
		w.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				w.WriteByte(',')
			}
			writeNode(w, c, false)
		}
		w.WriteByte(')')
	}
	w.WriteString(quoteLabel(n.Label))
	if !root {
		w.WriteByte(':')
		w.WriteString(strconv.FormatFloat(n.Length, 'g', -1, 64))
	}
}

// quoteLabel single-quotes labels holding Newick punctuation or blanks.
func quoteLabel(s string) string {
	if !strings.ContainsAny(s, " \t\n()[]':;,") {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
