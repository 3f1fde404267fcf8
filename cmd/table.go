package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// table writes aligned columns with a rule under the header.
type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, header ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	t.row(header...)
	rule := make([]string, len(header))
	for i, h := range header {
		rule[i] = strings.Repeat("─", max(len(h), 3))
	}
	t.row(rule...)
	return t
}

func (t *table) row(cells ...string) {
	fmt.Fprintln(t.tw, strings.Join(cells, "\t"))
}

func (t *table) rowf(format string, args ...any) {
	fmt.Fprintf(t.tw, format+"\n", args...)
}

func (t *table) flush() error {
	return t.tw.Flush()
}

const timeLayout = "2006-01-02 15:04:05"

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
