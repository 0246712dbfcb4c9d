// Package output renders command results: go-pretty tables by default, raw
// indented JSON with --json.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Pack3tL0ss/cencli/internal/central"
	"github.com/Pack3tL0ss/cencli/internal/cleaner"
)

// RenderTable prints a table to stdout.
func RenderTable(t cleaner.Table) {
	w := table.NewWriter()
	w.SetOutputMirror(os.Stdout)
	w.SetStyle(table.StyleLight)

	headerRow := table.Row{}
	for _, h := range t.Headers {
		headerRow = append(headerRow, h)
	}
	w.AppendHeader(headerRow)

	for _, row := range t.Rows {
		w.AppendRow(table.Row(row))
	}

	w.Render()
}

// RenderJSON pretty-prints raw JSON to stdout. Non-JSON bodies are printed
// as-is (some endpoints return plain text).
func RenderJSON(body []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(buf.String())
}

// Print renders an API response: the error when the call failed, the raw
// body with jsonOut, otherwise the cleaned table truncated to limit rows
// (0 = all).
func Print(resp *central.Response, jsonOut bool, limit int, clean func([]byte) cleaner.Table) error {
	if !resp.Ok() {
		return resp.AsErr()
	}
	if jsonOut {
		RenderJSON(resp.Body)
		return nil
	}
	t := clean(resp.Body)
	total := len(t.Rows)
	if limit > 0 && total > limit {
		t.Rows = t.Rows[:limit]
	}
	RenderTable(t)
	if limit > 0 && total > limit {
		fmt.Printf("showing %d of %d\n", limit, total)
	}
	return nil
}

// PrintBatch renders per-item batch results: one row per request with its
// status and, on failure, the server's error text.
func PrintBatch(names []string, results []*central.Response) {
	t := cleaner.Table{Headers: []string{"item", "status", "result"}}
	failed := 0
	for i, r := range results {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		status := "-"
		detail := "ok"
		if r != nil {
			if r.StatusCode != 0 {
				status = fmt.Sprintf("%d", r.StatusCode)
			}
			if !r.Ok() {
				failed++
				detail = r.Error()
			}
		}
		t.Rows = append(t.Rows, []any{name, status, detail})
	}
	RenderTable(t)
	fmt.Printf("%d succeeded, %d failed\n", len(results)-failed, failed)
}
