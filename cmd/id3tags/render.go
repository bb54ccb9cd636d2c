package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/arunjitsingh/id3/internal/config"
	"github.com/arunjitsingh/id3/pkg/id3"
)

const artworkPreview = 48

var fieldOrder = []string{
	id3.FieldTitle,
	id3.FieldArtist,
	id3.FieldAlbum,
	id3.FieldYear,
	id3.FieldDuration,
	id3.FieldArtwork,
}

func render(out io.Writer, format string, result id3.Result) error {
	switch format {
	case config.FormatTable:
		_, err := fmt.Fprintln(out, renderTable(result))
		return err
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Fields)
	}
}

func renderTable(result id3.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Field", "Value"})
	for _, key := range orderedKeys(result.Fields) {
		value := result.Fields[key]
		if key == id3.FieldArtwork && len(value) > artworkPreview {
			value = value[:artworkPreview] + "…"
		}
		tw.AppendRow(table.Row{key, value})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	tw.SetCaption("ID3v%s", result.Version)
	return tw.Render()
}

func orderedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, key := range fieldOrder {
		if _, ok := fields[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var rest []string
	for key := range fields {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
