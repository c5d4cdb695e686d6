package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"nultail/internal/tail"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// printStartupSummary shows the tracked files before the first cycle. A
// terminal stderr gets a table; anything else gets plain debug records so
// redirected diagnostics stay line-oriented.
func printStartupSummary(statuses []tail.FileStatus, logger *slog.Logger) {
	if !stderrIsTerminal() {
		for _, status := range statuses {
			logger.Debug("tracking file",
				slog.String("file", status.Path),
				slog.Int64("size", fileSize(status.Path)),
				slog.Int64("cursor", status.Cursor),
				slog.String("phase", status.Phase.String()))
		}
		return
	}

	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		rows = append(rows, []string{
			status.Path,
			strconv.FormatInt(fileSize(status.Path), 10),
			strconv.FormatInt(status.Cursor, 10),
			status.Phase.String(),
		})
	}
	rendered := renderTable(
		[]string{"File", "Size", "Cursor", "Phase"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	)
	os.Stderr.WriteString(rendered + "\n")
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return -1
	}
	return info.Size()
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
