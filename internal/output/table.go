package output

import (
	"io"

	"fairapi/internal/assess"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	passMark = color.New(color.FgHiGreen).Sprint("✓")
	failMark = color.New(color.FgHiRed).Sprint("✗")
	bold     = color.New(color.Bold).SprintFunc()
	cyan     = color.New(color.FgHiCyan).SprintFunc()
	red      = color.New(color.FgHiRed).SprintFunc()
	green    = color.New(color.FgHiGreen).SprintFunc()
	yellow   = color.New(color.FgHiYellow).SprintFunc()
	orange   = color.New(color.FgYellow).SprintFunc()
)

// badgePalette maps badge colours to terminal colours. Terminals have no
// orange, so plain yellow stands in for it.
var badgePalette = map[string]func(a ...interface{}) string{
	"green":  green,
	"yellow": yellow,
	"orange": orange,
	"red":    red,
}

// NewTable creates a borderless, left-aligned table.
func NewTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

func mark(ok bool) string {
	if ok {
		return passMark
	}
	return failMark
}

// scoreColor colours "score/max" with the same bands as the badge.
func scoreColor(score, max int, s string) string {
	paint, ok := badgePalette[assess.BadgeColor(score, max)]
	if !ok {
		return s
	}
	return paint(s)
}
