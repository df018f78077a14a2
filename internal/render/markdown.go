package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"folio/internal/labels"
	"folio/internal/portfolio"
	"folio/internal/service"

	"github.com/charmbracelet/glamour"
	md "github.com/nao1215/markdown"
)

// Markdown renders the whole report as a markdown document.
func Markdown(r *service.Report, l labels.Set, f portfolio.Formatter) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(l.Get("title"))
	if r.Dataset.Name != "" {
		doc.PlainText(fmt.Sprintf("Dataset: %s", r.Dataset.Name))
	}
	if r.Empty {
		doc.PlainText(l.Get("no_data"))
		return doc.String()
	}

	doc.H2(l.Get("statistics"))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold(l.Get("count")), md.Bold(strconv.Itoa(r.Stats.Count))},
		Rows: [][]string{
			{l.Get("invested"), f.Currency(r.Stats.Invested)},
			{l.Get("current"), f.Currency(r.Stats.Current)},
			{l.Get("gain_loss"), f.SignedCurrency(r.Stats.GainLoss)},
			{l.Get("return_pct"), f.Percentage(r.Stats.ReturnPct)},
		},
	})

	summary := SummaryTable(r, l, f)
	if n := len(summary.Rows); n > 0 {
		total := make([]string, len(summary.Rows[n-1]))
		for i, c := range summary.Rows[n-1] {
			total[i] = md.Bold(c)
		}
		summary.Rows[n-1] = total
	}
	writeTable(doc, summary, 3)
	writeTable(doc, DetailTable(r, l, f), 5)
	if len(r.TopPerformers) > 0 {
		writeTable(doc, TopTable(r, l, f), 2)
	}
	if len(r.Metrics) > 0 {
		writeTable(doc, MetricsTable(r, l), 1)
	}
	return doc.String()
}

// writeTable adds t under its title, with the columns from numeric on right
// aligned.
func writeTable(doc *md.Markdown, t Table, numeric int) {
	align := make([]md.TableAlignment, len(t.Header))
	for i := range align {
		align[i] = md.AlignLeft
		if i >= numeric {
			align[i] = md.AlignRight
		}
	}
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]string, len(row))
		for j, c := range row {
			rows[i][j] = strings.ReplaceAll(c, "|", `\|`)
		}
	}
	doc.H2(t.Title)
	doc.Table(md.TableSet{Alignment: align, Header: t.Header, Rows: rows})
}

// Terminal renders markdown for display in a terminal.
func Terminal(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
