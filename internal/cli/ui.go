package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/apinav/pkg/core/toc"
	"github.com/matzehuels/apinav/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorOrange = lipgloss.Color("208") // Orange - graph root
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleRoot    = lipgloss.NewStyle().Bold(true).Foreground(colorOrange)
	styleDivider = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// printStats prints document statistics and cache status on one line.
func printStats(w io.Writer, stats pipeline.Stats, info pipeline.CacheInfo) {
	parts := []string{
		fmt.Sprintf("%d nodes", stats.NodeCount),
		fmt.Sprintf("%d edges", stats.EdgeCount),
	}
	status := styleComputed.Render("fresh")
	if info.AllCached() {
		status = styleCached.Render("cached")
	}
	fmt.Fprintln(w, "  "+styleDim.Render(strings.Join(parts, " · ")+" · ")+status)
}

// =============================================================================
// Table of Contents
// =============================================================================

// renderTOC draws items as a tree under the service name.
func renderTOC(service string, items []toc.Item) string {
	t := tree.Root(styleTitle.Render(service)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(styleDim)
	addTOCItems(t, items)
	return t.String()
}

func addTOCItems(t *tree.Tree, items []toc.Item) {
	for _, it := range items {
		switch v := it.(type) {
		case toc.Leaf:
			t.Child(leafLine(v))
		case toc.Divider:
			t.Child(styleDivider.Render(v.Title))
		case toc.Group:
			sub := tree.Root(styleValue.Render(v.Title)).
				Enumerator(tree.RoundedEnumerator).
				EnumeratorStyle(styleDim)
			addTOCItems(sub, v.Items)
			t.Child(sub)
		}
	}
}

func leafLine(l toc.Leaf) string {
	line := l.Title
	if l.Meta != "" {
		line += " " + styleDim.Render(strings.ToUpper(l.Meta))
	}
	return line + " " + styleDim.Render(l.Slug)
}

// =============================================================================
// Inbound References
// =============================================================================

// renderInbound draws one table per non-empty bucket; empty buckets are
// listed by title only.
func renderInbound(v pipeline.InboundView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", styleTitle.Render("Referenced by"), styleRoot.Render(v.Subject))

	if v.Total == 0 {
		b.WriteString(styleDim.Render("no inbound references"))
		b.WriteString("\n")
		return b.String()
	}

	for _, bucket := range v.Buckets {
		b.WriteString("\n")
		if bucket.Disabled {
			b.WriteString(styleDim.Render(bucket.Title))
			b.WriteString("\n")
			continue
		}
		marker := ""
		if bucket.Kind == v.Default {
			marker = " " + styleDim.Render("(default)")
		}
		b.WriteString(styleValue.Render(bucket.Title) + marker + "\n")

		rows := make([][]string, 0, len(bucket.Entries))
		for _, e := range bucket.Entries {
			rows = append(rows, []string{e.Name, e.Subtitle, e.Version, e.Path})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(styleDim).
			Headers("Name", "Location", "Version", "Via").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return styleHeader
				}
				if col == 0 {
					return styleValue
				}
				return styleDim
			})
		b.WriteString(t.Render())
		b.WriteString("\n")
	}
	return b.String()
}
