package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/fashion-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output for verbose CLI mode.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintTagBatch renders the tag records produced for one upload batch.
func (p *Printer) PrintTagBatch(records []types.TagRecord) {
	if p == nil || p.out == nil {
		return
	}

	var sb strings.Builder
	for i, record := range records {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, record.Name)
		fmt.Fprintf(&sb, "   %s / %s / %s", record.Category, record.Color, record.Style)
		if i < len(records)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("Tagged %d items", len(records)), sb.String())
}

// PrintBundle renders a recommendation bundle outfit by outfit.
func (p *Printer) PrintBundle(bundle *types.RecommendationBundle) {
	if p == nil || p.out == nil || bundle == nil {
		return
	}

	var sb strings.Builder
	if bundle.Vibe != "" {
		fmt.Fprintf(&sb, "Vibe: %s\n", bundle.Vibe)
	}
	for i, outfit := range bundle.Recommendations {
		fmt.Fprintf(&sb, "Outfit %d:\n", i+1)
		for _, item := range outfit.Items {
			fmt.Fprintf(&sb, "  - %s (%s)\n", item.Name, item.Category)
		}
	}
	p.printBox(fmt.Sprintf("%d outfit recommendations", len(bundle.Recommendations)),
		strings.TrimRight(sb.String(), "\n"))
}
