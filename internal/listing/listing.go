// Package listing models the four list kinds the tool renders (runs,
// kernels, datasets, competitions) as one tagged item type, populated
// from run-log records or the CLI's CSV output. A single Render
// function dispatches on the tag; there are no per-kind row shapes.
package listing

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kagglekit/kagglectl/internal/csvtab"
	"github.com/kagglekit/kagglectl/internal/project"
)

// Kind tags an Item with which list it belongs to.
type Kind string

const (
	KindRun         Kind = "run"
	KindKernel      Kind = "kernel"
	KindDataset     Kind = "dataset"
	KindCompetition Kind = "competition"
)

// Item is one row of any list. Ref is the slug or URL identifying the
// thing; Detail is the kind-specific third column.
type Item struct {
	Kind   Kind
	Ref    string
	Title  string
	Detail string
}

// RunItems converts run-log records, newest first. Only the newest
// record can be pending; everything older is complete by definition.
func RunItems(records []project.RunRecord, latest project.RunStatus) []Item {
	items := make([]Item, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		status := project.RunStatusComplete
		if i == len(records)-1 {
			status = latest
		}
		items = append(items, Item{
			Kind:   KindRun,
			Ref:    records[i].URL,
			Title:  records[i].Timestamp.Format("2006-01-02 15:04:05"),
			Detail: string(status),
		})
	}
	return items
}

// KernelItems parses `kernels list --csv` output.
func KernelItems(text string) ([]Item, error) {
	tab, err := csvtab.Parse(text, "ref", "title")
	if err != nil {
		return nil, fmt.Errorf("parsing kernel list: %w", err)
	}
	items := make([]Item, 0, tab.Len())
	for i := 0; i < tab.Len(); i++ {
		items = append(items, Item{
			Kind:   KindKernel,
			Ref:    tab.Get(i, "ref"),
			Title:  tab.Get(i, "title"),
			Detail: tab.Get(i, "lastRunTime"),
		})
	}
	return items, nil
}

// DatasetItems parses `datasets list --csv` output.
func DatasetItems(text string) ([]Item, error) {
	tab, err := csvtab.Parse(text, "ref", "title")
	if err != nil {
		return nil, fmt.Errorf("parsing dataset list: %w", err)
	}
	items := make([]Item, 0, tab.Len())
	for i := 0; i < tab.Len(); i++ {
		items = append(items, Item{
			Kind:   KindDataset,
			Ref:    tab.Get(i, "ref"),
			Title:  tab.Get(i, "title"),
			Detail: tab.Get(i, "size"),
		})
	}
	return items, nil
}

// CompetitionItems parses `competitions list --csv` output. The
// competition list has no title column; the ref doubles as one.
func CompetitionItems(text string) ([]Item, error) {
	tab, err := csvtab.Parse(text, "ref", "deadline")
	if err != nil {
		return nil, fmt.Errorf("parsing competition list: %w", err)
	}
	items := make([]Item, 0, tab.Len())
	for i := 0; i < tab.Len(); i++ {
		items = append(items, Item{
			Kind:   KindCompetition,
			Ref:    tab.Get(i, "ref"),
			Title:  tab.Get(i, "category"),
			Detail: "deadline " + tab.Get(i, "deadline"),
		})
	}
	return items, nil
}

// Render writes items as aligned rows, one header per kind.
func Render(w io.Writer, items []Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "(nothing to show)")
		return
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	defer tw.Flush()

	for _, it := range items {
		switch it.Kind {
		case KindRun:
			// runs lead with the timestamp and status; the URL is the ref
			fmt.Fprintf(tw, "%s\t%s\t%s\n", it.Title, it.Detail, it.Ref)
		default:
			fmt.Fprintf(tw, "%s\t%s\t%s\n", it.Ref, it.Title, it.Detail)
		}
	}
}
