package main

import (
	"fmt"
	"io"
	"sync"

	"ginraidee/spin-cli/internal/domain"
	"ginraidee/spin-cli/internal/spin"
)

const clearLine = "\r\033[K"

// renderer draws sequencer snapshots on a single terminal line.
type renderer struct {
	mu  sync.Mutex
	out io.Writer
}

func (r *renderer) draw(snap spin.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch snap.State {
	case spin.StateShuffling:
		if snap.Displayed != nil {
			fmt.Fprintf(r.out, "%s  ... %s", clearLine, label(*snap.Displayed))
		} else {
			fmt.Fprintf(r.out, "%s  ...", clearLine)
		}
	case spin.StateResult:
		fmt.Fprintf(r.out, "%s=> %s\n", clearLine, describe(*snap.Result))
		fmt.Fprint(r.out, "[l]ike  [d]islike  [s]pin  [q]uit: ")
	default:
		fmt.Fprint(r.out, clearLine)
		if snap.Message != "" {
			fmt.Fprintln(r.out, snap.Message)
		}
		fmt.Fprint(r.out, "[s]pin  [q]uit: ")
	}
}

func (r *renderer) println(a ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, a...)
}

func label(item domain.MenuItem) string {
	if item.NameEn != "" {
		return fmt.Sprintf("%s (%s)", item.Name, item.NameEn)
	}
	return item.Name
}

func describe(item domain.MenuItem) string {
	s := label(item)
	if item.CategoryName != "" {
		s += " · " + item.CategoryName
	}
	return fmt.Sprintf("%s · %.0f THB", s, item.Price)
}
