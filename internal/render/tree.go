// Package render formats discovered bcache devices for terminal display.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/hamishcoleman/cli-bcachectl/internal/bcache"
	"github.com/hamishcoleman/cli-bcachectl/internal/trie"
)

// Tree renders the parent/child device hierarchy with identifiers shortened
// to their minimal unique prefixes.
type Tree struct {
	minlen  int
	ids     *trie.Trie
	devices []bcache.Device
}

// NewTree indexes every identifier of the given devices. minlen is the floor
// for shortened labels.
func NewTree(devices []bcache.Device, minlen int) *Tree {
	t := &Tree{
		minlen:  minlen,
		ids:     trie.New(),
		devices: devices,
	}
	for _, d := range devices {
		t.ids.Insert(d.ID)
		t.ids.Insert(d.Parent)
	}
	return t
}

// Label returns the shortest unambiguous form of an identifier, or the
// identifier itself when the index cannot shorten it.
func (t *Tree) Label(id string) string {
	if short, ok := t.ids.Shorten(id, t.minlen); ok {
		return short
	}
	return id
}

// Render writes the tree view to w: one line per parentless device, its
// children below it with box-drawing connectors.
func (t *Tree) Render(w io.Writer) error {
	var parents []bcache.Device
	children := make(map[string][]bcache.Device)
	for _, d := range t.devices {
		if d.Parent == "" {
			parents = append(parents, d)
			continue
		}
		children[d.Parent] = append(children[d.Parent], d)
	}
	sort.Slice(parents, func(i, j int) bool { return parents[i].ID < parents[j].ID })

	for _, parent := range parents {
		_, err := fmt.Fprintf(w, "%s %s %s\n",
			typeColor(parent.Type).Sprintf("%-9s", parent.Type),
			t.Label(parent.ID), parent.Path)
		if err != nil {
			return err
		}

		kids := children[parent.ID]
		for i, child := range kids {
			connector := "├─"
			if i == len(kids)-1 {
				connector = "└─"
			}
			_, err := fmt.Fprintf(w, "%s %s %s %s\n", connector,
				typeColor(child.Type).Sprintf("%-6s", child.Type),
				t.Label(child.ID), child.Path)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// typeColor picks the display color for a device type.
func typeColor(devType string) *color.Color {
	switch {
	case devType == bcache.TypeCacheSet:
		return color.New(color.FgCyan)
	case strings.HasPrefix(devType, "bdev"):
		return color.New(color.FgGreen)
	case strings.HasPrefix(devType, "cache"):
		return color.New(color.FgYellow)
	}
	return color.New(color.Reset)
}
