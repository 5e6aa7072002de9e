package render

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/hamishcoleman/cli-bcachectl/internal/bcache"
)

// List writes one line per device record.
func List(w io.Writer, devices []bcache.Device) error {
	for _, d := range devices {
		_, err := fmt.Fprintf(w, "%-9s %-36s %-16s %s\n",
			d.Type, orDash(d.ID), orDash(d.Path), orDash(d.Parent))
		if err != nil {
			return err
		}
	}
	return nil
}

// DumpYAML writes the device records as a YAML document.
func DumpYAML(w io.Writer, devices []bcache.Device) error {
	data, err := yaml.Marshal(devices)
	if err != nil {
		return fmt.Errorf("failed to marshal devices: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
