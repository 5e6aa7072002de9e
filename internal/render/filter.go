package render

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/hamishcoleman/cli-bcachectl/internal/bcache"
)

// filterEnv is the expression environment for device filters, e.g.
// `type == "cset"` or `path startsWith "nvme"`.
type filterEnv struct {
	Type   string `expr:"type"`
	Path   string `expr:"path"`
	ID     string `expr:"id"`
	Parent string `expr:"parent"`
}

// Filter returns the devices matching a boolean expression over the fields
// type, path, id and parent. The empty expression matches everything.
func Filter(devices []bcache.Device, src string) ([]bcache.Device, error) {
	if src == "" {
		return devices, nil
	}

	program, err := expr.Compile(src, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("error compiling filter %q: %w", src, err)
	}

	var matched []bcache.Device
	for _, d := range devices {
		env := filterEnv{Type: d.Type, Path: d.Path, ID: d.ID, Parent: d.Parent}
		out, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("error evaluating filter %q: %w", src, err)
		}
		if out.(bool) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}
