// Package bcache discovers the bcache device hierarchy from sysfs.
package bcache

// Device type names as they appear in sysfs.
const (
	// TypeCacheSet is a cache set, the parent of backing and cache devices.
	TypeCacheSet = "cset"
	// TypeUnknown is a block device exposing a bcache attribute that could
	// not be classified further.
	TypeUnknown = "unk"
)

// NullID marks a device whose UUID is not exposed through sysfs. The cache
// device UUID lives only in the on-disk superblock.
const NullID = "Null"

// Device describes one entry in the bcache hierarchy: a cache set, a backing
// device (bdevN) or a cache device (cacheN).
type Device struct {
	// Type is cset, bdevN, cacheN or unk.
	Type string `yaml:"type"`

	// Path is the kernel block-device name, e.g. bcache0 or sdb.
	Path string `yaml:"path,omitempty"`

	// ID is the device UUID, or NullID when sysfs does not expose one.
	ID string `yaml:"id,omitempty"`

	// Parent is the UUID of the owning cache set; empty for roots.
	Parent string `yaml:"parent,omitempty"`
}
