package bcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Default sysfs locations scanned for bcache metadata.
const (
	DefaultFSRoot    = "/sys/fs/bcache"
	DefaultBlockRoot = "/sys/class/block"
)

// Sysfs reads the bcache hierarchy from kernel-exposed metadata. The roots
// are configurable so tests can point the scanner at fixture trees.
type Sysfs struct {
	FSRoot    string
	BlockRoot string
}

// NewSysfs creates a scanner over the default sysfs locations.
func NewSysfs() *Sysfs {
	return &Sysfs{
		FSRoot:    DefaultFSRoot,
		BlockRoot: DefaultBlockRoot,
	}
}

// Discover walks the cache-set directories under FSRoot and returns one
// record per cache set, backing device and cache device. Cache sets come
// first, each followed by its member devices.
func (s *Sysfs) Discover() ([]Device, error) {
	entries, err := os.ReadDir(s.FSRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.FSRoot, err)
	}

	var devices []Device
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		csetID := entry.Name()
		csetDir := filepath.Join(s.FSRoot, csetID)
		log.Debug().Str("cset", csetID).Msg("found cache set")

		cset := Device{Type: TypeCacheSet, ID: csetID}
		if target, err := os.Readlink(filepath.Join(csetDir, "bdev0", "dev")); err == nil {
			cset.Path = filepath.Base(target)
		}
		devices = append(devices, cset)

		members, err := s.members(csetDir, csetID)
		if err != nil {
			return nil, err
		}
		devices = append(devices, members...)
	}
	return devices, nil
}

// members returns the backing (bdev*) and cache (cache*) devices linked
// under a cache-set directory.
func (s *Sysfs) members(csetDir, csetID string) ([]Device, error) {
	entries, err := os.ReadDir(csetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", csetDir, err)
	}

	var devices []Device
	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(csetDir, name)

		fi, err := os.Lstat(full)
		if err != nil || fi.Mode()&os.ModeSymlink == 0 {
			continue
		}

		switch {
		case strings.HasPrefix(name, "bdev"):
			dev := Device{Type: name, Parent: csetID}
			dev.Path, err = firstLine(filepath.Join(full, "backing_dev_name"))
			if err != nil {
				return nil, err
			}
			dev.ID, err = firstLine(filepath.Join(full, "backing_dev_uuid"))
			if err != nil {
				return nil, err
			}
			log.Debug().Str("bdev", name).Str("path", dev.Path).Msg("found backing device")
			devices = append(devices, dev)

		case strings.HasPrefix(name, "cache"):
			target, err := os.Readlink(full)
			if err != nil {
				return nil, fmt.Errorf("failed to read link %s: %w", full, err)
			}
			dev := Device{
				Type:   name,
				Parent: csetID,
				// The cache UUID is only in the superblock.
				ID:   NullID,
				Path: filepath.Base(filepath.Dir(target)),
			}
			log.Debug().Str("cache", name).Str("path", dev.Path).Msg("found cache device")
			devices = append(devices, dev)
		}
	}
	return devices, nil
}

// Blocks scans the block-device class directory for entries that expose a
// bcache attribute. A symlinked attribute marks a cache-set member; anything
// else is reported as unknown.
func (s *Sysfs) Blocks() ([]Device, error) {
	entries, err := os.ReadDir(s.BlockRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.BlockRoot, err)
	}

	var devices []Device
	for _, entry := range entries {
		attr := filepath.Join(s.BlockRoot, entry.Name(), "bcache")
		fi, err := os.Lstat(attr)
		if err != nil {
			continue
		}

		dev := Device{Path: entry.Name()}
		if fi.Mode()&os.ModeSymlink != 0 {
			dev.Type = TypeCacheSet
		} else {
			dev.Type = TypeUnknown
		}
		log.Debug().Str("block", entry.Name()).Str("type", dev.Type).Msg("found block device")
		devices = append(devices, dev)
	}
	return devices, nil
}

// firstLine reads the first line of a sysfs attribute file.
func firstLine(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(line), nil
}
