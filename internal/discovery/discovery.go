// Package discovery lists the files under a directory so they can be offered
// as menu elements.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"listmenu/internal/eventbus"
)

// DefaultMaxDepth is how many directory levels below the root are listed
const DefaultMaxDepth = 5

// skipDirs are never descended into: they hold generated or vendored files
var skipDirs = map[string]bool{
	"node_modules":  true,
	"vendor":        true,
	"dist":          true,
	"build":         true,
	"target":        true,
	"__pycache__":   true,
	".pytest_cache": true,
	".tox":          true,
	"venv":          true,
	".venv":         true,
}

// Options configures a scan
type Options struct {
	// MaxDepth limits how deep below the root files are listed. Zero means
	// DefaultMaxDepth.
	MaxDepth int
	// Hidden includes dot files and dot directories
	Hidden bool
	// Bus receives a ScanCompletedEvent
	Bus eventbus.EventBus
}

// Scan returns the paths of regular files under root, relative to root and
// sorted. Unreadable directories are skipped. Scan stops early when ctx is
// cancelled.
func Scan(ctx context.Context, root string, opts Options) ([]string, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	bus := opts.Bus
	if bus == nil {
		bus = eventbus.NullBus{}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	var found []string
	skipped := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			skipped++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		name := d.Name()
		hidden := strings.HasPrefix(name, ".")

		if d.IsDir() {
			depth := strings.Count(rel, string(filepath.Separator)) + 1
			if depth > maxDepth || skipDirs[name] || name == ".git" || (hidden && !opts.Hidden) {
				return fs.SkipDir
			}
			return nil
		}
		if hidden && !opts.Hidden {
			return nil
		}
		if d.Type().IsRegular() {
			found = append(found, filepath.ToSlash(rel))
		}
		return nil
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Strings(found)
	bus.Publish(eventbus.ScanCompletedEvent{Root: root, Found: len(found), Skipped: skipped})
	return found, nil
}
