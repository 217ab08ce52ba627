package catalog

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
	"github.com/atomicstack/tmux-quicklaunch/internal/logging"
)

// Options controls which directories are crawled.
type Options struct {
	// AppDirs are walked without a depth limit for application entries.
	AppDirs []string
	// Roots are walked up to MaxDepth for files with an indexed extension.
	Roots    []string
	MaxDepth int
}

// DefaultOptions returns the platform directories crawled when none are
// configured.
func DefaultOptions() Options {
	home, _ := os.UserHomeDir()
	opts := Options{
		AppDirs: []string{
			"/usr/share/applications",
			"/usr/local/share/applications",
			"/Applications",
		},
		MaxDepth: 3,
	}
	if home == "" {
		return opts
	}
	opts.AppDirs = append(opts.AppDirs,
		filepath.Join(home, ".local", "share", "applications"),
		filepath.Join(home, "Applications"),
	)
	for _, dir := range []string{"Documents", "Downloads", "Desktop", "Pictures", "Videos", "Music"} {
		opts.Roots = append(opts.Roots, filepath.Join(home, dir))
	}
	return opts
}

// Crawl walks the configured directories and returns the discovered entries.
// Missing directories and unreadable subtrees are skipped.
func Crawl(ctx context.Context, opts Options) ([]launcher.SearchResult, error) {
	seen := make(map[string]struct{})
	var entries []launcher.SearchResult
	add := func(entry launcher.SearchResult) {
		if _, ok := seen[entry.Path]; ok {
			return
		}
		seen[entry.Path] = struct{}{}
		entries = append(entries, entry)
	}
	for _, dir := range opts.AppDirs {
		if err := walkApps(ctx, dir, add); err != nil {
			return entries, err
		}
	}
	for _, root := range opts.Roots {
		if err := walkFiles(ctx, root, opts.MaxDepth, add); err != nil {
			return entries, err
		}
	}
	return entries, nil
}

func walkApps(ctx context.Context, dir string, add func(launcher.SearchResult)) error {
	if !isDir(dir) {
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return skipUnreadable(path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsApp(path) {
			return nil
		}
		add(launcher.SearchResult{Name: appName(path), Path: path, Kind: KindApp})
		if d.IsDir() {
			// macOS bundles are directories; their contents are not entries.
			return filepath.SkipDir
		}
		return nil
	})
}

func walkFiles(ctx context.Context, root string, maxDepth int, add func(launcher.SearchResult)) error {
	if !isDir(root) {
		return nil
	}
	root = filepath.Clean(root)
	baseDepth := strings.Count(root, string(os.PathSeparator))
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return skipUnreadable(path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if maxDepth > 0 && strings.Count(path, string(os.PathSeparator))-baseDepth >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		kind := KindForPath(path)
		if kind == "" {
			return nil
		}
		add(launcher.SearchResult{Name: displayName(path), Path: path, Kind: kind})
		return nil
	})
}

func skipUnreadable(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
		logging.Trace("catalog.skip", map[string]interface{}{"path": path, "error": err.Error()})
		return nil
	}
	return err
}

func isDir(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// appName prefers the Name= key of a freedesktop entry over the file stem.
func appName(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".desktop") {
		if name := desktopEntryName(path); name != "" {
			return name
		}
	}
	return displayName(path)
}

func desktopEntryName(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	inEntry := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if inEntry && strings.HasPrefix(line, "Name=") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Name="))
		}
	}
	return ""
}
