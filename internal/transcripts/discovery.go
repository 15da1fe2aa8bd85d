package transcripts

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// maxWalkDepth bounds recursion below each source root. Session files sit
// at most a project directory and a date directory deep.
const maxWalkDepth = 3

// SourceRoot binds a source tag to the directory its tool writes
// transcripts into.
type SourceRoot struct {
	Source     string
	Dir        string
	Extensions []string
}

// DiscoveredFile is one transcript file selected by Discover.
type DiscoveredFile struct {
	Source  string
	Path    string
	ModTime time.Time
}

// DefaultRoots returns the per-tool transcript directories under the
// user's home directory for every registered adapter.
func DefaultRoots() []SourceRoot {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	dirs := map[string]string{
		"claude": filepath.Join(home, ".claude", "projects"),
		"codex":  filepath.Join(home, ".codex", "sessions"),
		"gemini": filepath.Join(home, ".gemini", "tmp"),
	}

	var roots []SourceRoot
	for _, source := range Sources() {
		dir, ok := dirs[source]
		if !ok {
			continue
		}
		adapter, _ := Lookup(source)
		roots = append(roots, SourceRoot{
			Source:     source,
			Dir:        dir,
			Extensions: adapter.Extensions(),
		})
	}
	return roots
}

// Discover enumerates transcript files under each root, keeping files
// modified at or after since and capping results per source to maxFiles,
// newest first. Missing or unreadable roots are skipped.
func Discover(roots []SourceRoot, since time.Time, maxFiles int) []DiscoveredFile {
	var found []DiscoveredFile

	for _, root := range roots {
		files := discoverRoot(root, since)
		sort.Slice(files, func(i, j int) bool {
			return files[i].ModTime.After(files[j].ModTime)
		})
		if maxFiles > 0 && len(files) > maxFiles {
			files = files[:maxFiles]
		}
		found = append(found, files...)
	}

	return found
}

func discoverRoot(root SourceRoot, since time.Time) []DiscoveredFile {
	absRoot, err := filepath.Abs(root.Dir)
	if err != nil {
		return nil
	}
	if _, err := os.Stat(absRoot); err != nil {
		return nil
	}

	var files []DiscoveredFile

	_ = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules" {
				return fs.SkipDir
			}
			if walkDepth(absRoot, path) >= maxWalkDepth {
				return fs.SkipDir
			}
			return nil
		}

		if !hasExtension(d.Name(), root.Extensions) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(since) {
			return nil
		}

		files = append(files, DiscoveredFile{
			Source:  root.Source,
			Path:    path,
			ModTime: info.ModTime(),
		})
		return nil
	})

	return files
}

func walkDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return maxWalkDepth
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func hasExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
