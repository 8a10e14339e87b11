// Package adapter contains the filesystem, report and cache adapters used by
// the butterfly workflow.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	m "github.com/mouse-blink/butterfly/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get collects JavaScript and TypeScript sources under roots. A root may
	// end with /... to descend into subdirectories. Paths matching any of the
	// exclude regular expressions are left out.
	Get(roots []m.Path, exclude []string) ([]m.Source, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to path, creating parent directories.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// Abs resolves path against the working directory, expanding ~.
	Abs(path m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

var sourceExtensions = map[string]struct{}{
	".js":  {},
	".jsx": {},
	".ts":  {},
	".tsx": {},
}

// skippedDirs are never descended into.
var skippedDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	"dist":         {},
	"build":        {},
}

// IsSkippedDir reports whether directories named name are left out of
// every scan.
func IsSkippedDir(name string) bool {
	_, ok := skippedDirs[name]

	return ok
}

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects source files for the provided roots.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, exclude []string) ([]m.Source, error) {
	if len(roots) == 0 {
		return []m.Source{}, nil
	}

	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[m.Path]struct{})

	var sources []m.Source

	add := func(source m.Source) {
		if _, exists := seen[source.Origin.Path]; exists {
			return
		}

		seen[source.Origin.Path] = struct{}{}
		sources = append(sources, source)
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			source, ok, err := a.processFilePath(rootPath, filepath.Dir(rootPath), excludes)
			if err != nil {
				return nil, err
			}

			if ok {
				add(source)
			}

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if _, skip := skippedDirs[info.Name()]; skip && path != rootPath {
					return filepath.SkipDir
				}

				return nil
			}

			source, ok, err := a.processFilePath(path, rootPath, excludes)
			if err != nil {
				return err
			}

			if ok {
				add(source)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return sources, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file, creating its directory first.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// Abs returns the absolute form of path.
func (a *LocalSourceFSAdapter) Abs(path m.Path) (m.Path, error) {
	abs, _, err := normalizeRootPath(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	excludes := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	return excludes, nil
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if strings.HasSuffix(rootStr, "/...") {
		return strings.TrimSuffix(rootStr, "/..."), true
	}

	return rootStr, false
}

func (a *LocalSourceFSAdapter) processFilePath(path, root string, excludes []*regexp.Regexp) (m.Source, bool, error) {
	if _, ok := sourceExtensions[filepath.Ext(path)]; !ok {
		return m.Source{}, false, nil
	}

	if strings.HasSuffix(path, ".d.ts") {
		return m.Source{}, false, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return m.Source{}, false, err
	}

	slashed := filepath.ToSlash(absPath)
	for _, re := range excludes {
		if re.MatchString(slashed) {
			return m.Source{}, false, nil
		}
	}

	hash, err := a.HashFile(m.Path(absPath))
	if err != nil {
		return m.Source{}, false, fmt.Errorf("hash error for %s: %w", absPath, err)
	}

	return m.Source{
		Origin: &m.File{Path: m.Path(absPath), Hash: hash},
		Root:   m.Path(root),
	}, true, nil
}
