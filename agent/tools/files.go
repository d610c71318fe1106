package tools

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kardolus/ue-agent/internal/fsio"
	"github.com/kardolus/ue-agent/types"
)

const (
	MaxReadChars     = 1000
	MaxSearchMatches = 50

	ProjectDescriptorPattern = "*.uproject"
	SourceDir                = "Source"
	ContentDir               = "Content"
)

type Entry struct {
	Name  string
	IsDir bool
	Size  int64 // -1 for directories or when unknown
}

type ReadResult struct {
	Path      string
	IsDir     bool
	Entries   []Entry
	Content   string
	Truncated bool
}

type Listing struct {
	Path    string
	Entries []Entry
}

type WriteResult struct {
	Path  string
	Bytes int
}

type ReplaceResult struct {
	Path             string
	OccurrencesFound int
	Replaced         int
}

type SearchResult struct {
	Dir       string
	Pattern   string
	Matches   []string
	Truncated bool
}

type ProjectReport struct {
	Root        string
	Descriptor  string
	HasSource   bool
	CppFiles    int
	HeaderFiles int
	HasContent  bool
	Assets      int
}

type Files interface {
	Read(path string) (ReadResult, error)
	List(path string) (Listing, error)
	Write(path, content string) (WriteResult, error)
	Replace(path, search, replacement string) (ReplaceResult, error)
	Search(dir, pattern string) (SearchResult, error)
	AnalyzeProject(root string) (ProjectReport, error)
}

type FSIOFileOps struct {
	r fsio.Reader
	w fsio.Writer
}

// Ensure FSIOFileOps implements Files interface
var _ Files = FSIOFileOps{}

func NewFSIOFileOps(r fsio.Reader, w fsio.Writer) FSIOFileOps {
	return FSIOFileOps{r: r, w: w}
}

func (f FSIOFileOps) Read(path string) (ReadResult, error) {
	const op = "read"

	info, err := f.stat(op, path)
	if err != nil {
		return ReadResult{}, err
	}

	if info.IsDir() {
		entries, err := f.entries(op, path)
		if err != nil {
			return ReadResult{}, err
		}
		return ReadResult{Path: path, IsDir: true, Entries: entries}, nil
	}

	content, err := f.readText(op, path)
	if err != nil {
		return ReadResult{}, err
	}

	content, truncated := truncateChars(content, MaxReadChars)
	return ReadResult{Path: path, Content: content, Truncated: truncated}, nil
}

func (f FSIOFileOps) List(path string) (Listing, error) {
	const op = "list"

	info, err := f.stat(op, path)
	if err != nil {
		return Listing{}, err
	}
	if !info.IsDir() {
		return Listing{}, types.NewError(types.KindWrongType, op, path, "is a file, not a directory")
	}

	entries, err := f.entries(op, path)
	if err != nil {
		return Listing{}, err
	}

	return Listing{Path: path, Entries: entries}, nil
}

func (f FSIOFileOps) Write(path, content string) (WriteResult, error) {
	const op = "write"

	if strings.TrimSpace(path) == "" {
		return WriteResult{}, types.NewError(types.KindParseFailure, op, "", "path must be non-empty")
	}

	if err := f.w.MkdirAll(filepath.Dir(path)); err != nil {
		return WriteResult{}, types.WrapError(types.KindGeneric, op, path, err)
	}

	if err := f.replaceFile(op, path, []byte(content)); err != nil {
		return WriteResult{}, err
	}

	return WriteResult{Path: path, Bytes: len(content)}, nil
}

func (f FSIOFileOps) Replace(path, search, replacement string) (ReplaceResult, error) {
	const op = "replace"

	if search == "" {
		return ReplaceResult{}, types.NewError(types.KindParseFailure, op, path, "search string must be non-empty")
	}

	info, err := f.stat(op, path)
	if err != nil {
		return ReplaceResult{}, err
	}
	if info.IsDir() {
		return ReplaceResult{}, types.NewError(types.KindWrongType, op, path, "is a directory, not a file")
	}

	content, err := f.readText(op, path)
	if err != nil {
		return ReplaceResult{}, err
	}

	found := strings.Count(content, search)
	if found == 0 {
		return ReplaceResult{Path: path}, types.NewError(types.KindNotPresent, op, path,
			fmt.Sprintf("search string not found: %s", truncateForDisplay(search, 50)))
	}

	updated := strings.ReplaceAll(content, search, replacement)
	if err := f.replaceFile(op, path, []byte(updated)); err != nil {
		return ReplaceResult{Path: path, OccurrencesFound: found}, err
	}

	return ReplaceResult{Path: path, OccurrencesFound: found, Replaced: found}, nil
}

func (f FSIOFileOps) Search(dir, pattern string) (SearchResult, error) {
	const op = "search"

	pattern = strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(pattern)), "/")
	if pattern == "" || !doublestar.ValidatePattern(pattern) {
		return SearchResult{}, types.NewError(types.KindParseFailure, op, dir, fmt.Sprintf("invalid glob pattern: %q", pattern))
	}

	info, err := f.stat(op, dir)
	if err != nil {
		return SearchResult{}, err
	}
	if !info.IsDir() {
		return SearchResult{}, types.NewError(types.KindWrongType, op, dir, "is a file, not a directory")
	}

	res := SearchResult{Dir: dir, Pattern: pattern}
	errStop := errors.New("stop search")

	err = doublestar.GlobWalk(f.r.DirFS(dir), "**/"+pattern, func(p string, _ fs.DirEntry) error {
		if len(res.Matches) == MaxSearchMatches {
			res.Truncated = true
			return errStop
		}
		res.Matches = append(res.Matches, filepath.Join(dir, filepath.FromSlash(p)))
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return SearchResult{}, types.WrapError(types.KindGeneric, op, dir, err)
	}

	return res, nil
}

func (f FSIOFileOps) AnalyzeProject(root string) (ProjectReport, error) {
	const op = "analyze"

	info, err := f.stat(op, root)
	if err != nil {
		return ProjectReport{}, err
	}
	if !info.IsDir() {
		return ProjectReport{}, types.NewError(types.KindWrongType, op, root, "is a file, not a directory")
	}

	fsys := f.r.DirFS(root)

	descriptors, err := doublestar.Glob(fsys, ProjectDescriptorPattern)
	if err != nil {
		return ProjectReport{}, types.WrapError(types.KindGeneric, op, root, err)
	}
	if len(descriptors) == 0 {
		return ProjectReport{}, types.NewError(types.KindNotFound, op, root, "no .uproject file found")
	}
	sort.Strings(descriptors)

	report := ProjectReport{Root: root, Descriptor: descriptors[0]}

	if f.isDir(filepath.Join(root, SourceDir)) {
		report.HasSource = true
		if report.CppFiles, err = countMatches(fsys, SourceDir+"/**/*.cpp"); err != nil {
			return ProjectReport{}, types.WrapError(types.KindGeneric, op, root, err)
		}
		if report.HeaderFiles, err = countMatches(fsys, SourceDir+"/**/*.h"); err != nil {
			return ProjectReport{}, types.WrapError(types.KindGeneric, op, root, err)
		}
	}

	if f.isDir(filepath.Join(root, ContentDir)) {
		report.HasContent = true
		if report.Assets, err = countMatches(fsys, ContentDir+"/**/*.uasset"); err != nil {
			return ProjectReport{}, types.WrapError(types.KindGeneric, op, root, err)
		}
	}

	return report, nil
}

func (f FSIOFileOps) stat(op, path string) (fs.FileInfo, error) {
	info, err := f.r.Stat(path)
	if err == nil {
		return info, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, types.WrapError(types.KindNotFound, op, path, fs.ErrNotExist)
	}
	return nil, types.WrapError(types.KindGeneric, op, path, err)
}

func (f FSIOFileOps) isDir(path string) bool {
	info, err := f.r.Stat(path)
	return err == nil && info.IsDir()
}

func (f FSIOFileOps) entries(op, path string) ([]Entry, error) {
	dirEntries, err := f.r.ReadDir(path)
	if err != nil {
		return nil, types.WrapError(types.KindGeneric, op, path, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		e := Entry{Name: d.Name(), IsDir: d.IsDir(), Size: -1}
		if !e.IsDir {
			if info, err := d.Info(); err == nil {
				e.Size = info.Size()
			}
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (f FSIOFileOps) readText(op, path string) (string, error) {
	b, err := f.r.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", types.WrapError(types.KindNotFound, op, path, err)
		}
		return "", types.WrapError(types.KindGeneric, op, path, err)
	}
	if !utf8.Valid(b) {
		return "", types.NewError(types.KindGeneric, op, path, "content is not valid UTF-8")
	}
	return string(b), nil
}

// replaceFile swaps in the new content through a temp file in the same directory,
// so readers see either the old or the new file.
func (f FSIOFileOps) replaceFile(op, path string, data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := f.r.Stat(path); err == nil {
		if info.IsDir() {
			return types.NewError(types.KindWrongType, op, path, "is a directory, not a file")
		}
		mode = info.Mode().Perm()
	}

	tmp, err := f.w.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return types.WrapError(types.KindGeneric, op, path, err)
	}
	tmpName := tmp.Name()

	defer func() {
		_ = tmp.Close()
	}()

	if err := f.w.Write(tmp, data); err != nil {
		_ = f.w.Remove(tmpName)
		return types.WrapError(types.KindGeneric, op, path, err)
	}

	if err := tmp.Chmod(mode); err != nil {
		_ = f.w.Remove(tmpName)
		return types.WrapError(types.KindGeneric, op, path, err)
	}

	if err := tmp.Close(); err != nil {
		_ = f.w.Remove(tmpName)
		return types.WrapError(types.KindGeneric, op, path, fmt.Errorf("close %s: %w", tmpName, err))
	}

	if err := f.w.Rename(tmpName, path); err != nil {
		_ = f.w.Remove(tmpName)
		return types.WrapError(types.KindGeneric, op, path, err)
	}

	return nil
}

func countMatches(fsys fs.FS, pattern string) (int, error) {
	n := 0
	err := doublestar.GlobWalk(fsys, pattern, func(string, fs.DirEntry) error {
		n++
		return nil
	})
	return n, err
}

func truncateChars(s string, max int) (string, bool) {
	if utf8.RuneCountInString(s) <= max {
		return s, false
	}

	n := 0
	for i := range s {
		if n == max {
			return s[:i], true
		}
		n++
	}
	return s, false
}

func truncateForDisplay(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	out, _ := truncateChars(s, maxLen)
	return out + "..."
}
