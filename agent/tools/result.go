package tools

import (
	"fmt"
	"strings"

	agenttypes "github.com/kardolus/ue-agent/agent/types"
	"github.com/kardolus/ue-agent/types"
)

const (
	GlyphFile    = "📄"
	GlyphFolder  = "📁"
	GlyphOK      = "✅"
	GlyphSearch  = "🔍"
	GlyphProject = "🎮"
	GlyphError   = "❌"

	TruncationMarker = "\n\n... (truncated: showing the first 1000 characters)"
)

// Result is the printable outcome of one operation. An empty Kind means success.
type Result struct {
	Glyph string
	Text  string
	Kind  types.ErrorKind
}

func (r Result) OK() bool { return r.Kind == "" }

func (r Result) String() string {
	if r.Glyph == "" {
		return r.Text
	}
	return r.Glyph + " " + r.Text
}

func Success(glyph, text string) Result {
	return Result{Glyph: glyph, Text: text}
}

// Failure converts any error into a printable result. It never panics on nil.
func Failure(err error) Result {
	if err == nil {
		return Result{Glyph: GlyphError, Text: "unknown error", Kind: types.KindGeneric}
	}
	return Result{Glyph: GlyphError, Text: describe(err), Kind: types.KindOf(err)}
}

func describe(err error) string {
	switch types.KindOf(err) {
	case types.KindNotFound:
		return "Not found: " + err.Error()
	case types.KindWrongType:
		return "Wrong type: " + err.Error()
	case types.KindNotPresent:
		return "Not present: " + err.Error()
	case types.KindTimeout:
		return "Timed out: " + err.Error()
	case types.KindConnectionFailure:
		return "Connection failed: " + err.Error()
	case types.KindParseFailure:
		return "Invalid input: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}

func (r ReadResult) Render() Result {
	var b strings.Builder

	if r.IsDir {
		_, _ = fmt.Fprintf(&b, "Folder: %s\n\nFiles:\n", r.Path)
		for _, e := range r.Entries {
			glyph, size := GlyphFile, "-"
			if e.IsDir {
				glyph = GlyphFolder
			}
			if e.Size >= 0 {
				size = fmt.Sprintf("%d", e.Size)
			}
			_, _ = fmt.Fprintf(&b, "  %s %s (%s bytes)\n", glyph, e.Name, size)
		}
		return Success(GlyphFolder, b.String())
	}

	_, _ = fmt.Fprintf(&b, "File: %s\n\n%s", r.Path, r.Content)
	if r.Truncated {
		b.WriteString(TruncationMarker)
	}
	return Success(GlyphFile, b.String())
}

func (l Listing) Render() Result {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "Directory: %s\n\nTotal %d items:\n\n", l.Path, len(l.Entries))
	for _, e := range l.Entries {
		if e.IsDir {
			_, _ = fmt.Fprintf(&b, "  %s Folder: %s\n", GlyphFolder, e.Name)
			continue
		}
		_, _ = fmt.Fprintf(&b, "  %s File: %s\n", GlyphFile, e.Name)
	}
	return Success(GlyphFolder, b.String())
}

func (w WriteResult) Render() Result {
	return Success(GlyphOK, fmt.Sprintf("File written: %s (%d bytes)", w.Path, w.Bytes))
}

func (r ReplaceResult) Render() Result {
	return Success(GlyphOK, fmt.Sprintf("File updated: %s\nReplacements: %d", r.Path, r.Replaced))
}

func (s SearchResult) Render() Result {
	if len(s.Matches) == 0 {
		return Success(GlyphSearch, fmt.Sprintf("No files matching %q under %s", s.Pattern, s.Dir))
	}

	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "%d match(es) for %q under %s", len(s.Matches), s.Pattern, s.Dir)
	if s.Truncated {
		_, _ = fmt.Fprintf(&b, " (first %d shown)", MaxSearchMatches)
	}
	b.WriteString(":\n")
	b.WriteString(strings.Join(s.Matches, "\n"))
	return Success(GlyphSearch, b.String())
}

func (p ProjectReport) Render() Result {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "Project: %s\n", p.Descriptor)
	if p.HasSource {
		_, _ = fmt.Fprintf(&b, "C++ Files: %d\n", p.CppFiles)
		_, _ = fmt.Fprintf(&b, "Header Files: %d\n", p.HeaderFiles)
	}
	if p.HasContent {
		_, _ = fmt.Fprintf(&b, "Assets: %d\n", p.Assets)
	}
	return Success(GlyphProject, b.String())
}

// RenderBuild reports stdout for a clean exit and stderr otherwise.
func RenderBuild(res agenttypes.Result) Result {
	if res.ExitCode == 0 {
		out := res.Stdout
		if strings.TrimSpace(out) == "" {
			out = "build finished with no output"
		}
		return Success(GlyphOK, out)
	}

	out := res.Stderr
	if strings.TrimSpace(out) == "" {
		out = res.Stdout
	}
	return Result{
		Glyph: GlyphError,
		Text:  fmt.Sprintf("Build failed (exit %d):\n%s", res.ExitCode, out),
		Kind:  types.KindGeneric,
	}
}

// Render adapts the (value, error) pair every Files method returns into a Result.
func Render[T interface{ Render() Result }](v T, err error) Result {
	if err != nil {
		return Failure(err)
	}
	return v.Render()
}
