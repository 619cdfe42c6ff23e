// Package report renders analysis results for people and for tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"snipcheck/internal/analysis"
)

type Options struct {
	Format   string // text, markdown or json
	Locale   string
	ShowDiff bool
	// Title is printed above the result, typically the file name.
	Title string
}

type jsonReport struct {
	Title      string   `json:"title,omitempty"`
	Canonical  string   `json:"canonical"`
	Empty      bool     `json:"empty"`
	Syntax     string   `json:"syntax,omitempty"`
	Structures []string `json:"structures"`
	Messages   []string `json:"messages"`
	Diff       string   `json:"diff,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// Render writes res to w in the requested format.
func Render(w io.Writer, res *analysis.Result, opts Options) error {
	switch strings.ToLower(opts.Format) {
	case "", "text":
		return renderText(w, res, opts)
	case "markdown", "md":
		return renderMarkdown(w, res, opts)
	case "json":
		return renderJSON(w, res, opts)
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

// Lines returns the verdict lines of res in display order.
func Lines(res *analysis.Result, locale string) []string {
	msg := analysis.MessagesFor(locale)
	if res.Empty {
		return []string{msg.EmptyInput}
	}

	var lines []string
	if res.SyntaxErr != nil {
		lines = append(lines, fmt.Sprintf("%s: %v", msg.SyntaxTitle, res.SyntaxErr))
	} else {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.SyntaxTitle, msg.SyntaxMessage(res.Syntax)))
	}
	if res.StructureErr != nil {
		lines = append(lines, fmt.Sprintf("%s: %v", msg.StructTitle, res.StructureErr))
	} else {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.StructTitle, msg.StructureMessage(res.Structure)))
	}
	return lines
}

func renderText(w io.Writer, res *analysis.Result, opts Options) error {
	msg := analysis.MessagesFor(opts.Locale)
	var sb strings.Builder

	if opts.Title != "" {
		fmt.Fprintf(&sb, "== %s ==\n", opts.Title)
	}
	fmt.Fprintf(&sb, "%s:\n%s\n\n", msg.Original, indent(strings.TrimRight(res.Raw, "\r\n")))
	fmt.Fprintf(&sb, "%s:\n%s\n\n", msg.Cleaned, indent(res.Canonical))
	if opts.ShowDiff {
		fmt.Fprintf(&sb, "Diff:\n%s\n\n", indent(Diff(res.Raw, res.Canonical)))
	}
	for _, line := range Lines(res, opts.Locale) {
		if res.Empty {
			fmt.Fprintf(&sb, "⚠️  %s\n", line)
			continue
		}
		fmt.Fprintf(&sb, "%s\n", line)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func renderMarkdown(w io.Writer, res *analysis.Result, opts Options) error {
	msg := analysis.MessagesFor(opts.Locale)
	var sb strings.Builder

	if opts.Title != "" {
		fmt.Fprintf(&sb, "## %s\n\n", opts.Title)
	}
	codeBlock(&sb, msg.Original, "python", strings.TrimRight(res.Raw, "\r\n"))
	codeBlock(&sb, msg.Cleaned, "python", res.Canonical)
	if opts.ShowDiff {
		codeBlock(&sb, "Diff", "diff", Diff(res.Raw, res.Canonical))
	}

	if res.Empty {
		fmt.Fprintf(&sb, "> ⚠️ %s\n", msg.EmptyInput)
	} else {
		for _, line := range Lines(res, opts.Locale) {
			fmt.Fprintf(&sb, "- %s\n", line)
		}
	}
	fmt.Fprintf(&sb, "\n_%s_\n", msg.Note)

	_, err := io.WriteString(w, sb.String())
	return err
}

func renderJSON(w io.Writer, res *analysis.Result, opts Options) error {
	out := jsonReport{
		Title:      opts.Title,
		Canonical:  res.Canonical,
		Empty:      res.Empty,
		Structures: []string{},
		Messages:   Lines(res, opts.Locale),
	}
	if !res.Empty {
		if res.SyntaxErr == nil {
			out.Syntax = res.Syntax.String()
		}
		for _, s := range res.Structure {
			out.Structures = append(out.Structures, string(s))
		}
	}
	for _, err := range []error{res.SyntaxErr, res.StructureErr} {
		if err != nil {
			out.Errors = append(out.Errors, err.Error())
		}
	}
	if opts.ShowDiff {
		out.Diff = Diff(res.Raw, res.Canonical)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func codeBlock(sb *strings.Builder, title, lang, body string) {
	f := fence(body)
	fmt.Fprintf(sb, "**%s:**\n\n%s%s\n%s\n%s\n\n", title, f, lang, body, f)
}

// fence returns a backtick fence longer than any backtick run in body.
func fence(body string) string {
	longest, run := 0, 0
	for _, r := range body {
		if r != '`' {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

func indent(s string) string {
	if s == "" {
		return "    (empty)"
	}
	return "    " + strings.ReplaceAll(s, "\n", "\n    ")
}
