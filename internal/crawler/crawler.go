package crawler

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Crawler scans a directory for snippet files.
type Crawler struct {
	extensions []string
	ignored    []string
}

// NewCrawler creates a crawler for files with the given extensions (".py" if none).
func NewCrawler(extensions ...string) *Crawler {
	if len(extensions) == 0 {
		extensions = []string{".py"}
	}
	return &Crawler{
		extensions: extensions,
		ignored:    []string{".git", "venv", ".venv", "__pycache__", "node_modules"},
	}
}

// Scan walks root in lexical order and hands every matching file to onSnippet.
// Unreadable files are logged and skipped; an error from onSnippet stops the walk.
func (c *Crawler) Scan(root string, onSnippet func(path, text string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign && path != root {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !c.matches(d.Name()) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("⚠️ Failed to read %s: %v", path, err)
			return nil
		}

		return onSnippet(path, string(data))
	})
}

func (c *Crawler) matches(name string) bool {
	for _, ext := range c.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
