package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// corpus is a directory of documents grouped by class: <root>/<class>/<file>.
type corpus struct {
	Classes []string
	Texts   []string
	// Truth holds the document positions of each class, in Classes order.
	Truth []*roaring.Bitmap
}

// loadCorpus reads every regular file under each class directory of root.
// os.ReadDir sorts by name, so positions are stable across runs.
func loadCorpus(root, keyword string) (*corpus, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}

	c := &corpus{}
	for _, class := range entries {
		if !class.IsDir() {
			continue
		}
		dir := filepath.Join(root, class.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading class %s: %w", class.Name(), err)
		}

		members := roaring.New()
		for _, f := range files {
			if !f.Type().IsRegular() {
				continue
			}
			text, err := readDocument(filepath.Join(dir, f.Name()), keyword)
			if err != nil {
				return nil, err
			}
			members.Add(uint32(len(c.Texts)))
			c.Texts = append(c.Texts, text)
		}
		if members.IsEmpty() {
			continue
		}
		c.Classes = append(c.Classes, class.Name())
		c.Truth = append(c.Truth, members)
	}
	if len(c.Texts) == 0 {
		return nil, fmt.Errorf("corpus %s has no documents", root)
	}
	return c, nil
}

// readDocument returns the body of a file. With a keyword, lines up to and
// including the first one starting with keyword are skipped.
func readDocument(path, keyword string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	started := keyword == ""
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if !started {
			started = strings.HasPrefix(line, keyword)
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return b.String(), nil
}
