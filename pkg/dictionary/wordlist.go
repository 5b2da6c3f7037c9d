// pkg/dictionary/wordlist.go

package dictionary

import (
	"bufio"
	"context"
	_ "embed"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

//go:embed data/common.txt
var commonWords string

var (
	defaultOnce sync.Once
	defaultList *WordList
)

// Default returns the embedded list of frequently used passwords.
func Default() *WordList {
	defaultOnce.Do(func() {
		defaultList, _ = Read(strings.NewReader(commonWords))
	})
	return defaultList
}

// WordList is an in-memory set of lowercase words. It is read-only after
// construction and safe for concurrent use.
type WordList struct {
	words map[string]struct{}
}

// NewWordList builds a list from words; entries are lowercased.
func NewWordList(words ...string) *WordList {
	wl := &WordList{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		wl.add(w)
	}
	return wl
}

func (wl *WordList) add(w string) {
	w = strings.ToLower(strings.TrimSpace(w))
	if w == "" || strings.HasPrefix(w, "#") {
		return
	}
	wl.words[w] = struct{}{}
}

// Read parses one word per line. Blank lines and lines starting with '#'
// are skipped.
func Read(r io.Reader) (*WordList, error) {
	wl := &WordList{words: make(map[string]struct{})}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		wl.add(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return wl, nil
}

// LoadFile reads a word-list file.
func LoadFile(path string) (*WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// Words returns the distinct words in sorted order.
func (wl *WordList) Words() []string {
	out := make([]string, 0, len(wl.words))
	for w := range wl.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of distinct words.
func (wl *WordList) Len() int {
	return len(wl.words)
}

// Contains reports whether any lookup candidate of password is listed.
func (wl *WordList) Contains(_ context.Context, password string) (bool, error) {
	for _, c := range Candidates(password) {
		if _, ok := wl.words[c]; ok {
			return true, nil
		}
	}
	return false, nil
}
