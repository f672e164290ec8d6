package search

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/karlseguin/ccache/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	StatusFound    = "found"
	StatusNotFound = "not_found"

	MaxResults         = 3
	MaxParagraphLength = 500
	// Bu uzunluğu (karakter) geçmeyen paragraflar eşleşmez
	MinParagraphLength = 20
)

var paragraphSep = regexp.MustCompile(`\n\s*\n`)

type Result struct {
	Status  string   `json:"status"`
	Results []string `json:"results"`
}

func notFound() Result {
	return Result{Status: StatusNotFound, Results: []string{}}
}

// Searcher: yükleme klasöründeki .pdf/.txt dosyalarında lineer arama
type Searcher struct {
	dir        string
	extractors map[string]TextExtractor
	cache      *ccache.Cache[string]
	cacheTTL   time.Duration
}

// New: cacheTTL <= 0 ise çıkarılan metinler cache'lenmez.
func New(dir string, extractors map[string]TextExtractor, cacheTTL time.Duration) *Searcher {
	s := &Searcher{
		dir:        dir,
		extractors: extractors,
		cacheTTL:   cacheTTL,
	}
	if cacheTTL > 0 {
		s.cache = ccache.New(ccache.Configure[string]().MaxSize(256))
	}
	return s
}

func (s *Searcher) Close() {
	if s.cache != nil {
		s.cache.Stop()
	}
}

func (s *Searcher) Search(ctx context.Context, query string) (Result, error) {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return notFound(), nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return notFound(), nil
		}
		return Result{}, errors.Wrap(err, "yükleme klasörü okunamadı")
	}

	results := make([]string, 0, MaxResults)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if entry.IsDir() {
			continue
		}
		extractor, ok := s.extractors[strings.ToLower(filepath.Ext(entry.Name()))]
		if !ok {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		text, err := s.extract(path, entry, extractor)
		if errors.Is(err, ErrUnsupported) {
			zap.S().Debugf("Arama: %s atlandı (desteklenmiyor)", path)
			continue
		}
		if err != nil {
			zap.S().Warnf("Arama: %s okunamadı: %v", path, err)
			continue
		}

		for _, paragraph := range paragraphSep.Split(text, -1) {
			paragraph = strings.TrimSpace(paragraph)
			if utf8.RuneCountInString(paragraph) <= MinParagraphLength {
				continue
			}
			if !containsAny(strings.ToLower(paragraph), words) {
				continue
			}
			results = append(results, truncate(paragraph, MaxParagraphLength))
			if len(results) >= MaxResults {
				return Result{Status: StatusFound, Results: results}, nil
			}
		}
	}

	if len(results) == 0 {
		return notFound(), nil
	}
	return Result{Status: StatusFound, Results: results}, nil
}

// extract: dosya boyutu ve değişiklik zamanı değişmediyse cache'ten döner
func (s *Searcher) extract(path string, entry fs.DirEntry, extractor TextExtractor) (string, error) {
	if s.cache == nil {
		return extractor.Extract(path)
	}

	info, err := entry.Info()
	if err != nil {
		return "", errors.Wrap(err, "dosya bilgisi alınamadı")
	}
	key := fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())

	if item := s.cache.Get(key); item != nil && !item.Expired() {
		return item.Value(), nil
	}

	text, err := extractor.Extract(path)
	if err != nil {
		return "", err
	}
	s.cache.Set(key, text, s.cacheTTL)
	return text, nil
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
