package search

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// countingExtractor: kaç kez çağrıldığını sayar
type countingExtractor struct {
	calls int
	inner TextExtractor
}

func (c *countingExtractor) Extract(path string) (string, error) {
	c.calls++
	return c.inner.Extract(path)
}

func TestSearch_FindsParagraphInTextFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lease.txt", "Short one.\n\nThe tenant shall pay the monthly rent before the fifth day.\n\nUnrelated closing paragraph text here.")

	s := New(dir, DefaultExtractors(false), 0)
	res, err := s.Search(context.Background(), "RENT")
	require.NoError(t, err)

	assert.Equal(t, StatusFound, res.Status)
	assert.Equal(t, []string{"The tenant shall pay the monthly rent before the fifth day."}, res.Results)
}

func TestSearch_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lease.txt", "The tenant shall pay the monthly rent before the fifth day.")

	s := New(dir, DefaultExtractors(false), 0)
	res, err := s.Search(context.Background(), "swimming pool")
	require.NoError(t, err)

	assert.Equal(t, StatusNotFound, res.Status)
	assert.NotNil(t, res.Results)
	assert.Empty(t, res.Results)
}

func TestSearch_EmptyQuery(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lease.txt", "The tenant shall pay the monthly rent before the fifth day.")

	res, err := New(dir, DefaultExtractors(false), 0).Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
}

func TestSearch_MissingDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"), DefaultExtractors(true), 0)
	res, err := s.Search(context.Background(), "rent")
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Empty(t, res.Results)
}

func TestSearch_AtMostThreeResults(t *testing.T) {
	dir := t.TempDir()
	var paragraphs []string
	for i := 0; i < 5; i++ {
		paragraphs = append(paragraphs, "Deposit clause number "+strings.Repeat("x", i+1)+" applies to every tenant.")
	}
	writeFile(t, dir, "a.txt", strings.Join(paragraphs, "\n\n"))
	writeFile(t, dir, "b.txt", strings.Join(paragraphs, "\n \n"))

	res, err := New(dir, DefaultExtractors(false), 0).Search(context.Background(), "deposit")
	require.NoError(t, err)
	assert.Equal(t, StatusFound, res.Status)
	assert.Len(t, res.Results, MaxResults)
	// dosya adı sırası: hepsi a.txt'den
	assert.Equal(t, paragraphs[:3], res.Results)
}

func TestSearch_ShortParagraphsIgnored(t *testing.T) {
	dir := t.TempDir()
	// tam 20 karakter: eşleşmez
	writeFile(t, dir, "short.txt", "rent is due monthly.\n\nrent")

	res, err := New(dir, DefaultExtractors(false), 0).Search(context.Background(), "rent")
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
}

func TestSearch_TruncatesLongParagraphs(t *testing.T) {
	dir := t.TempDir()
	long := "Kira " + strings.Repeat("ğ", 700)
	writeFile(t, dir, "long.txt", long)

	res, err := New(dir, DefaultExtractors(false), 0).Search(context.Background(), "kira")
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, MaxParagraphLength, utf8.RuneCountInString(res.Results[0]))
	assert.True(t, strings.HasPrefix(res.Results[0], "Kira "))
}

func TestSearch_AnyWordMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.TXT", "The balcony faces the sea and gets sun all day.")

	res, err := New(dir, DefaultExtractors(false), 0).Search(context.Background(), "garage balcony")
	require.NoError(t, err)
	assert.Equal(t, StatusFound, res.Status)
}

func TestSearch_SkipsUnsupportedAndUnknownFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "contract.pdf", "%PDF-1.4 not really a pdf but mentions rent in a long sentence")
	writeFile(t, dir, "notes.md", "The monthly rent is mentioned in this markdown file.")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	res, err := New(dir, DefaultExtractors(false), 0).Search(context.Background(), "rent")
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
}

func TestSearch_BrokenPDFIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.pdf", "%PDF-1.4 garbage garbage garbage rent")
	writeFile(t, dir, "b.txt", "The monthly rent is paid by bank transfer only.")

	res, err := New(dir, DefaultExtractors(true), 0).Search(context.Background(), "rent")
	require.NoError(t, err)
	assert.Equal(t, []string{"The monthly rent is paid by bank transfer only."}, res.Results)
}

func TestSearch_CachesExtractedText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lease.txt", "The tenant shall pay the monthly rent before the fifth day.")

	counter := &countingExtractor{inner: PlainTextExtractor{}}
	s := New(dir, map[string]TextExtractor{".txt": counter}, time.Minute)
	defer s.Close()

	for i := 0; i < 3; i++ {
		res, err := s.Search(context.Background(), "rent")
		require.NoError(t, err)
		assert.Equal(t, StatusFound, res.Status)
	}
	assert.Equal(t, 1, counter.calls)

	// içerik (boyut) değişince yeniden okunur
	require.NoError(t, os.WriteFile(path, []byte("The tenant shall pay the monthly rent before the tenth day of month."), 0o644))
	res, err := s.Search(context.Background(), "tenth")
	require.NoError(t, err)
	assert.Equal(t, StatusFound, res.Status)
	assert.Equal(t, 2, counter.calls)
}

func TestSearch_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lease.txt", "The tenant shall pay the monthly rent before the fifth day.")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(dir, DefaultExtractors(false), 0).Search(ctx, "rent")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnsupportedExtractor(t *testing.T) {
	_, err := UnsupportedExtractor{}.Extract("x.pdf")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestPlainTextExtractor_DropsInvalidUTF8(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.txt", "ki\xffra")
	text, err := PlainTextExtractor{}.Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "kira", text)
}
