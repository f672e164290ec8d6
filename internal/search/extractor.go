package search

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
	"rsc.io/pdf"
)

// ErrUnsupported: extractor bu dosya türünü okuyamıyor (ör. PDF desteği kapalı).
// Arama bu dosyaları sessizce atlar.
var ErrUnsupported = errors.New("metin çıkarma desteklenmiyor")

// TextExtractor: bir dosyanın düz metnini döndürür ya da ErrUnsupported.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// DefaultExtractors: uzantı -> extractor. pdfEnabled false ise .pdf için
// UnsupportedExtractor kullanılır.
func DefaultExtractors(pdfEnabled bool) map[string]TextExtractor {
	var pdfExtractor TextExtractor = UnsupportedExtractor{}
	if pdfEnabled {
		pdfExtractor = PDFExtractor{}
	}
	return map[string]TextExtractor{
		".txt": PlainTextExtractor{},
		".pdf": pdfExtractor,
	}
}

// PlainTextExtractor: UTF-8 okur, geçersiz byte dizilerini atar.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "dosya okunamadı")
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

type UnsupportedExtractor struct{}

func (UnsupportedExtractor) Extract(string) (string, error) {
	return "", ErrUnsupported
}

// PDFExtractor: rsc.io/pdf ile sayfa sayfa metin çıkarır. Aynı satırdaki
// metin parçaları birleştirilir, sayfalar arasında boş satır bırakılır.
type PDFExtractor struct{}

func (PDFExtractor) Extract(path string) (text string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "pdf açılamadı")
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", errors.Wrap(err, "pdf okunamadı")
	}

	// rsc.io/pdf bozuk içerikte panic atabiliyor
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf parse edilemedi: %v", r)
		}
	}()

	reader, err := pdf.NewReader(f, fi.Size())
	if err != nil {
		return "", errors.Wrap(err, "pdf parse edilemedi")
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		texts := page.Content().Text
		if widthless(texts) {
			writePageOps(&sb, page)
		} else {
			writePageText(&sb, texts)
		}
	}
	return sb.String(), nil
}

func writePageText(sb *strings.Builder, texts []pdf.Text) {
	var prev *pdf.Text
	for i := range texts {
		t := &texts[i]
		if prev != nil {
			tolerance := math.Max(prev.FontSize/2, 1)
			switch {
			case math.Abs(t.Y-prev.Y) > tolerance:
				sb.WriteByte('\n')
			case t.X-(prev.X+prev.W) > tolerance/2:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
		prev = t
	}
}

// widthless: /Widths olmayan fontlarda (standart 14 font) rsc.io/pdf tüm
// glifleri W=0 ile aynı X'e koyar, boşluk bilgisi kaybolur.
func widthless(texts []pdf.Text) bool {
	if len(texts) == 0 {
		return false
	}
	for _, t := range texts {
		if t.W != 0 {
			return false
		}
	}
	return true
}

// writePageOps: metni doğrudan içerik akışındaki Tj/TJ operatörlerinden
// toplar. Satır geçişleri Td/TD/T* ile, TJ içindeki büyük boşluklar ' ' ile.
func writePageOps(sb *strings.Builder, page pdf.Page) {
	var enc pdf.TextEncoding
	wrote := false
	newline := func() {
		if wrote {
			sb.WriteByte('\n')
			wrote = false
		}
	}
	show := func(v pdf.Value) {
		s := v.RawString()
		if enc != nil {
			s = enc.Decode(s)
		}
		if s != "" {
			sb.WriteString(s)
			wrote = true
		}
	}

	interpret := func(strm pdf.Value) {
		pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
			n := stk.Len()
			args := make([]pdf.Value, n)
			for i := n - 1; i >= 0; i-- {
				args[i] = stk.Pop()
			}
			switch op {
			case "Tf":
				if n == 2 {
					enc = page.Font(args[0].Name()).Encoder()
				}
			case "Td", "TD":
				if n == 2 && args[1].Float64() != 0 {
					newline()
				}
			case "T*":
				newline()
			case "'", "\"":
				newline()
				if n > 0 {
					show(args[n-1])
				}
			case "Tj":
				if n == 1 {
					show(args[0])
				}
			case "TJ":
				if n != 1 {
					return
				}
				arr := args[0]
				for i := 0; i < arr.Len(); i++ {
					x := arr.Index(i)
					if x.Kind() == pdf.String {
						show(x)
					} else if x.Float64() < -200 {
						sb.WriteByte(' ')
					}
				}
			}
		})
	}

	contents := page.V.Key("Contents")
	if contents.Kind() == pdf.Array {
		for i := 0; i < contents.Len(); i++ {
			interpret(contents.Index(i))
		}
		return
	}
	interpret(contents)
}
