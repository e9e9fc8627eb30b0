package fuzztests

import (
	"testing"

	"wss/internal/diag"
	"wss/internal/lexer"
	"wss/internal/source"
	"wss/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.wss", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		end := uint32(len(input))
		for i := 0; ; i++ {
			tok := lx.Next()
			if tok.Span.End > end || tok.Span.Start > tok.Span.End {
				t.Fatalf("token %d has span %v outside input of %d bytes", i, tok.Span, end)
			}
			if tok.Kind == token.EOF {
				break
			}
			if i > len(input)+1 {
				t.Fatalf("lexer produced more tokens than input bytes")
			}
		}
	})
}
