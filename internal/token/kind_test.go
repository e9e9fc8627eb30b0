package token

import "testing"

func TestKeywordLookup(t *testing.T) {
	for word, want := range keywords {
		got, ok := LookupKeyword(word)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v", word, got, ok)
		}
		if !(Token{Kind: got}).IsKeyword() {
			t.Fatalf("%v not reported as keyword", got)
		}
	}
	if _, ok := LookupKeyword("Function"); ok {
		t.Fatalf("keywords must be case-sensitive")
	}
}

func TestKindStringsAreDefined(t *testing.T) {
	for k := Invalid; k <= RBrace; k++ {
		if k.String() == "unknown" {
			t.Fatalf("kind %d has no name", k)
		}
	}
}
