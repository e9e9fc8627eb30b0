package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

var languageSeeds = []string{
	"",
	"function main(): Int { return 0; }\n",
	"function id<T>(x: T): T { return x; }\nfunction main() { let a = id<Int>(1); }\n",
	"class Box<T> { value: T; function get(): T { return value; } }\nlet b: Box<Box<Int>>;\n",
	"library function shared<T>(x: T): T { return x; }\nfunction use() { shared<String>(\"s\"); }\n",
	"class Pair<A, B> { first: A; second: B; }\nfunction swap<A, B>(p: Pair<A, B>): Pair<B, A> { return p; }\n",
	"function f() { let x = a < b > (c); }\n",
	"/* block */ // line\nfunction g<T>() { g<T>(); }\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every .wss file under the repository testdata tree.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".wss" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
