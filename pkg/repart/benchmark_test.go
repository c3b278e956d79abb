package repart_test

import (
	"testing"

	"github.com/modularizer/repart-go/pkg/repart"
)

func BenchmarkBuildIndex(b *testing.B) {
	source := `(?<ts>\d{4}-\d{2}-\d{2}) \[(?<level>\w+)\] (?<msg>.+?)(?: \((?<code>\d+)\))?$`
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := repart.BuildIndex(source); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMatch(b *testing.B) {
	p := repart.MustCompile(`name: (?<name>\w+), age: (?<age>\d+)`)
	input := "name: John, age: 25"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := p.Match(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExtract(b *testing.B) {
	p := repart.MustCompile(`name: (?<name>\w+), age: (?<age>\d+)`)
	input := "name: John, age: 25"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := p.Extract(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExtract_Global(b *testing.B) {
	p := repart.MustCompile(`(?<word>\w+)`, repart.WithFlags(repart.Global))
	input := "the quick brown fox jumps over the lazy dog"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := p.Extract(input); err != nil {
			b.Fatal(err)
		}
	}
}
