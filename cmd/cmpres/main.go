// Command cmpres decodes a compressed game resource file.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/woozymasta/cmpres"
)

func main() {
	var (
		output  = flag.String("o", "", "Output file (default: input name with .dec extension)")
		passes  = flag.Int("passes", 0, "Stop after this many passes (0 = all)")
		info    = flag.Bool("info", false, "Print the container header and exit")
		sum     = flag.Bool("sum", false, "Print xxhash64 of the decoded output")
		verbose = flag.Bool("v", false, "Log per-pass diagnostics")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cmpres [flags] <input>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputFile := flag.Arg(0)

	src, err := os.ReadFile(inputFile)
	if err != nil {
		log.Fatalf("Error: could not read input file %s: %v", inputFile, err)
	}

	if *info {
		printHeader(inputFile, src)
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	opts := &cmpres.Options{
		MaxPasses: *passes,
		Logger:    slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}

	out, warnings, err := cmpres.Decompress(src, opts)
	if err != nil {
		log.Fatalf("Decompression failed: %v", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	outputFile := *output
	if outputFile == "" {
		outputFile = strings.TrimSuffix(inputFile, filepath.Ext(inputFile)) + ".dec"
	}
	if err := os.WriteFile(outputFile, out, 0o644); err != nil {
		log.Fatalf("Error: could not write output file %s: %v", outputFile, err)
	}

	fmt.Printf("Decompressed %s (%d bytes) -> %s (%d bytes)\n",
		filepath.Base(inputFile), len(src), outputFile, len(out))
	if *sum {
		fmt.Printf("xxhash64: %016x\n", xxhash.Sum64(out))
	}
}

func printHeader(name string, src []byte) {
	h, err := cmpres.ReadHeader(src)
	if err != nil {
		log.Fatalf("Invalid header: %v", err)
	}

	fmt.Printf("%s: %d bytes\n", filepath.Base(name), len(src))
	fmt.Printf("  passes:       %d (multi-pass: %v)\n", h.Passes, h.MultiPass)
	if h.MultiPass {
		fmt.Printf("  length hint:  %d\n", h.FinalLengthHint)
	}
	fmt.Printf("  first pass:   %s, %d bytes\n", h.FirstType, h.FirstLength)

	if field, ok := cmpres.SizeField(src); ok {
		if typ, size, ok := cmpres.DetectCompression(field, len(src)); ok {
			fmt.Printf("  archive size field: type %s, %d bytes\n", typ, size)
		}
	}
}
