package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Converts a flat answer-key CSV export (the GATB-style one-row-per-question
// shape) into the JSON dataset format the server reads from its data
// directory. Column headers are preserved verbatim — the grading engine
// matches on the exact header strings of each export, including casing and
// trailing punctuation. Datasets with nested option objects (work-values,
// behaviour-response, firo-b) are shipped pre-converted and are not produced
// by this tool.
func main() {
	var (
		input   string
		outDir  string
		outName string
	)
	flag.StringVar(&input, "in", "", "Path to the CSV export")
	flag.StringVar(&outDir, "out", "./data", "Output data directory")
	flag.StringVar(&outName, "name", "", "Output file name (default: <input>.json)")
	flag.Parse()

	if input == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(input)
	if err != nil {
		log.Fatalf("open %s: %v", input, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("parse csv: %v", err)
	}
	if len(records) < 2 {
		log.Fatal("csv has no data rows")
	}

	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}

	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}

	if outName == "" {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		outName = base + ".json"
	}
	outPath := filepath.Join(outDir, outName)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("mkdir %s: %v", outDir, err)
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		log.Fatalf("write %s: %v", outPath, err)
	}

	fmt.Printf("Wrote %d questions to %s\n", len(rows), outPath)
}
