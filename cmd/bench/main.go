// bench - JSONB size comparison runner
//
// Compares the JSONB binary encoding against minified JSON text:
//   - Bytes on wire per input file
//   - Totals across the corpus
//
// Each argument is a JSON file; it is parsed with encoding/json into
// dynamic Go values and re-encoded as JSONB. Output: CSV on stdout.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Neumenon/jsonb/jsonb"
)

type caseResult struct {
	Name       string
	JSONBytes  int
	JSONBBytes int
	BytesSaved int
	BytesPct   float64
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: bench file.json [file.json ...]")
		os.Exit(1)
	}

	var results []caseResult
	var totalJSON, totalJSONB int

	for _, path := range os.Args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", path, err)
			continue
		}

		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: parse error: %v\n", path, err)
			continue
		}

		// Minify for a fair byte comparison
		jsonMin, err := json.Marshal(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", path, err)
			continue
		}

		blob, err := jsonb.Marshal(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: encode error: %v\n", path, err)
			continue
		}

		saved := len(jsonMin) - len(blob)
		pct := 0.0
		if len(jsonMin) > 0 {
			pct = float64(saved) / float64(len(jsonMin)) * 100.0
		}
		results = append(results, caseResult{
			Name:       filepath.Base(path),
			JSONBytes:  len(jsonMin),
			JSONBBytes: len(blob),
			BytesSaved: saved,
			BytesPct:   pct,
		})
		totalJSON += len(jsonMin)
		totalJSONB += len(blob)
	}

	fmt.Println("name,json_bytes,jsonb_bytes,bytes_saved,bytes_pct")
	for _, r := range results {
		fmt.Printf("%s,%d,%d,%d,%.1f\n", r.Name, r.JSONBytes, r.JSONBBytes, r.BytesSaved, r.BytesPct)
	}
	if totalJSON > 0 {
		fmt.Printf("TOTAL,%d,%d,%d,%.1f\n", totalJSON, totalJSONB, totalJSON-totalJSONB,
			float64(totalJSON-totalJSONB)/float64(totalJSON)*100.0)
	}
}
