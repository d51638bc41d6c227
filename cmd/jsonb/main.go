// jsonb - JSONB buffer inspection tool
//
// Usage:
//
//	jsonb dump [file]   Print the element structure of a JSONB buffer
//	jsonb check [file]  Verify a buffer is well-formed JSONB
//	jsonb version       Print version info
//
// If no file is given, reads from stdin. The dump shows the nesting
// structure, kinds and sizes; it never renders the buffer as JSON text.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Neumenon/jsonb/jsonb"
)

const libVersion = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "version" {
		fmt.Printf("jsonb %s\n", libVersion)
		return
	}

	var input io.Reader = os.Stdin
	if len(os.Args) > 2 && os.Args[2] != "-" {
		f, err := os.Open(os.Args[2])
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		input = f
	}

	data, err := io.ReadAll(input)
	if err != nil {
		fatal("read input: %v", err)
	}

	switch cmd {
	case "dump":
		if err := dump(os.Stdout, data); err != nil {
			fatal("%v", err)
		}
	case "check":
		if err := jsonb.Check(data); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("ok: %d bytes\n", len(data))
	default:
		printUsage()
		os.Exit(1)
	}
}

// dump decodes the buffer into a dynamic value and prints its shape
// with one line per element.
func dump(w io.Writer, data []byte) error {
	v, err := jsonb.DecodeValue(data)
	if err != nil {
		return err
	}
	dumpValue(w, v, 0)
	return nil
}

func dumpValue(w io.Writer, v *jsonb.Value, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v.Kind() {
	case jsonb.KindArr:
		fmt.Fprintf(w, "%sarr len=%d\n", indent, v.Len())
		elems, _ := v.AsArr()
		for _, elem := range elems {
			dumpValue(w, elem, depth+1)
		}
	case jsonb.KindObj:
		fmt.Fprintf(w, "%sobj len=%d\n", indent, v.Len())
		members, _ := v.AsObj()
		for _, m := range members {
			fmt.Fprintf(w, "%s  %q:\n", indent, m.Key)
			dumpValue(w, m.Value, depth+2)
		}
	case jsonb.KindStr:
		s, _ := v.AsStr()
		fmt.Fprintf(w, "%sstr len=%d\n", indent, len(s))
	default:
		fmt.Fprintf(w, "%s%s\n", indent, v.Kind())
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: jsonb <dump|check|version> [file]")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "jsonb: "+format+"\n", args...)
	os.Exit(1)
}
