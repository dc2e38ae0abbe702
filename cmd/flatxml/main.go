// Command flatxml converts XML documents into rectangular tables.
//
//	flatxml [-o output] [-format xlsx|csv|markdown|html] input.xml
//	flatxml -serve [-addr :8080]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/flatxml"
	"github.com/tsawler/flatxml/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("flatxml", flag.ContinueOnError)
	fs.SetOutput(stderr)

	output := fs.String("o", "", "output path (default: input with the format's extension)")
	outFormat := fs.String("format", "xlsx", "output format: xlsx, csv, markdown, or html")
	noAttrs := fs.Bool("no-attrs", false, "omit XML attributes from the output")
	delimiter := fs.String("delimiter", ".", "path segment separator")
	attrPrefix := fs.String("attr-prefix", "@", "marker prepended to attribute column segments")
	maxDepth := fs.Int("max-depth", 0, "maximum element nesting (0 = unlimited)")
	sheetName := fs.String("sheet", "Sheet1", "worksheet name for xlsx output")
	serve := fs.Bool("serve", false, "run the HTTP upload server instead of converting a file")
	addr := fs.String("addr", "", "listen address for -serve (default: FLATXML_ADDR or :8080)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [options] <input.xml>\n", fs.Name())
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Converts an XML document into a flat table.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *serve {
		cfg := server.ConfigFromEnv()
		if *addr != "" {
			cfg.Addr = *addr
		}
		fmt.Fprintf(stdout, "flatxml server listening on %s\n", cfg.Addr)
		if err := server.New(cfg).Run(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	input := fs.Arg(0)

	conv := flatxml.Open(input).
		IncludeAttributes(!*noAttrs).
		PathDelimiter(*delimiter).
		AttributePrefix(*attrPrefix).
		MaxDepth(*maxDepth).
		SheetName(*sheetName)

	out := *output
	if out == "" {
		out = replaceExt(input, formatExt(*outFormat))
	}

	var warnings []flatxml.Warning
	var err error

	switch *outFormat {
	case "xlsx":
		warnings, err = conv.WriteXLSXFile(out)
	case "csv":
		warnings, err = conv.WriteCSVFile(out)
	case "markdown":
		var md string
		md, warnings, err = conv.ToMarkdown()
		if err == nil {
			err = os.WriteFile(out, []byte(md), 0o644)
		}
	case "html":
		var f *os.File
		f, err = os.Create(out)
		if err == nil {
			warnings, err = conv.WriteHTML(f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
	default:
		fmt.Fprintf(stderr, "Error: unknown format %q\n", *outFormat)
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	for _, w := range warnings {
		fmt.Fprintf(stderr, "Warning: %s\n", w)
	}
	fmt.Fprintf(stdout, "Wrote %s\n", out)
	return 0
}

func formatExt(format string) string {
	switch format {
	case "csv":
		return ".csv"
	case "markdown":
		return ".md"
	case "html":
		return ".html"
	default:
		return ".xlsx"
	}
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
