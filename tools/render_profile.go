package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-formatter/internal/model"
	"resume-formatter/internal/render"
)

// Renders a ResumeData JSON file to the intermediate HTML so layout and style
// changes can be checked in a browser without a Chrome print.
//
//	go run ./tools resume.json [-o out.html] [-styles styles.yaml]
func main() {
	out := flag.String("o", "", "output html path (default <input>.html)")
	styles := flag.String("styles", "", "style table to use instead of the embedded one")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: render_profile [-o out.html] [-styles styles.yaml] resume.json")
		os.Exit(2)
	}
	in := flag.Arg(0)
	if *out == "" {
		*out = strings.TrimSuffix(in, filepath.Ext(in)) + ".html"
	}

	raw, err := os.ReadFile(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read resume: %v\n", err)
		os.Exit(2)
	}
	resume, err := model.DecodeResume(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid resume: %v\n", err)
		os.Exit(2)
	}

	var opts []render.Option
	if *styles != "" {
		b, err := os.ReadFile(*styles)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read styles: %v\n", err)
			os.Exit(2)
		}
		sheet, err := render.ParseStyleSheet(b)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse styles: %v\n", err)
			os.Exit(2)
		}
		opts = append(opts, render.WithStyleSheet(sheet))
	}

	html, err := render.New(nil, opts...).HTML(resume)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(2)
	}
	if err := os.WriteFile(*out, []byte(html), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write html: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s\n", *out)
}
