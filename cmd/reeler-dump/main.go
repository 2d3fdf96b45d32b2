// Command reeler-dump loads a container built by the riff package and
// prints the resolved cast and script text to stdout. It is a thin demo
// around the core, not a faithful reimplementation of any real packaged
// movie inspector.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/systemshift/reeler"
	"github.com/systemshift/reeler/internal/riff"
)

func main() {
	path := flag.String("file", "", "path to a reeler container file")
	version := flag.Int("version", 1200, "raw director version, for cast member layout branching")
	dotSyntax := flag.Bool("dot-syntax", false, "dot-syntax flag passed to ScriptText (the built-in renderer does not use it)")
	bytecode := flag.Bool("bytecode", false, "dump disassembly instead of translated source")
	highlight := flag.Bool("highlight", true, "syntax-highlight script output")
	flag.Parse()

	if *path == "" {
		log.Fatal("-file is required")
	}

	buf, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("reading %s: %v", *path, err)
	}

	container, err := riff.Parse(buf)
	if err != nil {
		log.Fatalf("parsing container: %v", err)
	}

	dir := reeler.New(container, reeler.Options{
		Version:   uint16(*version),
		DotSyntax: *dotSyntax,
	})
	if err := dir.Load(); err != nil {
		log.Fatalf("loading directory: %v", err)
	}

	casts, err := dir.LoadCasts()
	if err != nil {
		log.Fatalf("loading casts: %v", err)
	}

	for _, c := range casts {
		fmt.Printf("cast %q (id=%d, %d members)\n", c.Name, c.Id, len(c.Members))
		for _, member := range c.ScriptMembers {
			if member.Script == nil {
				continue
			}
			var text string
			if *bytecode {
				text = member.Script.BytecodeText()
			} else {
				text = member.Script.ScriptText(*dotSyntax)
			}
			fmt.Println(highlightText(text, *highlight))
		}
	}
}

// highlightText renders text through chroma's quick.Highlight when
// requested, falling back to the plain text on any highlighter error.
func highlightText(text string, highlight bool) string {
	if !highlight {
		return text
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, text, "lua", "terminal256", "monokai"); err != nil {
		return text
	}
	return buf.String()
}
