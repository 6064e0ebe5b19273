// covergen renders a default subject cover to a file, for eyeballing the
// renderer without running the server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lessongate/lessongate/internal/cover"
)

func main() {
	name := flag.String("name", "Mathematics", "subject name")
	color := flag.String("color", "#4F46E5", "theme color, #RRGGBB")
	out := flag.String("out", "cover.png", "output file")
	flag.Parse()

	png, err := cover.Render(*name, *color)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render cover: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, png, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", *out, len(png))
}
