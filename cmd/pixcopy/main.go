// Command pixcopy loads an image file and saves a copy of it.
//
// Usage:
//
//	pixcopy [-debug] [-o out.jpg] <input>
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/imagefile"
)

func main() {
	var (
		output = flag.String("o", "image_copy.jpg", "output file")
		debug  = flag.Bool("debug", false, "log codec activity to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-debug] [-o out] <input>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if *debug {
		pixbuf.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	os.Exit(run(flag.Arg(0), *output))
}

// run copies input to output and returns the exit code.
// A failed save is logged but does not change the exit code.
func run(input, output string) int {
	var img pixbuf.ByteBuffer
	if !imagefile.Load(input, &img) {
		fmt.Fprintln(os.Stderr, "Fail to open file.")
		return 1
	}

	if !imagefile.Save(output, &img) {
		pixbuf.Logger().Warn("pixcopy: copy not saved", "output", output)
	}
	return 0
}
