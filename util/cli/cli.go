package cli

import (
	"fmt"
	"io"
)

func Printlnf(pat string, args ...any) {
	fmt.Printf(pat+"\n", args...)
}

func Fprintlnf(w io.Writer, pat string, args ...any) {
	fmt.Fprintf(w, pat+"\n", args...)
}

func DebugFprintlnf(w io.Writer, debug bool, pat string, args ...any) {
	if debug {
		fmt.Fprintf(w, "[DEBUG] "+pat+"\n", args...)
	}
}

func ErrorFprintlnf(w io.Writer, pat string, args ...any) {
	fmt.Fprintf(w, "[ERROR] "+pat+"\n", args...)
}
