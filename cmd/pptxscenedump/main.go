// Command pptxscenedump parses a .pptx file and prints its resolved scene
// graph as indented text, for inspecting what pptxscene.ParsePresentation
// produced without writing a Go program against the library directly.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vantadeck/pptxscene"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var checkInvariants bool

	cmd := &cobra.Command{
		Use:   "pptxscenedump <file.pptx>",
		Short: "Dump the resolved scene graph of a PPTX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			result, err := pptxscene.ParsePresentation(data, pptxscene.ParseOptions{})
			if err != nil {
				return err
			}

			dumpResult(cmd.OutOrStdout(), result)

			if checkInvariants {
				if problems := pptxscene.CheckPresentation(result); len(problems) > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "\ninvariant violations:")
					for _, p := range problems {
						fmt.Fprintln(cmd.OutOrStdout(), "  "+p)
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&checkInvariants, "check", false, "also run CheckPresentation and print any violations")
	return cmd
}

func dumpResult(w interface{ Write([]byte) (int, error) }, result pptxscene.PresentationResult) {
	fmt.Fprintf(w, "slides: %d\n", len(result.Slides))
	fmt.Fprintf(w, "slide size: %dx%d\n", result.SlideSize.CX, result.SlideSize.CY)
	for i, s := range result.Slides {
		fmt.Fprintf(w, "slide %d (%s): %d shape(s)\n", i+1, s.ID, len(s.Shapes))
		for j := range s.Shapes {
			dumpShape(w, &s.Shapes[j], 1)
		}
	}
	if len(result.Diagnostics) > 0 {
		fmt.Fprintf(w, "diagnostics: %d\n", len(result.Diagnostics))
		for _, d := range result.Diagnostics {
			fmt.Fprintf(w, "  [%v] %s: %s\n", d.Kind, d.Identifier, d.Message)
		}
	}
}

func dumpShape(w interface{ Write([]byte) (int, error) }, sh *pptxscene.Shape, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s- %v %q (%.0f,%.0f %.0fx%.0f)\n", indent, sh.Kind, sh.Name, sh.Pos.X, sh.Pos.Y, sh.Width, sh.Height)
	for k := range sh.Children {
		dumpShape(w, &sh.Children[k], depth+1)
	}
}
