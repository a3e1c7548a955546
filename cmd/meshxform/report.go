package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Faultbox/meshxform/internal/batch"
	"github.com/Faultbox/meshxform/pkg/affine"
	"github.com/Faultbox/meshxform/pkg/mesh"
)

// printReport prints the resolved parameters and the composed matrix.
func printReport(w io.Writer, p affine.Params, r mesh.Rounding, m affine.Matrix) {
	fmt.Fprintf(w, "pivot point     %s\n", p.Pivot)
	fmt.Fprintf(w, "scale           %s\n", p.Scale)
	fmt.Fprintf(w, "translation     %s\n", p.Translation.Offset)
	fmt.Fprintf(w, "angle           %s\n", strconv.FormatFloat(p.Rotation.Angle, 'g', -1, 64))
	fmt.Fprintf(w, "rotation axis   %s\n", p.Rotation.Axis)
	fmt.Fprintf(w, "rounding        %s\n", r)
	fmt.Fprintf(w, "homogeneous matrix\n%s\n", m)
}

func printSummary(w io.Writer, results []batch.Result) {
	var ok int
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "  FAILED %s: %v\n", r.Input, r.Err)
			continue
		}
		ok++
		fmt.Fprintf(w, "  %s -> %s (%d vertices, %d normals)\n", r.Input, r.Output, r.Vertices, r.Normals)
	}
	if len(results) > 0 {
		fmt.Fprintf(w, "%d/%d files written\n", ok, len(results))
	}
}
