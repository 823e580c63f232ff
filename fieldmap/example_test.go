package fieldmap_test

import (
	"context"
	"fmt"
	"log"

	"github.com/bob-anderson-ok/optbeam/beam"
	"github.com/bob-anderson-ok/optbeam/fieldmap"
)

// Example samples a Gaussian beam around its waist and cuts the intensity
// map across the beam axis.
func Example() {
	field, err := beam.NewField2D(beam.Gaussian{W: 0.133}, 75.4)
	if err != nil {
		log.Fatalf("bad field configuration: %v", err)
	}

	grid := fieldmap.Grid{XMin: -0.1, XMax: 0.1, YMin: -0.2, YMax: 0.2, Nx: 3, Ny: 5}
	m, err := fieldmap.Sample(context.Background(), field, grid, 2)
	if err != nil {
		log.Fatalf("sampling failed: %v", err)
	}

	intensity := m.Intensity()
	fmt.Printf("intensity at the waist center: %.4f\n", intensity[2][1])
	fmt.Printf("intensity at y = 0.1: %.3f\n", intensity[3][1])

	// Cut across the beam at the waist, from y = -0.2 to y = 0.2
	cut, err := fieldmap.Cut(intensity, grid, 0, -0.2, 0, 0.2, 5)
	if err != nil {
		log.Fatalf("cut failed: %v", err)
	}
	fmt.Printf("cut: %d points over %.1f\n", len(cut), cut[len(cut)-1].Distance)

	// Output:
	// intensity at the waist center: 1.0000
	// intensity at y = 0.1: 0.323
	// cut: 5 points over 0.4
}
