package galacticus

import (
	"fmt"
	"strings"
)

// IntervalInfo summarizes one redshift interval of a file.
type IntervalInfo struct {
	RedshiftMinimum float64
	RedshiftMaximum float64
	NumPoints       int
}

// FileInfo summarizes a dataset file for display.
type FileInfo struct {
	Path               string
	Kind               Kind
	Label              string
	Reference          string
	HaloMassDefinition string
	OmegaMatter        float64
	OmegaDarkEnergy    float64
	OmegaBaryon        float64
	HubbleConstant     float64
	Intervals          []IntervalInfo
}

// TotalPoints returns the number of tabulation points across all intervals.
func (i *FileInfo) TotalPoints() int {
	total := 0
	for _, iv := range i.Intervals {
		total += iv.NumPoints
	}
	return total
}

// RedshiftRange returns the full redshift range covered by the file.
func (i *FileInfo) RedshiftRange() (zMin, zMax float64) {
	if len(i.Intervals) == 0 {
		return 0, 0
	}
	zMin, zMax = i.Intervals[0].RedshiftMinimum, i.Intervals[0].RedshiftMaximum
	for _, iv := range i.Intervals[1:] {
		if iv.RedshiftMinimum < zMin {
			zMin = iv.RedshiftMinimum
		}
		if iv.RedshiftMaximum > zMax {
			zMax = iv.RedshiftMaximum
		}
	}
	return zMin, zMax
}

// String renders the summary in a form suitable for terminal output.
func (i *FileInfo) String() string {
	var b strings.Builder
	zMin, zMax := i.RedshiftRange()

	fmt.Fprintf(&b, "File: %s\n", i.Path)
	fmt.Fprintf(&b, "Label: %s\n", i.Label)
	fmt.Fprintf(&b, "Reference: %s\n", i.Reference)
	fmt.Fprintf(&b, "Halo mass definition: %s\n", i.HaloMassDefinition)
	fmt.Fprintf(&b, "Number of redshift intervals: %d\n", len(i.Intervals))
	fmt.Fprintf(&b, "Total data points: %d\n", i.TotalPoints())
	fmt.Fprintf(&b, "Redshift range: %.3f - %.3f\n", zMin, zMax)

	b.WriteString("\nCosmology:\n")
	fmt.Fprintf(&b, "  OmegaMatter     = %.4f\n", i.OmegaMatter)
	fmt.Fprintf(&b, "  OmegaDarkEnergy = %.4f\n", i.OmegaDarkEnergy)
	fmt.Fprintf(&b, "  OmegaBaryon     = %.5f\n", i.OmegaBaryon)
	fmt.Fprintf(&b, "  HubbleConstant  = %.2f km/s/Mpc\n", i.HubbleConstant)

	b.WriteString("\nRedshift intervals:\n")
	for n, iv := range i.Intervals {
		fmt.Fprintf(&b, "  %d: z=%.3f-%.3f, %d points\n",
			n, iv.RedshiftMinimum, iv.RedshiftMaximum, iv.NumPoints)
	}
	return b.String()
}

// Info loads a file summary. Both SHMR and BHMR files are supported.
func Info(path string) (*FileInfo, error) {
	kind, err := DetectKind(path)
	if err != nil {
		return nil, err
	}

	info := &FileInfo{Path: path, Kind: kind}

	switch kind {
	case KindBHMR:
		data, err := LoadBHMR(path)
		if err != nil {
			return nil, err
		}
		info.Label = data.Label
		info.Reference = data.Reference
		info.HaloMassDefinition = data.HaloMassDefinition
		info.OmegaMatter = data.Cosmology.OmegaMatter
		info.OmegaDarkEnergy = data.Cosmology.OmegaDarkEnergy
		info.OmegaBaryon = data.Cosmology.OmegaBaryon
		info.HubbleConstant = data.Cosmology.HubbleConstant
		for _, iv := range data.Intervals {
			info.Intervals = append(info.Intervals, IntervalInfo{
				RedshiftMinimum: iv.RedshiftMinimum,
				RedshiftMaximum: iv.RedshiftMaximum,
				NumPoints:       iv.NumPoints(),
			})
		}
	default:
		data, err := LoadSHMR(path)
		if err != nil {
			return nil, err
		}
		info.Label = data.Label
		info.Reference = data.Reference
		info.HaloMassDefinition = data.HaloMassDefinition
		info.OmegaMatter = data.Cosmology.OmegaMatter
		info.OmegaDarkEnergy = data.Cosmology.OmegaDarkEnergy
		info.OmegaBaryon = data.Cosmology.OmegaBaryon
		info.HubbleConstant = data.Cosmology.HubbleConstant
		for _, iv := range data.Intervals {
			info.Intervals = append(info.Intervals, IntervalInfo{
				RedshiftMinimum: iv.RedshiftMinimum,
				RedshiftMaximum: iv.RedshiftMaximum,
				NumPoints:       iv.NumPoints(),
			})
		}
	}
	return info, nil
}
