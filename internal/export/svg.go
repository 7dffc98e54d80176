package export

import (
	"fmt"
	"strings"

	"github.com/robosim-dev/swervesim/internal/scenario"
)

// TrajectoryToSVG renders the path driven during a run as an SVG polyline.
// Field X maps up the image and field Y maps left, matching the top-down
// view convention.
func TrajectoryToSVG(result *scenario.Result, width, height int, strokeColor string) string {
	if result == nil || len(result.Samples) < 2 {
		return ""
	}

	// Image axes: u across, v down. Field +Y is image left, field +X is
	// image up.
	us := make([]float64, len(result.Samples))
	vs := make([]float64, len(result.Samples))
	for i, sm := range result.Samples {
		us[i] = -sm.Pose.Position.Y
		vs[i] = -sm.Pose.Position.X
	}

	minU, maxU := us[0], us[0]
	minV, maxV := vs[0], vs[0]
	for i := range us {
		if us[i] < minU {
			minU = us[i]
		}
		if us[i] > maxU {
			maxU = us[i]
		}
		if vs[i] < minV {
			minV = vs[i]
		}
		if vs[i] > maxV {
			maxV = vs[i]
		}
	}

	rangeU := maxU - minU
	rangeV := maxV - minV
	if rangeU == 0 {
		rangeU = 1
	}
	if rangeV == 0 {
		rangeV = 1
	}
	minU -= rangeU * 0.1
	maxU += rangeU * 0.1
	minV -= rangeV * 0.1
	maxV += rangeV * 0.1
	rangeU = maxU - minU
	rangeV = maxV - minV

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range us {
		x := (us[i] - minU) / rangeU * float64(width)
		y := (vs[i] - minV) / rangeV * float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
