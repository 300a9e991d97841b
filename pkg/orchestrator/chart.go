package orchestrator

import (
	"fmt"
	"image"
	"image/color"

	"github.com/user/framefix/pkg/pipeline"
	"github.com/user/framefix/pkg/ports"
)

const (
	chartWidth   = 960
	chartHeight  = 320
	chartPadding = 32
)

var (
	chartBackground = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	chartAxis       = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	chartLine       = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	chartThreshold  = color.RGBA{R: 255, G: 170, B: 0, A: 255}
	chartDropped    = color.RGBA{R: 230, G: 70, B: 70, A: 255}
	chartText       = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

// renderScoreChart plots the score of every compared pair by frame index,
// with the threshold as a horizontal line and dropped frames marked below the axis.
func renderScoreChart(renderer ports.Renderer, frames int, result pipeline.FilterResult, threshold float64) image.Image {
	canvas := renderer.CreateCanvas(chartWidth, chartHeight, chartBackground)

	plotW := float64(chartWidth - 2*chartPadding)
	plotH := float64(chartHeight - 2*chartPadding)
	x := func(i int) float64 {
		if frames <= 1 {
			return chartPadding
		}
		return chartPadding + plotW*float64(i)/float64(frames-1)
	}
	y := func(v float64) float64 {
		return chartPadding + plotH*(1-v)
	}

	canvas.DrawLine(chartPadding, y(0), chartPadding+plotW, y(0), chartAxis, 1)
	canvas.DrawLine(chartPadding, y(0), chartPadding, y(1), chartAxis, 1)
	canvas.DrawLine(chartPadding, y(threshold), chartPadding+plotW, y(threshold), chartThreshold, 1)

	var points []image.Point
	for _, s := range result.Scores {
		v := s.Value
		if s.Err != nil {
			v = 0
		}
		points = append(points, image.Point{X: int(x(s.Left)), Y: int(y(v))})
	}
	canvas.DrawPolyline(points, chartLine, 1.5)

	for _, d := range result.Decisions {
		if !d.Keep {
			px := int(x(d.FrameIndex))
			canvas.DrawRect(px-1, int(y(0))+4, 3, 8, chartDropped)
		}
	}

	style := ports.TextStyle{FontSize: 12, Color: chartText, Align: ports.AlignLeft}
	canvas.DrawText("1.0", 4, int(y(1)), style)
	canvas.DrawText("0.0", 4, int(y(0)), style)
	canvas.DrawText(fmt.Sprintf("threshold %.3f, %d frames, %d dropped", threshold, frames, result.Dropped), chartPadding, chartPadding/2, style)

	return canvas.ToImage()
}
