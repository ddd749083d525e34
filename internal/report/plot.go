package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth  = "100%"
	chartHeight = "500px"
	xAxisRotate = 60
	barColor    = "#5470c6"
)

// WriteHTML renders the top-modules ranking as a standalone HTML bar chart.
func WriteHTML(w io.Writer, result Result) error {
	bar := buildModulesBarChart(result)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}

	return nil
}

func buildModulesBarChart(result Result) *charts.Bar {
	bar := charts.NewBar()

	subtitle := fmt.Sprintf("%d imports across %d files under %s",
		result.Summary.RecordCount, result.Summary.FileCount, result.Root)

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Top Imported Modules", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: xAxisRotate, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Import Count"}),
	)

	labels := make([]string, len(result.Summary.TopModules))
	data := make([]opts.BarData, len(result.Summary.TopModules))

	for i, mc := range result.Summary.TopModules {
		labels[i] = mc.Module
		data[i] = opts.BarData{Value: mc.Count}
	}

	bar.SetXAxis(labels)
	bar.AddSeries("Imports", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: barColor}))

	return bar
}
