package output

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// PlotReport renders the bucket heatmap and the timing chart into one HTML page.
func PlotReport(j *JSONOutput, filename string) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	if len(j.Passes) > 0 {
		page.AddCharts(passHeatmap(j.Passes))
	}
	page.AddCharts(timingBar(j))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create plot file %s: %w", filename, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering plot: %w", err)
	}
	return nil
}

// passHeatmap plots bucket (x) against pass (y), colored by element count.
func passHeatmap(passes []PassDistribution) *charts.HeatMap {
	var heatmapData []opts.HeatMapData
	maxCount := 0
	for _, p := range passes {
		for b, count := range p.Counts {
			if count > maxCount {
				maxCount = count
			}
			if count > 0 {
				heatmapData = append(heatmapData, opts.HeatMapData{
					Value: [3]interface{}{b, p.Pass, count},
					Name:  fmt.Sprintf("pass %d, byte 0x%02X", p.Pass, b),
				})
			}
		}
	}

	heatmap := charts.NewHeatMap()
	heatmap.SetGlobalOptions(
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:           "180vh",
			Height:          "40vh",
			Theme:           types.ThemeVintage,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Bucket occupancy per radix pass",
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Trigger: "item",
			Formatter: opts.FuncOpts(`function (params) {
		return params.name + '<br />Count: ' + params.value[2];
	}`),
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show: opts.Bool(true),
			Min:  0,
			Max:  float32(maxCount),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#ffff8f", "#ff0000", "#000000"},
			},
			Orient: "vertical",
			Right:  "5%",
			Top:    "middle",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        "Byte value",
			Type:        "category",
			Data:        makeRange(0, 255),
			SplitNumber: 16,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Pass",
			Type: "category",
			Data: makeRange(0, len(passes)-1),
		}),
	)
	heatmap.AddSeries("Buckets", heatmapData)
	return heatmap
}

// timingBar compares the best time of the baseline and of every run.
func timingBar(j *JSONOutput) *charts.Bar {
	var names []string
	var best []opts.BarData
	if j.Baseline != nil {
		names = append(names, j.Baseline.Name)
		best = append(best, opts.BarData{Value: j.Baseline.BestMS})
	}
	for _, r := range j.Runs {
		names = append(names, "workers="+strconv.Itoa(r.Workers))
		best = append(best, opts.BarData{Value: r.Timing.BestMS})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           "180vh",
			Height:          "40vh",
			Theme:           types.ThemeVintage,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Best sort time (ms)",
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)
	bar.SetXAxis(names).AddSeries("best_ms", best)
	return bar
}

// makeRange creates an integer slice [min..max]
func makeRange(min, max int) []int {
	if max < min {
		return []int{}
	}
	r := make([]int, max-min+1)
	for i := range r {
		r[i] = min + i
	}
	return r
}
