package util

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"schedule-server/models"
	"schedule-server/models/conflict"
)

// DayCounts is a per-weekday tally, aligned with Days.
type DayCounts struct {
	Days   []string
	Counts map[string][]int
}

// CountPerDay tallies conflicts per day and resource type and lessons per day.
// Days not in days are appended in first-seen order.
func CountPerDay(snap *models.Snapshot, days []string) DayCounts {
	axis := append([]string{}, days...)
	index := make(map[string]int, len(axis))
	for i, d := range axis {
		index[d] = i
	}
	slot := func(day string) int {
		if i, ok := index[day]; ok {
			return i
		}
		index[day] = len(axis)
		axis = append(axis, day)
		return index[day]
	}

	type hit struct {
		series string
		day    int
	}
	var hits []hit
	for _, r := range snap.Conflicts {
		hits = append(hits, hit{series: r.ResourceType.Label(), day: slot(r.Day)})
	}
	for _, e := range snap.Lessons {
		if e.Day != "" {
			hits = append(hits, hit{series: lessonsSeries, day: slot(e.Day)})
		}
	}

	counts := map[string][]int{
		conflict.ResourcePerson.Label(): make([]int, len(axis)),
		conflict.ResourceRoom.Label():   make([]int, len(axis)),
		lessonsSeries:                   make([]int, len(axis)),
	}
	for _, h := range hits {
		counts[h.series][h.day]++
	}
	return DayCounts{Days: axis, Counts: counts}
}

const lessonsSeries = "Lessons"

// RenderScheduleCharts writes an HTML page with conflicts per weekday, stacked
// by resource type, and lessons per weekday.
func RenderScheduleCharts(w io.Writer, snap *models.Snapshot, days []string) error {
	tally := CountPerDay(snap, days)

	conflictsBar := charts.NewBar()
	conflictsBar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Schedule conflicts",
			Width:     "900px",
			Height:    "420px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Conflicts per day",
			Subtitle: "snapshot " + snap.ID,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
	)
	conflictsBar.SetXAxis(tally.Days)
	for _, rt := range []conflict.ResourceType{conflict.ResourcePerson, conflict.ResourceRoom} {
		conflictsBar.AddSeries(rt.Label(), barData(tally.Counts[rt.Label()]),
			charts.WithBarChartOpts(opts.BarChart{Stack: "conflicts"}),
		)
	}

	lessonsBar := charts.NewBar()
	lessonsBar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "900px",
			Height: "420px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Lessons per day"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	lessonsBar.SetXAxis(tally.Days).
		AddSeries(lessonsSeries, barData(tally.Counts[lessonsSeries]),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	page := components.NewPage()
	page.PageTitle = "Schedule conflicts"
	page.AddCharts(conflictsBar, lessonsBar)
	return page.Render(w)
}

func barData(counts []int) []opts.BarData {
	out := make([]opts.BarData, 0, len(counts))
	for _, c := range counts {
		out = append(out, opts.BarData{Value: c})
	}
	return out
}
