package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gallery/ecs"
)

// RenderSchedulerStats draws a table of per-system timings and event counters.
func RenderSchedulerStats(scheduler *ecs.Scheduler) {
	if !imgui.BeginV("Scheduler", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := scheduler.GetStats()
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Events handled: %d  dropped: %d", stats.EventsHandled, stats.EventsDropped))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Stage")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, sys := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(sys.Stage.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.MaxDuration.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}
