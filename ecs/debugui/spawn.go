package debugui

import "github.com/plus3/holeio/ecs"

// SpawnDebugUI adds the inspector windows to storage as a single ImguiItem
// and makes sure the ImguiInputState singleton exists. systems, when not
// nil, supplies the scheduler timings shown in the performance window.
func SpawnDebugUI(storage *ecs.Storage, systems func() *ecs.SchedulerStats) ecs.EntityId {
	ecs.NewSingleton[ImguiInputState](storage)

	browser := NewEntityBrowserComponent(100)
	inspector := NewComponentInspectorComponent()
	perf := NewPerformanceStatsComponent(120)
	timer := NewFrameTimer()

	return storage.Spawn(ImguiItem{
		Render: func() {
			var stats *ecs.SchedulerStats
			if systems != nil {
				stats = systems()
			}

			browser.Render(storage)
			inspector.Render(storage, browser.GetSelectedEntity())
			perf.Render(storage, stats, timer.GetDeltaTime())
		},
	})
}
