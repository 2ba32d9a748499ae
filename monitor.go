package loom

// Monitor describes one attached display in virtual-screen
// coordinates. WorkRect excludes reserved areas such as docks and
// menu bars.
type Monitor struct {
	Primary  bool
	Rect     Rect
	WorkRect Rect
}

// CollectMonitors gathers displays from a platform enumerator into a
// freshly owned slice. The enumerator calls yield once per display;
// nothing is shared and nothing persists between calls.
func CollectMonitors(enumerate func(yield func(Monitor))) []Monitor {
	var monitors []Monitor
	if enumerate == nil {
		logger.Warn("monitor enumeration unavailable")
		return monitors
	}
	enumerate(func(m Monitor) {
		monitors = append(monitors, m)
	})
	return monitors
}

// DisplaySize returns the bounding size of all monitors together.
func DisplaySize(monitors []Monitor) Size {
	var union Rect
	for i, m := range monitors {
		if i == 0 {
			union = m.Rect
			continue
		}
		union = union.Union(m.Rect)
	}
	return union.RectSize()
}

// PrimaryMonitor returns the primary display, falling back to the
// first one listed.
func PrimaryMonitor(monitors []Monitor) (Monitor, bool) {
	for _, m := range monitors {
		if m.Primary {
			return m, true
		}
	}
	if len(monitors) > 0 {
		return monitors[0], true
	}
	return Monitor{}, false
}
