package events

import "github.com/atomicstack/tmux-quicklaunch/internal/logging"

type LaunchTracer struct{}

type WindowTracer struct{}

var (
	Launch = LaunchTracer{}
	Window = WindowTracer{}
)

func (LaunchTracer) Request(path string) {
	logging.Trace("launch.request", map[string]interface{}{"path": path})
}

func (LaunchTracer) Busy(path string) {
	logging.Trace("launch.busy", map[string]interface{}{"path": path})
}

func (LaunchTracer) Success(path string) {
	logging.Trace("launch.success", map[string]interface{}{"path": path})
}

func (LaunchTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("launch.error", map[string]interface{}{"path": path, "error": err.Error()})
}

func (WindowTracer) Resize(count, width, height int, scrollable bool) {
	logging.Trace("window.resize", map[string]interface{}{
		"results":    count,
		"width":      width,
		"height":     height,
		"scrollable": scrollable,
	})
}

func (WindowTracer) ResizeError(err error) {
	if err == nil {
		return
	}
	logging.Trace("window.resize.error", map[string]interface{}{"error": err.Error()})
}

func (WindowTracer) ResizeDropped(gen, applied uint64) {
	logging.Trace("window.resize.dropped", map[string]interface{}{"gen": gen, "applied": applied})
}

func (WindowTracer) HideSuperseded(reason string) {
	logging.Trace("window.hide.superseded", map[string]interface{}{"reason": reason})
}

func (WindowTracer) Hide(reason string) {
	logging.Trace("window.hide", map[string]interface{}{"reason": reason})
}

func (WindowTracer) Focus(focused bool) {
	logging.Trace("window.focus", map[string]interface{}{"focused": focused})
}
