package events

import "github.com/atomicstack/tmux-quicklaunch/internal/logging"

type UITracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Command = CommandTracer{}
)

func (UITracer) KeyRoute(route, key string) {
	logging.Trace("key.route", map[string]interface{}{"route": route, "key": key})
}

func (UITracer) Selection(index, total int) {
	logging.Trace("selection.move", map[string]interface{}{"index": index, "total": total})
}

func (UITracer) RowActivate(index int) {
	logging.Trace("row.activate", map[string]interface{}{"index": index})
}

func (UITracer) Dismiss(reason string) {
	logging.Trace("ui.dismiss", map[string]interface{}{"reason": reason})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
