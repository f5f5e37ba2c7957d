package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dicklesworthstone/hwsnap/internal/model"
)

// GetHardwareInfo returns a full snapshot. The only error is an unexpected
// internal failure; missing tools, files or permissions are never errors.
func (c *Collector) GetHardwareInfo(ctx context.Context) (snap model.FullSnapshot, err error) {
	defer c.recoverInto("full snapshot", &err)
	return c.CollectFull(ctx), nil
}

// GetHardwareLive returns a live snapshot under the same error contract as
// GetHardwareInfo.
func (c *Collector) GetHardwareLive(ctx context.Context) (snap model.LiveSnapshot, err error) {
	defer c.recoverInto("live snapshot", &err)
	return c.CollectLive(ctx), nil
}

func (c *Collector) recoverInto(op string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	ev := c.log.Error()
	var tp *taskPanic
	if e, ok := r.(error); ok && errors.As(e, &tp) {
		ev = ev.Str("task", tp.task).Bytes("stack", tp.stack)
	}
	ev.Interface("panic", r).Msg(op + " failed")
	*err = fmt.Errorf("%s: %v", op, r)
}
