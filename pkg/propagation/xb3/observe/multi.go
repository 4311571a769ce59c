package observe

import (
	"context"

	"github.com/omeyang/xprop/pkg/propagation/xb3"
)

type multi []xb3.Observer

// Multi 按顺序调用多个观测者，nil 被跳过。
func Multi(observers ...xb3.Observer) xb3.Observer {
	out := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

func (m multi) Observe(ctx context.Context, e xb3.Event) {
	for _, o := range m {
		o.Observe(ctx, e)
	}
}
