package bridge

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	genesisbridge "github.com/auraframes/genesis-bridge"
)

// guestInstance is one instantiation of the compiled guest. Instances are
// not safe for concurrent calls; the pool hands each out to one caller at
// a time.
type guestInstance struct {
	module api.Module
	fn     api.Function
	memory genesisbridge.Memory
}

func (g *guestInstance) close(ctx context.Context) {
	_ = g.module.Close(ctx)
}

// instancePool keeps idle guest instances for reuse. get returns an idle
// instance or creates a fresh one; put parks it again or discards it when
// the pool is full. Guest memory only grows, so recycling instances keeps
// it bounded.
type instancePool struct {
	idle        chan *guestInstance
	instantiate func(context.Context) (*guestInstance, error)
}

func newInstancePool(size int, instantiate func(context.Context) (*guestInstance, error)) *instancePool {
	return &instancePool{
		idle:        make(chan *guestInstance, size),
		instantiate: instantiate,
	}
}

func (p *instancePool) get(ctx context.Context) (*guestInstance, error) {
	select {
	case inst := <-p.idle:
		return inst, nil
	default:
		return p.instantiate(ctx)
	}
}

func (p *instancePool) put(ctx context.Context, inst *guestInstance) {
	select {
	case p.idle <- inst:
	default:
		inst.close(ctx)
	}
}

func (p *instancePool) close(ctx context.Context) {
	for {
		select {
		case inst := <-p.idle:
			inst.close(ctx)
		default:
			return
		}
	}
}
