// Package fabric implements the packet-forwarding plane: ports, links,
// nodes, hosts, switches, and the network that owns them all.
package fabric

import (
	"github.com/alonzeltser/fabricsim/internal/packet"
	"github.com/alonzeltser/fabricsim/internal/simclock"
)

// Port is a per-egress FIFO buffer. At most one drain event is ever
// in flight for a given Port.
type Port struct {
	ID           int
	owner        *Node
	link         *Link
	queue        []*packet.Packet
	peakQueueLen int
	drainPending bool
	scheduler    *simclock.Scheduler
}

// NewPort constructs a Port owned by the given Node.
func NewPort(id int, owner *Node, scheduler *simclock.Scheduler) *Port {
	return &Port{ID: id, owner: owner, scheduler: scheduler}
}

// AttachLink binds this port to the link it drains through.
func (p *Port) AttachLink(l *Link) {
	p.link = l
}

// Link returns the attached link, or nil if unattached.
func (p *Port) Link() *Link {
	return p.link
}

// QueueSize returns the current queue length.
func (p *Port) QueueSize() int {
	return len(p.queue)
}

// PeakQueueLen returns the highest queue length ever observed.
func (p *Port) PeakQueueLen() int {
	return p.peakQueueLen
}

// Enqueue appends pkt to the egress queue. If the attached link is failed
// the packet is dropped immediately. Otherwise a drain attempt is
// scheduled if none is already pending.
func (p *Port) Enqueue(pkt *packet.Packet) {
	if p.link != nil && p.link.Failed() {
		p.owner.dropPacket(pkt, DropReasonLinkFailure)
		return
	}

	p.queue = append(p.queue, pkt)
	if len(p.queue) > p.peakQueueLen {
		p.peakQueueLen = len(p.queue)
	}

	if !p.drainPending {
		p.drainPending = true
		p.scheduler.Schedule(0, p.drain)
	}
}

func (p *Port) drain() {
	p.drainPending = false

	if len(p.queue) == 0 {
		return
	}

	if p.link == nil {
		return
	}

	if p.link.Failed() {
		for _, pkt := range p.queue {
			p.owner.dropPacket(pkt, DropReasonLinkFailure)
		}
		p.queue = nil
		return
	}

	now := p.scheduler.CurrentTime()
	direction := p.link.directionFor(p)
	tReady := p.link.NextAvailableTime(direction)
	if tReady > now {
		p.drainPending = true
		p.scheduler.Schedule(tReady-now, p.drain)
		return
	}

	pkt := p.queue[0]
	p.queue = p.queue[1:]
	nextReady := p.link.Transmit(pkt, p)

	if len(p.queue) > 0 {
		p.drainPending = true
		delay := nextReady - p.scheduler.CurrentTime()
		if delay < 0 {
			delay = 0
		}
		p.scheduler.Schedule(delay, p.drain)
	}
}
