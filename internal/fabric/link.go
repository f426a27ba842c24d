package fabric

import (
	"errors"

	"github.com/alonzeltser/fabricsim/internal/packet"
	"github.com/alonzeltser/fabricsim/internal/simclock"
	simerrors "github.com/alonzeltser/fabricsim/pkg/errors"
)

var errTransmitTooEarly = errors.New("transmit called before link direction is available")

// direction distinguishes the two independent serialization timelines of
// a full-duplex Link.
type direction int

const (
	directionAToB direction = iota
	directionBToA
)

// Link is a full-duplex medium connecting exactly two Ports once topology
// construction completes. It serializes bytes at a fixed bandwidth and
// adds a fixed propagation delay per direction.
type Link struct {
	Name            string
	BandwidthBps    float64
	PropagationSec  float64
	Failed_         bool
	endpoints       [2]*Port
	nextEndpoint    int
	nextAvailable   [2]float64
	transmittingSec float64
	bytesSent       int64
	scheduler       *simclock.Scheduler
}

// NewLink constructs an unfailed Link with the given bandwidth and
// propagation delay.
func NewLink(name string, bandwidthBps, propagationSec float64, scheduler *simclock.Scheduler) *Link {
	return &Link{Name: name, BandwidthBps: bandwidthBps, PropagationSec: propagationSec, scheduler: scheduler}
}

// MarkFailed flags the link as failed at creation time, per the
// configured failure percentage. No traffic flows through a failed link.
func (l *Link) MarkFailed() {
	l.Failed_ = true
}

// Failed reports the link's failure flag.
func (l *Link) Failed() bool {
	return l.Failed_
}

// Connect binds the first unbound endpoint to port. A third call panics
// via a TopologyError.
func (l *Link) Connect(p *Port) {
	if l.nextEndpoint >= 2 {
		panic(simerrors.NewTopologyError("link", "link "+l.Name+" already has two endpoints", nil))
	}
	l.endpoints[l.nextEndpoint] = p
	p.AttachLink(l)
	l.nextEndpoint++
}

func (l *Link) directionFor(sender *Port) direction {
	if l.endpoints[0] == sender {
		return directionAToB
	}
	return directionBToA
}

func (l *Link) peerOf(sender *Port) *Port {
	if l.endpoints[0] == sender {
		return l.endpoints[1]
	}
	return l.endpoints[0]
}

// NextAvailableTime returns when this link's given direction is next free
// to serialize a byte.
func (l *Link) NextAvailableTime(d direction) float64 {
	return l.nextAvailable[d]
}

// TransmittingSeconds returns the cumulative time spent serializing bytes
// across both directions, for utilization reporting.
func (l *Link) TransmittingSeconds() float64 {
	return l.transmittingSec
}

// BytesTransmitted returns the cumulative bytes serialized across both
// directions.
func (l *Link) BytesTransmitted() int64 {
	return l.bytesSent
}

// Transmit serializes pkt from sender toward its peer. The caller must
// have already verified now >= NextAvailableTime(direction). It returns
// the direction's next-available-time after this transmission, so the
// caller can schedule its following drain.
func (l *Link) Transmit(pkt *packet.Packet, sender *Port) float64 {
	now := l.scheduler.CurrentTime()
	d := l.directionFor(sender)

	if now < l.nextAvailable[d] {
		panic(simerrors.NewSimulationError("link", errTransmitTooEarly))
	}

	serialization := float64(pkt.L3.Size) * 8 / l.BandwidthBps
	l.nextAvailable[d] = now + serialization
	arrival := l.nextAvailable[d] + l.PropagationSec

	l.transmittingSec += serialization
	l.bytesSent += int64(pkt.L3.Size)

	peer := l.peerOf(sender)
	delay := arrival - now
	l.scheduler.Schedule(delay, func() {
		peer.owner.post(pkt)
	})

	return l.nextAvailable[d]
}
