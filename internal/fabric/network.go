package fabric

import (
	"github.com/alonzeltser/fabricsim/internal/packet"
	"github.com/alonzeltser/fabricsim/internal/simclock"
)

// Network owns the scheduler, every Node, and every Link for one
// simulation run. Topology construction populates it; the scenario layer
// then drives the scheduler to completion.
type Network struct {
	Scheduler *simclock.Scheduler

	hosts    map[string]*Host
	switches map[string]*Switch
	links    []*Link
}

// NewNetwork constructs an empty Network around its own Scheduler.
func NewNetwork() *Network {
	return &Network{
		Scheduler: simclock.New(),
		hosts:     make(map[string]*Host),
		switches:  make(map[string]*Switch),
	}
}

// AddHost registers a constructed Host under its id.
func (net *Network) AddHost(h *Host) {
	net.hosts[h.ID] = h
}

// AddSwitch registers a constructed Switch under its id.
func (net *Network) AddSwitch(s *Switch) {
	net.switches[s.ID] = s
}

// AddLink registers a constructed Link for accounting at run end.
func (net *Network) AddLink(l *Link) {
	net.links = append(net.links, l)
}

// Host looks up a host by id.
func (net *Network) Host(id string) (*Host, bool) {
	h, ok := net.hosts[id]
	return h, ok
}

// Hosts returns every host, keyed by id.
func (net *Network) Hosts() map[string]*Host {
	return net.hosts
}

// Switches returns every switch, keyed by id.
func (net *Network) Switches() map[string]*Switch {
	return net.switches
}

// Links returns every link constructed for this network.
func (net *Network) Links() []*Link {
	return net.links
}

// HostByIP resolves a host by its configured IPv4 address; used by the
// scenario layer to turn destination addresses back into hosts for mice
// cross-rack sampling and for flow injection.
func (net *Network) HostByIP(addr packet.Addr) (*Host, bool) {
	for _, h := range net.hosts {
		if h.IP == addr {
			return h, true
		}
	}
	return nil, false
}

// Run drives the scheduler until the event timeline is empty.
func (net *Network) Run() {
	net.Scheduler.Run()
}
