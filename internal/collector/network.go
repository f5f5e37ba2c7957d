package collector

import (
	"context"
	"net/netip"

	"github.com/Dicklesworthstone/hwsnap/internal/model"
)

func (c *Collector) network(ctx context.Context) []model.NetworkInterface {
	out := []model.NetworkInterface{}
	list, err := c.interfaces(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("network interfaces")
		return out
	}
	for _, in := range list {
		n := model.NetworkInterface{Iface: in.Name, MAC: in.HardwareAddr}
		for _, a := range in.Addrs {
			ip, ok := parseAddr(a.Addr)
			if !ok {
				continue
			}
			switch {
			case ip.Is4() || ip.Is4In6():
				if n.IP4 == "" {
					n.IP4 = ip.Unmap().String()
				}
			case n.IP6 == "":
				n.IP6 = ip.String()
			}
		}
		out = append(out, n)
	}
	return out
}

// parseAddr accepts both "10.0.0.2/24" and bare addresses.
func parseAddr(s string) (netip.Addr, bool) {
	if p, err := netip.ParsePrefix(s); err == nil {
		return p.Addr(), true
	}
	a, err := netip.ParseAddr(s)
	return a, err == nil
}
