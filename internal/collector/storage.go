package collector

import (
	"context"
	"path/filepath"

	"github.com/Dicklesworthstone/hwsnap/internal/model"
	"github.com/Dicklesworthstone/hwsnap/internal/units"
)

type diskKind struct {
	drive      string
	controller string
}

// storage lists mounted filesystems and one diskLayout entry per distinct
// device, in first-seen order.
func (c *Collector) storage(ctx context.Context) model.StorageInfo {
	out := model.StorageInfo{
		DiskLayout:  []model.DiskLayoutEntry{},
		Filesystems: []model.FilesystemEntry{},
	}
	parts, err := c.partitions(ctx, false)
	if err != nil {
		c.log.Debug().Err(err).Msg("partitions")
	}
	kinds := c.diskKinds()
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		var total, free uint64
		if u, err := c.usage(ctx, p.Mountpoint); err != nil {
			c.log.Debug().Err(err).Str("mount", p.Mountpoint).Msg("disk usage")
		} else if u != nil {
			total, free = u.Total, u.Free
		}
		used := units.SaturatingSub(total, free)
		out.Filesystems = append(out.Filesystems, model.FilesystemEntry{
			Mount: p.Mountpoint,
			Type:  p.Fstype,
			Used:  used,
			Size:  total,
			Use:   units.Percent(used, total),
		})

		if seen[p.Device] {
			continue
		}
		seen[p.Device] = true
		entry := model.DiskLayoutEntry{Name: p.Device, Type: "Unknown", Size: total}
		if k, ok := kinds[filepath.Base(p.Device)]; ok {
			entry.Type = k.drive
			entry.InterfaceType = k.controller
		}
		out.DiskLayout = append(out.DiskLayout, entry)
	}
	return out
}

// diskKinds maps block device and partition names to the drive type and
// controller of the disk that holds them.
func (c *Collector) diskKinds() map[string]diskKind {
	kinds := map[string]diskKind{}
	info, err := c.blockInfo()
	if err != nil || info == nil {
		c.log.Debug().Err(err).Msg("block devices")
		return kinds
	}
	for _, d := range info.Disks {
		if d == nil {
			continue
		}
		k := diskKind{drive: d.DriveType.String(), controller: d.StorageController.String()}
		if k.controller == "Unknown" {
			k.controller = ""
		}
		kinds[d.Name] = k
		for _, p := range d.Partitions {
			if p != nil {
				kinds[p.Name] = k
			}
		}
	}
	return kinds
}
