// Package ui is the terminal dashboard behind `hwsnap watch`.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Dicklesworthstone/hwsnap/internal/model"
	"github.com/Dicklesworthstone/hwsnap/internal/units"
)

// Source produces snapshots; *collector.Collector satisfies it.
type Source interface {
	GetHardwareInfo(ctx context.Context) (model.FullSnapshot, error)
	GetHardwareLive(ctx context.Context) (model.LiveSnapshot, error)
}

// Model shows one full snapshot refreshed by periodic live snapshots.
type Model struct {
	src       Source
	ctx       context.Context
	ctxCancel context.CancelFunc
	interval  time.Duration

	snap     model.FullSnapshot
	haveFull bool
	loading  bool
	err      error
	width    int
	height   int
}

func New(ctx context.Context, src Source, interval time.Duration) *Model {
	ctx, cancel := context.WithCancel(ctx)
	return &Model{
		src:       src,
		ctx:       ctx,
		ctxCancel: cancel,
		interval:  interval,
		snap:      model.EmptyFull(),
		loading:   true,
		width:     120,
		height:    40,
	}
}

// Messages
type (
	tickMsg struct{}
	fullMsg struct {
		snap model.FullSnapshot
		err  error
	}
	liveMsg struct {
		snap model.LiveSnapshot
		err  error
	}
)

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *Model) fetchFull() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.src.GetHardwareInfo(m.ctx)
		return fullMsg{snap: snap, err: err}
	}
}

func (m *Model) fetchLive() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.src.GetHardwareLive(m.ctx)
		return liveMsg{snap: snap, err: err}
	}
}

func (m *Model) Init() tea.Cmd { return tea.Batch(m.fetchFull(), m.tickCmd()) }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctxCancel()
			return m, tea.Quit
		case "r":
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, m.fetchFull()
		}
	case tickMsg:
		return m, tea.Batch(m.fetchLive(), m.tickCmd())
	case fullMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.snap = msg.snap
			m.haveFull = true
		}
	case liveMsg:
		m.err = msg.err
		if msg.err == nil {
			m.applyLive(msg.snap)
		}
	}
	return m, nil
}

// applyLive overwrites the volatile fields and keeps the memory layout from
// the last full snapshot.
func (m *Model) applyLive(l model.LiveSnapshot) {
	layout := m.snap.Memory.Layout
	m.snap.CPUCurrentSpeed = l.CPUCurrentSpeed
	m.snap.CurrentLoad = l.CurrentLoad
	m.snap.CPUTemperature = l.CPUTemperature
	m.snap.Memory = l.Memory
	m.snap.Memory.Layout = layout
	m.snap.Runtime = l.Runtime
}

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	gaugeFill   = "█"
	gaugeEmpty  = "░"
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
)

func (m *Model) View() string {
	s := m.snap
	status := "collecting…"
	if s.Runtime.Current > 0 {
		status = time.Unix(s.Runtime.Current, 0).Format("Mon Jan 2 15:04:05 MST 2006")
	}
	header := titleStyle.Render("Hardware Snapshot") + "  " +
		subtleStyle.Render(s.StaticData.OS.Hostname+"  "+status+"  up "+uptime(s.Runtime.Uptime))
	footer := subtleStyle.Render("r refresh inventory · q quit")
	if m.err != nil {
		footer = errorStyle.Render(m.err.Error()) + "  " + footer
	}
	if !m.haveFull {
		return lipgloss.JoinVertical(lipgloss.Left, header, footer)
	}

	cpu := s.CPU
	cpuCard := card("CPU", strings.Join([]string{
		truncate(cpu.Brand, 40),
		fmt.Sprintf("%d cores / %d threads  L2 %s  L3 %s",
			cpu.PhysicalCores, cpu.Cores, humanize.IBytes(cpu.Cache.L2), humanize.IBytes(cpu.Cache.L3)),
		gaugeBar(s.CurrentLoad.CurrentLoad, 28),
		fmt.Sprintf("%.0f MHz (min %.0f max %.0f)  %s",
			s.CPUCurrentSpeed.Avg, s.CPUCurrentSpeed.Min, s.CPUCurrentSpeed.Max, temperature(s.CPUTemperature)),
	}, "\n"))

	mem := s.Memory
	memCard := card("Memory", strings.Join([]string{
		gaugeBar(units.Percent(mem.Used, mem.Total), 28),
		fmt.Sprintf("%s / %s  active %s", humanize.IBytes(mem.Used), humanize.IBytes(mem.Total), humanize.IBytes(mem.Active)),
		fmt.Sprintf("Swap %s / %s", humanize.IBytes(mem.SwapUsed), humanize.IBytes(mem.SwapTotal)),
		memorySlots(mem.Layout),
	}, "\n"))

	st := s.StaticData
	boot := "legacy"
	if st.OS.UEFI {
		boot = "UEFI"
	}
	sysCard := card("System", strings.Join([]string{
		fmt.Sprintf("%s %s (%s)", st.OS.Distro, st.OS.Release, st.OS.Arch),
		"kernel " + st.OS.Kernel,
		truncate(strings.TrimSpace(st.Baseboard.Manufacturer+" "+st.Baseboard.Model), 36),
		fmt.Sprintf("BIOS %s %s  %s", st.BIOS.Vendor, st.BIOS.Version, boot),
	}, "\n"))

	gpuLines := make([]string, 0, len(s.Graphics.Controllers))
	for _, g := range s.Graphics.Controllers {
		gpuLines = append(gpuLines, fmt.Sprintf("%-7s %s  %s", g.Vendor, truncate(g.Model, 28), humanize.IBytes(g.VRAM)))
	}
	gpuCard := card("Graphics", orNone(gpuLines))

	netLines := make([]string, 0, len(s.Network.Interfaces))
	for _, n := range s.Network.Interfaces {
		netLines = append(netLines, fmt.Sprintf("%-10s %-15s %s", truncate(n.Iface, 10), n.IP4, n.MAC))
	}
	netCard := card("Network", orNone(netLines))

	devCard := card("Devices", fmt.Sprintf("audio %d  usb %d  optical %d",
		len(s.Audio.Devices), len(s.Peripherals.USBDevices), len(s.Optical.Devices)))

	line1 := lipgloss.JoinHorizontal(lipgloss.Top, cpuCard, memCard, sysCard)
	line2 := lipgloss.JoinHorizontal(lipgloss.Top, card("Filesystems", renderTable(s.Storage.Filesystems, 8)), gpuCard)
	line3 := lipgloss.JoinHorizontal(lipgloss.Top, netCard, devCard)

	return lipgloss.JoinVertical(lipgloss.Left, header, line1, line2, line3, footer)
}

// Helpers
func gaugeBar(pct float64, width int) string {
	pct = max(0, min(pct, 100))
	filled := min(int((pct/100)*float64(width)), width)
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

func card(title, body string) string {
	titleStr := labelStyle.Render(title)
	content := titleStr + "\n" + body
	return cardStyle.Render(content)
}

func renderTable(rows []model.FilesystemEntry, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-18s %-6s %9s %6s\n", "mount", "type", "size", "use")
	for _, r := range rows[:min(limit, len(rows))] {
		fmt.Fprintf(&b, "%-18s %-6s %9s %5.1f%%\n",
			truncate(r.Mount, 18), truncate(r.Type, 6), humanize.IBytes(r.Size), r.Use)
	}
	if len(rows) > limit {
		fmt.Fprintf(&b, "+%d more\n", len(rows)-limit)
	}
	return strings.TrimRight(b.String(), "\n")
}

func memorySlots(layout []model.MemorySlot) string {
	if len(layout) == 0 {
		return subtleStyle.Render("no DIMM data")
	}
	parts := make([]string, 0, len(layout))
	for _, d := range layout {
		parts = append(parts, fmt.Sprintf("%s %s@%d", humanize.IBytes(d.Size), d.Type, d.ClockSpeed))
	}
	return truncate(strings.Join(parts, ", "), 60)
}

func temperature(t model.CPUTemperature) string {
	if t.Main == 0 {
		return subtleStyle.Render("no sensor")
	}
	return fmt.Sprintf("%.0f°C (max %.0f°C)", t.Main, t.Max)
}

func uptime(sec uint64) string {
	return (time.Duration(sec) * time.Second).String()
}

func orNone(lines []string) string {
	if len(lines) == 0 {
		return subtleStyle.Render("none detected")
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(ctx context.Context, src Source, interval time.Duration) error {
	m := New(ctx, src, interval)
	defer m.ctxCancel()
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	return err
}
