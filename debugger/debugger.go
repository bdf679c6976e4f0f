// Package debugger implements an interactive step/inspect TUI driving
// the bus one CPU cycle or one full instruction at a time.
//
// Grounded on _examples/bdwalton-gintendo/console/machine.go's BIOS()
// text-menu debugger (breakpoints, single-step, memory/stack dump, PC
// set) reimplemented as a bubbletea Elm-architecture model following
// _examples/hejops-gone/cpu/debugger.go (Init/Update/View, lipgloss
// layout, go-spew struct dumps of the decoded instruction).
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/caseyscarborough/nes/cpu"
	"github.com/caseyscarborough/nes/ppu"
)

// Bus is the read/write/step surface the debugger drives, satisfied
// by *bus.Bus.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
	Cycle()
}

// PPU is the sprite-introspection surface the debugger's sprite pane
// renders, satisfied by *ppu.PPU.
type PPU interface {
	Sprites() [64]ppu.Sprite
}

const pageRows = 8
const pageWidth = 16

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	pcStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	breakStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	paneStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// model is the bubbletea Elm-architecture model: all state needed to
// render a frame lives here, and Update returns a new model rather
// than mutating shared state.
type model struct {
	bus Bus
	cpu *cpu.CPU
	ppu PPU

	breakpoints map[uint16]struct{}
	quitting    bool
}

// Run launches the debugger TUI, blocking until the user quits. p may
// be nil, in which case the sprite pane is omitted. Read-only with
// respect to bus state beyond what stepping does: the TUI itself
// never pokes memory or registers directly.
func Run(b Bus, c *cpu.CPU, p PPU) error {
	_, err := tea.NewProgram(model{
		bus:         b,
		cpu:         c,
		ppu:         p,
		breakpoints: make(map[uint16]struct{}),
	}).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "s", " ":
			m.stepInstruction()
		case "c":
			m.stepCycle()
		case "r":
			m.runToBreakpoint()
		case "b":
			m.toggleBreakpoint(m.pc())
		}
	}
	return m, nil
}

// stepCycle advances the bus exactly one cycle, the finest granularity
// spec.md §4.F's Cycle() exposes.
func (m *model) stepCycle() {
	m.bus.Cycle()
}

// stepInstruction advances the bus until the in-flight instruction has
// fully retired, i.e. until a fetch is about to happen.
func (m *model) stepInstruction() {
	m.bus.Cycle()
	for m.cpu.RemainingCycles() > 0 {
		m.bus.Cycle()
	}
}

// runToBreakpoint steps whole instructions until PC lands on a set
// breakpoint, or until a hard iteration cap guards against a runaway
// program with no breakpoints ever closing the loop.
func (m *model) runToBreakpoint() {
	const guard = 10_000_000
	for i := 0; i < guard; i++ {
		m.stepInstruction()
		if _, hit := m.breakpoints[m.pc()]; hit {
			return
		}
	}
}

func (m *model) toggleBreakpoint(addr uint16) {
	if _, ok := m.breakpoints[addr]; ok {
		delete(m.breakpoints, addr)
	} else {
		m.breakpoints[addr] = struct{}{}
	}
}

// pc reads the CPU's program counter through the memory-dump path:
// the debugger has no register getters beyond PeekOpcode/Cycles, so it
// locates PC by asking the CPU to describe the opcode it is about to
// fetch and where. cpu.CPU keeps PC exported for this purpose.
func (m *model) pc() uint16 {
	return m.cpu.PC
}

func (m model) View() string {
	if m.quitting {
		return "debugger exited\n"
	}

	panes := []string{paneStyle.Render(m.pageTable()), paneStyle.Render(m.registers())}
	if sprites := m.spritePane(); sprites != "" {
		panes = append(panes, paneStyle.Render(sprites))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	help := "[s] step instruction  [c] step cycle  [r] run to breakpoint  [b] toggle breakpoint  [q] quit"

	return lipgloss.JoinVertical(lipgloss.Left, body, "", help) + "\n"
}

// pageTable renders pageRows rows of pageWidth bytes each, centered on
// the page containing PC, with PC's own byte highlighted.
func (m model) pageTable() string {
	pc := m.pc()
	start := (pc &^ uint16(pageWidth-1)) - uint16(pageRows/2)*pageWidth

	var b strings.Builder
	b.WriteString(headerStyle.Render("addr | " + hexColumns()))
	b.WriteString("\n")
	for row := 0; row < pageRows; row++ {
		base := start + uint16(row)*pageWidth
		b.WriteString(fmt.Sprintf("%04x | ", base))
		for col := 0; col < pageWidth; col++ {
			addr := base + uint16(col)
			v := m.bus.Read(addr)
			cell := fmt.Sprintf("%02x ", v)
			if addr == pc {
				cell = pcStyle.Render(fmt.Sprintf("[%02x]", v))
			} else if _, brk := m.breakpoints[addr]; brk {
				cell = breakStyle.Render(fmt.Sprintf("%02x*", v))
			}
			b.WriteString(cell)
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func hexColumns() string {
	var b strings.Builder
	for i := 0; i < pageWidth; i++ {
		fmt.Fprintf(&b, "%2x  ", i)
	}
	return b.String()
}

// registers renders the register/flag file and the currently
// pending-decode instruction, spew-dumped per the teacher's debugger.
func (m model) registers() string {
	name, mode, cycles := cpu.Describe(m.cpu.PeekOpcode())

	var flags strings.Builder
	for _, f := range []struct {
		label string
		mask  uint8
	}{
		{"N", cpu.FlagNegative}, {"V", cpu.FlagOverflow}, {"-", cpu.FlagUnused},
		{"B", cpu.FlagBreak}, {"D", cpu.FlagDecimal}, {"I", cpu.FlagInterruptDisable},
		{"Z", cpu.FlagZero}, {"C", cpu.FlagCarry},
	} {
		if m.cpu.P.IsSet(f.mask) {
			flags.WriteString(strings.ToUpper(f.label) + " ")
		} else {
			flags.WriteString(". ")
		}
	}

	return fmt.Sprintf(
		"PC: %04x  A: %02x  X: %02x  Y: %02x  SP: %02x\n%s\ncycles: %d  remaining: %d\n\nnext: %s\n%s",
		m.cpu.PC, m.cpu.A, m.cpu.X, m.cpu.Y, m.cpu.SP,
		flags.String(),
		m.cpu.Cycles(), m.cpu.RemainingCycles(),
		fmt.Sprintf("%s (%s, %d base cycles)", name, mode, cycles),
		spew.Sdump(struct {
			Opcode uint8
			Name   string
			Mode   string
		}{m.cpu.PeekOpcode(), name, mode.String()}),
	)
}

// spritePane lists the OAM entries that aren't parked offscreen, for
// a quick look at sprite state without a pixel renderer. Returns ""
// (omitting the pane entirely) when no PPU was wired in.
func (m model) spritePane() string {
	if m.ppu == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("sprites"))
	b.WriteString("\n")

	shown := 0
	for i, s := range m.ppu.Sprites() {
		if s.Hidden() {
			continue
		}
		fmt.Fprintf(&b, "%02d: %s\n", i, s)
		shown++
		if shown >= pageRows {
			break
		}
	}
	if shown == 0 {
		b.WriteString("(none visible)\n")
	}
	return b.String()
}
