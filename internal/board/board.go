// Package board simulates the interface registry and the power / hot-plug
// subsystem of a modular interconnect board. The board layout comes from a
// YAML description; an embedded default is used when none is configured.
package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/power/pkg/types"
)

// DefaultWakeoutLength is the hardware default WAKEOUT pulse in microseconds,
// used when a negative length is requested.
const DefaultWakeoutLength = 30000

// Power subsystem errors.
var (
	ErrNoRegulator   = errors.New("interface has no system voltage regulator")
	ErrNotModulePort = errors.New("interface is not a module port")
	ErrNotPowered    = errors.New("interface is not powered")
)

// SleepFunc holds a WAKEOUT pulse for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Board is a simulated board. It implements types.Registry and
// types.PowerController.
type Board struct {
	name   string
	ifaces []*types.Interface
	byName map[string]*types.Interface
	sleep  SleepFunc
	log    zerolog.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithSleep replaces the function that holds WAKEOUT pulses.
func WithSleep(fn SleepFunc) Option {
	return func(b *Board) { b.sleep = fn }
}

// WithLogger sets the logger power and wake events are reported to.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Board) { b.log = log }
}

// New creates a board from interfaces in enumeration order.
func New(name string, ifaces []*types.Interface, opts ...Option) *Board {
	b := &Board{
		name:   name,
		ifaces: ifaces,
		byName: make(map[string]*types.Interface, len(ifaces)),
		sleep:  sleepContext,
		log:    zerolog.Nop(),
	}
	for _, iface := range ifaces {
		b.byName[iface.Name] = iface
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromDescription validates d and creates its board.
func FromDescription(d Description, opts ...Option) (*Board, error) {
	ifaces, err := d.Build()
	if err != nil {
		return nil, fmt.Errorf("build board %q: %w", d.Name, err)
	}
	return New(d.Name, ifaces, opts...), nil
}

// Load reads the board description at path, or the embedded default board
// when path is empty.
func Load(path string, opts ...Option) (*Board, error) {
	var (
		d   Description
		err error
	)
	if path == "" {
		d, err = DefaultDescription()
	} else {
		d, err = ReadDescription(path)
	}
	if err != nil {
		return nil, err
	}
	return FromDescription(d, opts...)
}

// Name returns the board name.
func (b *Board) Name() string { return b.name }

// Interfaces returns the interfaces in enumeration order.
func (b *Board) Interfaces() []*types.Interface { return b.ifaces }

// Lookup returns the interface with exactly the given name.
func (b *Board) Lookup(name string) (*types.Interface, bool) {
	iface, ok := b.byName[name]
	return iface, ok
}

// InterfaceIDByPort returns the 1-based position of the interface bound to
// port, or 0 when none is.
func (b *Board) InterfaceIDByPort(port types.PortID) uint32 {
	if !port.Valid() {
		return 0
	}
	for i, iface := range b.ifaces {
		if iface.SwitchPortID == port {
			return uint32(i + 1)
		}
	}
	return 0
}

// PowerOn takes a reference on the interface's system and reference clock
// regulators.
func (b *Board) PowerOn(_ context.Context, iface *types.Interface) error {
	if iface.VsysVreg == nil || iface.VsysVreg.NumRails() == 0 {
		return fmt.Errorf("power on %s: %w", iface.Name, ErrNoRegulator)
	}
	vsys := iface.VsysVreg.Get()
	var refclk uint32
	if iface.RefclkVreg != nil {
		refclk = iface.RefclkVreg.Get()
	}
	b.log.Info().Str("iface", iface.Name).Uint32("vsys_use_count", vsys).Uint32("refclk_use_count", refclk).Msg("interface powered on")
	return nil
}

// PowerOff drops the references PowerOn took.
func (b *Board) PowerOff(_ context.Context, iface *types.Interface) error {
	if iface.VsysVreg == nil || iface.VsysVreg.NumRails() == 0 {
		return fmt.Errorf("power off %s: %w", iface.Name, ErrNoRegulator)
	}
	vsys, err := iface.VsysVreg.Put()
	if err != nil {
		return fmt.Errorf("power off %s: %w", iface.Name, err)
	}
	var refclk uint32
	if iface.RefclkVreg != nil && iface.RefclkVreg.UseCount() > 0 {
		if refclk, err = iface.RefclkVreg.Put(); err != nil {
			return fmt.Errorf("power off %s: %w", iface.Name, err)
		}
	}
	b.log.Info().Str("iface", iface.Name).Uint32("vsys_use_count", vsys).Uint32("refclk_use_count", refclk).Msg("interface powered off")
	return nil
}

// GenerateWakeout pulses WAKEOUT on a powered module port. module_port2
// interfaces pulse their dedicated wake GPIO; module_port interfaces pulse
// the shared wake/detect line. A breakaway pulse drives the line to the
// inactive level instead of the active one.
func (b *Board) GenerateWakeout(ctx context.Context, iface *types.Interface, breakaway bool, lengthUS int) error {
	if !iface.IsModulePort() {
		return fmt.Errorf("wakeout %s: %w", iface.Name, ErrNotModulePort)
	}
	if iface.VsysVreg == nil || !iface.VsysVreg.PowerEnabled() {
		return fmt.Errorf("wakeout %s: %w", iface.Name, ErrNotPowered)
	}
	if lengthUS < 0 {
		lengthUS = DefaultWakeoutLength
	}

	gpio := iface.DetectIn.GPIO
	if iface.Type == types.InterfaceTypeModulePort2 {
		gpio = iface.WakeGPIO
	}
	level := iface.DetectIn.ActiveHigh
	if breakaway {
		level = !level
	}

	b.log.Debug().Str("iface", iface.Name).Uint32("gpio", gpio).Bool("level", level).Int("length_us", lengthUS).Msg("wakeout pulse start")
	if err := b.sleep(ctx, time.Duration(lengthUS)*time.Microsecond); err != nil {
		return fmt.Errorf("wakeout %s: %w", iface.Name, err)
	}
	b.log.Info().Str("iface", iface.Name).Int("length_us", lengthUS).Msg("wakeout pulse sent")
	return nil
}

// HotplugState returns the interface's settled hot-plug state.
func (b *Board) HotplugState(iface *types.Interface) types.HotplugState {
	return iface.Hotplug()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
