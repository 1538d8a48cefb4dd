package command

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/power/internal/board"
	"github.com/mesh-intelligence/power/pkg/types"
)

// call records one PowerController invocation.
type call struct {
	op     string
	iface  string
	length int
}

// fakePower records calls and fails those listed in fail, keyed by
// "op iface".
type fakePower struct {
	calls []call
	fail  map[string]error
}

func (f *fakePower) record(op string, iface *types.Interface, length int) error {
	f.calls = append(f.calls, call{op: op, iface: iface.Name, length: length})
	return f.fail[op+" "+iface.Name]
}

func (f *fakePower) PowerOn(_ context.Context, iface *types.Interface) error {
	return f.record("on", iface, 0)
}

func (f *fakePower) PowerOff(_ context.Context, iface *types.Interface) error {
	return f.record("off", iface, 0)
}

func (f *fakePower) GenerateWakeout(_ context.Context, iface *types.Interface, breakaway bool, lengthUS int) error {
	if breakaway {
		return fmt.Errorf("unexpected breakaway pulse on %s", iface.Name)
	}
	return f.record("wake", iface, lengthUS)
}

func (f *fakePower) HotplugState(iface *types.Interface) types.HotplugState {
	return iface.Hotplug()
}

// testEnv holds an Env wired to a fake power controller over the given
// interfaces.
type testEnv struct {
	*Env
	out   *bytes.Buffer
	power *fakePower
}

func newTestEnv(t *testing.T, ifaces ...*types.Interface) *testEnv {
	t.Helper()
	out := &bytes.Buffer{}
	power := &fakePower{fail: map[string]error{}}
	return &testEnv{
		Env: &Env{
			Out:      out,
			Registry: board.New("test", ifaces),
			Power:    power,
			Wakeout:  NewWakeoutDefault(HardwareDefaultLength),
			Log:      zerolog.Nop(),
		},
		out:   out,
		power: power,
	}
}

func (e *testEnv) run(args ...string) int {
	return Run(context.Background(), e.Env, append([]string{Progname}, args...))
}

func eth(name string, port types.PortID) *types.Interface {
	return &types.Interface{
		Name:         name,
		SwitchPortID: port,
		Type:         types.InterfaceTypeBuiltin,
		VsysVreg:     &types.Vreg{Name: name + "_vsys"},
		RefclkVreg:   &types.Vreg{Name: name + "_refclk"},
	}
}

func ethBoard() []*types.Interface {
	return []*types.Interface{eth("eth0", 0), eth("eth1", types.InvalidPort)}
}
