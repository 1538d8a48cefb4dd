package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/power/internal/board"
	"github.com/mesh-intelligence/power/pkg/types"
)

func modulePort(name string, typ types.InterfaceType) *types.Interface {
	i := &types.Interface{
		Name:         name,
		SwitchPortID: 9,
		Type:         typ,
		Order:        types.OrderSecondary,
		VsysVreg: &types.Vreg{Name: name + "_vsys", Rails: []types.VregRail{
			{GPIO: 15, HoldTime: 500, ActiveHigh: true},
		}},
		RefclkVreg: &types.Vreg{Name: name + "_refclk", Rails: []types.VregRail{
			{GPIO: 16, HoldTime: 0, ActiveHigh: false, DefaultValue: 1},
		}},
		WakeGPIO: 23,
		DetectIn: types.DetectInput{GPIO: 21, ActiveHigh: true},
	}
	i.DetectIn.InitDebounceState(types.DebounceActiveStable, types.DebounceActiveDebounce)
	i.SetHotplug(types.HotplugPlugged)
	return i
}

func TestReportBuiltin(t *testing.T) {
	env := newTestEnv(t, ethBoard()...)
	assert.Equal(t, exitSuccess, env.run("dumpstate", "eth1"))
	assert.Equal(t, "Interface eth1:\n"+
		"\tswitch_portid=<none>\n"+
		"\tinterface ID=<unknown>\n"+
		"\tvreg: eth1_vsys\n"+
		"\t\t(no regulators)\n"+
		"\t\tnr_vregs=0\n"+
		"\t\tpower_enabled=false\n"+
		"\t\tuse_count=0\n"+
		"\tvreg: eth1_refclk\n"+
		"\t\t(no regulators)\n"+
		"\t\tnr_vregs=0\n"+
		"\t\tpower_enabled=false\n"+
		"\t\tuse_count=0\n", env.out.String())
	assert.NotContains(t, env.out.String(), "hotplug")
	assert.NotContains(t, env.out.String(), "order")
}

func TestReportModulePort2(t *testing.T) {
	spring := modulePort("spring2", types.InterfaceTypeModulePort2)
	env := newTestEnv(t, eth("apb1", 0), spring)
	spring.VsysVreg.Get()

	assert.Equal(t, exitSuccess, env.run("d", "spring2"))
	assert.Equal(t, "Interface spring2:\n"+
		"\tswitch_portid=9\n"+
		"\tinterface ID=2\n"+
		"\tvreg: spring2_vsys\n"+
		"\t\tnr_vregs=1\n"+
		"\t\tpower_enabled=true\n"+
		"\t\tuse_count=1\n"+
		"\t\tvregs[0]: gpio 15, hold_time 500, active_high 1, def_val 0\n"+
		"\tvreg: spring2_refclk\n"+
		"\t\tnr_vregs=1\n"+
		"\t\tpower_enabled=false\n"+
		"\t\tuse_count=0\n"+
		"\t\tvregs[0]: gpio 16, hold_time 0, active_high 0, def_val 1\n"+
		"\twake:\n"+
		"\t\tgpio: 23\n"+
		"\tdetect:\n"+
		"\t\tgpio: 21\n"+
		"\t\tpolarity: high\n"+
		"\t\tdb_state: active stable\n"+
		"\t\tlast_state: active debounce\n"+
		"\thotplug state: plugged\n"+
		"\torder: secondary\n", env.out.String())
}

func TestReportModulePortSharesWakeDetect(t *testing.T) {
	spring := modulePort("spring1", types.InterfaceTypeModulePort)
	spring.DetectIn.ActiveHigh = false
	env := newTestEnv(t, spring)

	assert.Equal(t, exitSuccess, env.run("dumpstate", "spring1"))
	out := env.out.String()
	assert.Contains(t, out, "\twake/detect:\n\t\tgpio: 21\n\t\tpolarity: low\n")
	assert.NotContains(t, out, "\twake:\n")
	assert.NotContains(t, out, "\tdetect:\n")
}

func TestReportOutOfRangeEnums(t *testing.T) {
	spring := modulePort("spring1", types.InterfaceTypeModulePort)
	spring.Order = types.InterfaceOrder(17)
	spring.DetectIn.InitDebounceState(types.DebounceState(99), types.DebounceState(-3))
	spring.SetHotplug(types.HotplugState(5))

	var out bytes.Buffer
	reg := board.New("test", []*types.Interface{spring})
	Reporter{Out: &out, Registry: reg, Power: reg}.Report(spring)

	assert.Contains(t, out.String(), "\t\tdb_state: <internal error>\n")
	assert.Contains(t, out.String(), "\t\tlast_state: <internal error>\n")
	assert.Contains(t, out.String(), "\thotplug state: <internal error>\n")
	assert.Contains(t, out.String(), "\torder: <internal error>\n")
}

func TestReportNilVreg(t *testing.T) {
	i := &types.Interface{Name: "bare", SwitchPortID: types.InvalidPort}
	var out bytes.Buffer
	reg := board.New("test", []*types.Interface{i})
	Reporter{Out: &out, Registry: reg, Power: reg}.Report(i)
	assert.Contains(t, out.String(), "\tvreg: <none>\n\tvreg: <none>\n")
}

func TestDumpstate(t *testing.T) {
	t.Run("all reports every interface", func(t *testing.T) {
		env := newTestEnv(t, eth("apb1", 0), modulePort("spring2", types.InterfaceTypeModulePort2))
		assert.Equal(t, exitSuccess, env.run("dumpstate", "all"))
		out := env.out.String()
		require.Contains(t, out, "Interface apb1:\n")
		require.Contains(t, out, "Interface spring2:\n")
		assert.Less(t, bytes.Index(env.out.Bytes(), []byte("Interface apb1:")), bytes.Index(env.out.Bytes(), []byte("Interface spring2:")))
		assert.Empty(t, env.power.calls)
	})

	t.Run("invalid interface", func(t *testing.T) {
		env := newTestEnv(t, ethBoard()...)
		assert.Equal(t, exitUserError, env.run("dumpstate", "spring9"))
		assert.Contains(t, env.out.String(), "Invalid interface: spring9\n")
	})

	t.Run("wrong arity prints usage", func(t *testing.T) {
		env := newTestEnv(t, ethBoard()...)
		assert.Equal(t, exitUserError, env.run("dumpstate"))
		assert.Contains(t, env.out.String(), "power dumpstate <interface>: dump power system state\n")
		assert.Contains(t, env.out.String(), "  eth0\t(switch port 0)\n")
	})
}
