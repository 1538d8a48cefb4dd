package command

import (
	"fmt"
	"io"

	"github.com/mesh-intelligence/power/pkg/types"
)

// Reporter renders the power and hot-plug state of interfaces.
type Reporter struct {
	Out      io.Writer
	Registry types.Registry
	Power    types.PowerController
}

// Report writes the state of iface. Fields other subsystems update
// concurrently are read with atomic loads; reporting never fails.
func (r Reporter) Report(iface *types.Interface) {
	w := r.Out
	fmt.Fprintf(w, "Interface %s:\n", iface.Name)

	if !iface.SwitchPortID.Valid() {
		fmt.Fprintf(w, "\tswitch_portid=<none>\n")
		fmt.Fprintf(w, "\tinterface ID=<unknown>\n")
	} else {
		fmt.Fprintf(w, "\tswitch_portid=%d\n", iface.SwitchPortID)
		fmt.Fprintf(w, "\tinterface ID=%d\n", r.Registry.InterfaceIDByPort(iface.SwitchPortID))
	}

	r.reportVreg(iface.VsysVreg)
	r.reportVreg(iface.RefclkVreg)

	if !iface.IsModulePort() {
		return
	}

	// module_port2 drives WAKEOUT on its own GPIO; module_port shares one
	// line for wake and detect.
	if iface.Type == types.InterfaceTypeModulePort2 {
		fmt.Fprintf(w, "\twake:\n")
		fmt.Fprintf(w, "\t\tgpio: %d\n", iface.WakeGPIO)
		fmt.Fprintf(w, "\tdetect:\n")
	} else {
		fmt.Fprintf(w, "\twake/detect:\n")
	}
	fmt.Fprintf(w, "\t\tgpio: %d\n", iface.DetectIn.GPIO)
	fmt.Fprintf(w, "\t\tpolarity: %s\n", iface.DetectIn.Polarity())
	fmt.Fprintf(w, "\t\tdb_state: %s\n", iface.DetectIn.DebounceState())
	fmt.Fprintf(w, "\t\tlast_state: %s\n", iface.DetectIn.LastState())

	fmt.Fprintf(w, "\thotplug state: %s\n", r.Power.HotplugState(iface))
	fmt.Fprintf(w, "\torder: %s\n", iface.Order)
}

func (r Reporter) reportVreg(v *types.Vreg) {
	w := r.Out
	if v == nil {
		fmt.Fprintf(w, "\tvreg: <none>\n")
		return
	}
	fmt.Fprintf(w, "\tvreg: %s\n", v.Name)
	if v.NumRails() == 0 {
		fmt.Fprintf(w, "\t\t(no regulators)\n")
	}
	fmt.Fprintf(w, "\t\tnr_vregs=%d\n", v.NumRails())
	fmt.Fprintf(w, "\t\tpower_enabled=%t\n", v.PowerEnabled())
	fmt.Fprintf(w, "\t\tuse_count=%d\n", v.UseCount())
	for i, rail := range v.Rails {
		fmt.Fprintf(w, "\t\tvregs[%d]: gpio %d, hold_time %d, active_high %d, def_val %d\n",
			i, rail.GPIO, rail.HoldTime, boolToInt(rail.ActiveHigh), rail.DefaultValue)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
