package board

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/power/pkg/types"
)

//go:embed boards/default.yaml
var defaultBoardYAML []byte

// Board description errors.
var (
	ErrNoInterfaces       = errors.New("board has no interfaces")
	ErrDuplicateName      = errors.New("duplicate interface name")
	ErrDuplicatePort      = errors.New("duplicate switch port")
	ErrEmptyName          = errors.New("interface name must not be empty")
	ErrWakeGPIONotAllowed = errors.New("wake_gpio is only valid on module_port2 interfaces")
)

// Description is the YAML form of a board.
type Description struct {
	Name       string                 `yaml:"name"`
	Interfaces []InterfaceDescription `yaml:"interfaces"`
}

// InterfaceDescription is the YAML form of one interface slot. Enum fields
// hold their labels; empty labels take the zero value of the enum.
type InterfaceDescription struct {
	Name       string             `yaml:"name"`
	SwitchPort *int               `yaml:"switch_port,omitempty"`
	Type       string             `yaml:"type"`
	Order      string             `yaml:"order,omitempty"`
	Vsys       *VregDescription   `yaml:"vsys,omitempty"`
	Refclk     *VregDescription   `yaml:"refclk,omitempty"`
	WakeGPIO   *uint32            `yaml:"wake_gpio,omitempty"`
	Detect     *DetectDescription `yaml:"detect,omitempty"`
	Hotplug    string             `yaml:"hotplug,omitempty"`
}

// VregDescription is the YAML form of a regulator.
type VregDescription struct {
	Name  string           `yaml:"name"`
	Rails []types.VregRail `yaml:"rails,omitempty"`
}

// DetectDescription is the YAML form of a detect input.
type DetectDescription struct {
	GPIO       uint32 `yaml:"gpio"`
	ActiveHigh bool   `yaml:"active_high"`
	DBState    string `yaml:"db_state,omitempty"`
	LastState  string `yaml:"last_state,omitempty"`
}

// DefaultDescription returns the embedded simulated board.
func DefaultDescription() (Description, error) {
	return ParseDescription(defaultBoardYAML)
}

// ReadDescription reads a board description file.
func ReadDescription(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, fmt.Errorf("read board file: %w", err)
	}
	return ParseDescription(data)
}

// ParseDescription decodes a board description, rejecting unknown fields.
func ParseDescription(data []byte) (Description, error) {
	var d Description
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return Description{}, fmt.Errorf("decode board: %w", err)
	}
	return d, nil
}

// Build validates the description and creates its interfaces in order.
func (d Description) Build() ([]*types.Interface, error) {
	if len(d.Interfaces) == 0 {
		return nil, ErrNoInterfaces
	}

	names := make(map[string]bool, len(d.Interfaces))
	ports := make(map[int]string, len(d.Interfaces))
	ifaces := make([]*types.Interface, 0, len(d.Interfaces))

	for _, desc := range d.Interfaces {
		if desc.Name == "" {
			return nil, ErrEmptyName
		}
		if names[desc.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, desc.Name)
		}
		names[desc.Name] = true

		if desc.SwitchPort != nil {
			if *desc.SwitchPort < 0 {
				return nil, fmt.Errorf("interface %s: switch port %d must not be negative", desc.Name, *desc.SwitchPort)
			}
			if other, ok := ports[*desc.SwitchPort]; ok {
				return nil, fmt.Errorf("%w: %d (%s, %s)", ErrDuplicatePort, *desc.SwitchPort, other, desc.Name)
			}
			ports[*desc.SwitchPort] = desc.Name
		}

		iface, err := desc.build()
		if err != nil {
			return nil, fmt.Errorf("interface %s: %w", desc.Name, err)
		}
		ifaces = append(ifaces, iface)
	}
	return ifaces, nil
}

func (desc InterfaceDescription) build() (*types.Interface, error) {
	iface := &types.Interface{
		Name:         desc.Name,
		SwitchPortID: types.InvalidPort,
		VsysVreg:     desc.Vsys.build(desc.Name + "_vsys"),
		RefclkVreg:   desc.Refclk.build(desc.Name + "_refclk"),
	}
	if desc.SwitchPort != nil {
		iface.SwitchPortID = types.PortID(*desc.SwitchPort)
	}

	var err error
	if desc.Type != "" {
		if iface.Type, err = types.ParseInterfaceType(desc.Type); err != nil {
			return nil, err
		}
	}
	if desc.Order != "" {
		if iface.Order, err = types.ParseInterfaceOrder(desc.Order); err != nil {
			return nil, err
		}
	}

	if desc.WakeGPIO != nil {
		if iface.Type != types.InterfaceTypeModulePort2 {
			return nil, ErrWakeGPIONotAllowed
		}
		iface.WakeGPIO = *desc.WakeGPIO
	}

	if desc.Detect != nil {
		iface.DetectIn.GPIO = desc.Detect.GPIO
		iface.DetectIn.ActiveHigh = desc.Detect.ActiveHigh
		current, last := types.DebounceInvalid, types.DebounceInvalid
		if desc.Detect.DBState != "" {
			if current, err = types.ParseDebounceState(desc.Detect.DBState); err != nil {
				return nil, err
			}
		}
		if desc.Detect.LastState != "" {
			if last, err = types.ParseDebounceState(desc.Detect.LastState); err != nil {
				return nil, err
			}
		}
		iface.DetectIn.InitDebounceState(current, last)
	}

	if desc.Hotplug != "" {
		hp, err := types.ParseHotplugState(desc.Hotplug)
		if err != nil {
			return nil, err
		}
		iface.SetHotplug(hp)
	}
	return iface, nil
}

// build creates the regulator; a missing description yields a named
// regulator with no rails.
func (v *VregDescription) build(defaultName string) *types.Vreg {
	if v == nil {
		return &types.Vreg{Name: defaultName}
	}
	name := v.Name
	if name == "" {
		name = defaultName
	}
	return &types.Vreg{Name: name, Rails: v.Rails}
}
