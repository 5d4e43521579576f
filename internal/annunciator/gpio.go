package annunciator

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/oshokin/engine-supervisor/internal/config"
)

// defaultGPIOBase is the sysfs GPIO root on Linux targets.
const defaultGPIOBase = "/sys/class/gpio"

// GPIO drives the three indicator lines through sysfs pin value files.
// Writes are best-effort per the hook contract: a failed write is dropped,
// never surfaced to the alert manager.
type GPIO struct {
	// base is the sysfs GPIO root, overridable in tests.
	base string
	// infoPin, warningPin, criticalPin are the exported pin numbers.
	infoPin, warningPin, criticalPin int
}

// NewGPIO creates a GPIO annunciator for the configured pins and exports
// them. Export failures are ignored: pins exported by a previous run report
// busy and are still usable.
func NewGPIO(cfg config.AnnunciatorConfig) *GPIO {
	g := &GPIO{
		base:        defaultGPIOBase,
		infoPin:     cfg.InfoPin,
		warningPin:  cfg.WarningPin,
		criticalPin: cfg.CriticalPin,
	}

	g.export()

	return g
}

// Info switches the info line.
func (g *GPIO) Info(on bool) {
	g.write(g.infoPin, on)
}

// Warning switches the warning line.
func (g *GPIO) Warning(on bool) {
	g.write(g.warningPin, on)
}

// Critical switches the critical line.
func (g *GPIO) Critical(on bool) {
	g.write(g.criticalPin, on)
}

// export requests all three pins from the kernel and sets them to output.
func (g *GPIO) export() {
	for _, pin := range []int{g.infoPin, g.warningPin, g.criticalPin} {
		number := []byte(strconv.Itoa(pin))
		_ = os.WriteFile(filepath.Join(g.base, "export"), number, config.DefaultFilePermissions)
		_ = os.WriteFile(g.pinPath(pin, "direction"), []byte("out"), config.DefaultFilePermissions)
	}
}

// write sets the pin value, dropping any failure.
func (g *GPIO) write(pin int, on bool) {
	value := []byte("0")
	if on {
		value = []byte("1")
	}

	_ = os.WriteFile(g.pinPath(pin, "value"), value, config.DefaultFilePermissions)
}

// pinPath returns the sysfs path of a pin attribute.
func (g *GPIO) pinPath(pin int, attribute string) string {
	return filepath.Join(g.base, fmt.Sprintf("gpio%d", pin), attribute)
}
