//go:build !injectsensor

package device

import "github.com/faultline-io/faultline/internal/fault"

// sensorOp resolves the sensor's guarded call. Production builds use
// the real driver.
func (d *Device) sensorOp() fault.Op {
	return d.sensorInit
}
