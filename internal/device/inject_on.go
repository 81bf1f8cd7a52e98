//go:build injectsensor

package device

import "github.com/faultline-io/faultline/internal/fault"

// sensorOp resolves the sensor's guarded call. This build variant
// forces the sensor check to fail, exercising that branch end to end
// without modifying any call site. Build with:
//
//	go build -tags injectsensor ./...
func (d *Device) sensorOp() fault.Op {
	return fault.Fail
}
