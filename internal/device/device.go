// Package device provides the reference drivers for the faultline
// demos: a three-subsystem board (power, sensor, radio) with scriptable
// failures, brought up either fail-fast or with rollback.
//
// The sensor's guarded call is resolved through a build-selected Op
// (see inject.go / inject_on.go): building with the injectsensor tag
// produces a variant where the sensor check is forced to fail without
// touching any call site.
package device

import "github.com/faultline-io/faultline/internal/fault"

// Error codes of the reference bring-up. The application owns this
// codespace; 0 stays reserved for success.
const (
	CodePower  fault.Code = 1
	CodeSensor fault.Code = 2
	CodeRadio  fault.Code = 3
)

// CodeName maps the reference codespace to stable names, with the
// required fallback for unknown codes. Used when no CUE table is
// supplied.
func CodeName(code fault.Code) string {
	switch code {
	case fault.Success:
		return "NONE"
	case CodePower:
		return "POWER"
	case CodeSensor:
		return "SENSOR"
	case CodeRadio:
		return "RADIO"
	default:
		return "UNKNOWN"
	}
}

// Device simulates the board. FailAt names a subsystem whose driver
// call fails ("power", "sensor", or "radio"); empty means every driver
// succeeds. Events collects the driver and teardown calls in execution
// order for demo output and tests.
type Device struct {
	FailAt string
	Events []string
}

// Init brings up the three subsystems fail-fast: the first failing
// check records the fault, persists it, and returns immediately.
func (d *Device) Init(c *fault.Checker) error {
	if err := c.Run(d.powerOn, CodePower); err != nil {
		return err
	}
	if err := c.Run(d.sensorOp(), CodeSensor); err != nil {
		return err
	}
	if err := c.Run(d.radioStart, CodeRadio); err != nil {
		return err
	}
	return nil
}

// InitWithRollback brings up the subsystems under the rollback
// discipline: a failure tears down everything acquired before it, in
// reverse order, and the unified exit performs the durable logging.
func (d *Device) InitWithRollback(c *fault.Checker) error {
	seq := c.Sequence()
	if !seq.Run(d.powerOn, CodePower, d.powerOff) {
		return seq.Finish()
	}
	if !seq.Run(d.sensorOp(), CodeSensor, d.sensorDeinit) {
		return seq.Finish()
	}
	if !seq.Run(d.radioStart, CodeRadio, d.radioDeinit) {
		return seq.Finish()
	}
	return seq.Finish()
}

func (d *Device) driver(name string) int {
	if d.FailAt == name {
		d.Events = append(d.Events, name+": FAILED")
		return 0
	}
	d.Events = append(d.Events, name+": ok")
	return 1
}

func (d *Device) powerOn() int    { return d.driver("power") }
func (d *Device) sensorInit() int { return d.driver("sensor") }
func (d *Device) radioStart() int { return d.driver("radio") }

func (d *Device) powerOff()     { d.Events = append(d.Events, "power: off") }
func (d *Device) sensorDeinit() { d.Events = append(d.Events, "sensor: deinit") }
func (d *Device) radioDeinit()  { d.Events = append(d.Events, "radio: deinit") }
