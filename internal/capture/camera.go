package capture

import (
	"context"
	"errors"
)

// Facing is which way a camera device points.
type Facing string

const (
	FacingEnvironment Facing = "environment"
	FacingUser        Facing = "user"
	FacingUnknown     Facing = "unknown"
)

// Device describes one camera the driver can open.
type Device struct {
	ID     string
	Label  string
	Facing Facing
}

// Stream is an open camera feed. It must be closed after use whether or not
// a capture succeeded.
type Stream interface {
	Capture(ctx context.Context) (*Frame, error)
	Close() error
}

// Driver enumerates camera devices and opens streams on them.
type Driver interface {
	Devices(ctx context.Context) ([]Device, error)
	Open(ctx context.Context, deviceID string) (Stream, error)
}

// ErrNoCamera is returned when the driver reports no usable devices.
var ErrNoCamera = errors.New("no camera device available")

// CameraSource acquires frames from a camera, preferring the rear
// (environment-facing) device so receipts come out readable.
type CameraSource struct {
	driver Driver
}

// NewCameraSource creates a camera-backed source on the given driver.
func NewCameraSource(driver Driver) *CameraSource {
	return &CameraSource{driver: driver}
}

func (c *CameraSource) Acquire(ctx context.Context) (*Frame, error) {
	devices, err := c.driver.Devices(ctx)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrNoCamera
	}

	device := devices[0]
	for _, d := range devices {
		if d.Facing == FacingEnvironment {
			device = d
			break
		}
	}

	stream, err := c.driver.Open(ctx, device.ID)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	return stream.Capture(ctx)
}

// Camera shots are downscaled harder than picked files; phone sensors produce
// frames far larger than a receipt needs.
func (c *CameraSource) maxDimension() int {
	return cameraMaxDimension
}
