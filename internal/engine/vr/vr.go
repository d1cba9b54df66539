// Package vr provides a head-mounted display backend for side-by-side stereo
// viewers. Head orientation is integrated from relative pointer motion.
package vr

import (
	gomath "math"

	"github.com/Faultbox/sushi-raft/internal/logger"
)

const maxPitch = gomath.Pi/2 - 0.01

// PointerSource supplies relative pointer motion for the current frame.
type PointerSource interface {
	PointerDelta() (dx, dy int)
}

// HeadMountedDisplay tracks the orientation of a stereo viewer.
type HeadMountedDisplay struct {
	src         PointerSource
	sensitivity float32
	yaw, pitch  float32
}

// New creates a display fed by src.
func New(src PointerSource) *HeadMountedDisplay {
	return &HeadMountedDisplay{src: src, sensitivity: 0.0025}
}

// SupportsHeadMountedDisplay reports whether stereo viewing is available.
func (h *HeadMountedDisplay) SupportsHeadMountedDisplay() bool { return h.src != nil }

// Update integrates this frame's motion.
func (h *HeadMountedDisplay) Update() {
	if h.src == nil {
		return
	}
	dx, dy := h.src.PointerDelta()
	h.yaw -= float32(dx) * h.sensitivity
	h.pitch -= float32(dy) * h.sensitivity
	h.pitch = max(min(h.pitch, maxPitch), -maxPitch)
}

// ResetHeadTracker makes the current orientation straight ahead.
func (h *HeadMountedDisplay) ResetHeadTracker() {
	h.yaw, h.pitch = 0, 0
	logger.Debug("head tracker reset")
}

// Orientation returns yaw and pitch in radians.
func (h *HeadMountedDisplay) Orientation() (yaw, pitch float32) {
	return h.yaw, h.pitch
}
