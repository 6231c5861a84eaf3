package api

import (
	"errors"
	"math"
)

// Validator - интерфейс, который реализуют DTO с входными данными.
type Validator interface {
	Validate() error
}

func (p SessionPayload) Validate() error {
	if p.SessionID == "" {
		return errors.New("session_id is required")
	}
	if len(p.SessionID) > 32 {
		return errors.New("session_id is too long")
	}
	return nil
}

func (p MovementPayload) Validate() error {
	if !isFinite(p.Direction.X) || !isFinite(p.Direction.Y) {
		return errors.New("movement direction must be finite")
	}
	return nil
}

func (p AimPayload) Validate() error {
	if !isFinite(p.Angle) {
		return errors.New("aim angle must be finite")
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
