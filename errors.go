package imgrotate

import "errors"

// Errors returned by the rotation engine. All of them are detected before
// any pixel is processed, so a failed call never yields partial output.
var (
	ErrInvalidAngle            = errors.New("invalid rotation angle")
	ErrEmptySource             = errors.New("empty source image")
	ErrUnknownKernel           = errors.New("unknown resampling kernel")
	ErrUnsupportedChannelCount = errors.New("unsupported channel count")
	ErrInvalidBuffer           = errors.New("pixel buffer length does not match its dimensions")
	ErrUnknownPolicy           = errors.New("unknown policy")
	ErrUnknownBackend          = errors.New("unknown rotation backend")
	ErrUnsupportedEdge         = errors.New("edge policy not supported by backend")
)
