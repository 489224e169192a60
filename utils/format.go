package utils

import (
	"fmt"
	"time"
)

// MessageType is a custom type used as a placeholder for various message types.
type MessageType int

// The message types used across the CLI application.
const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// Terminal colors used across the CLI application.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

var messageColors = map[MessageType]string{
	DefaultMessage: DefaultColor,
	StatusMessage:  StatusColor,
	SuccessMessage: SuccessColor,
	ErrorMessage:   ErrorColor,
}

// DecorateText wraps the message in the terminal color associated with its type.
func DecorateText(s string, msgType MessageType) string {
	c, ok := messageColors[msgType]
	if !ok {
		return s
	}
	return c + s + DefaultColor
}

// FormatTime formats a duration into a short human readable value,
// e.g. 0.25s, 3m 2.00s or 1h 5m 0.00s.
func FormatTime(d time.Duration) string {
	secs := d.Seconds() - float64(int64(d.Minutes()))*60
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm %.2fs", int64(d.Minutes()), secs)
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh %dm %.2fs", int64(d.Hours()), int64(d.Minutes())%60, secs)
	}
	return fmt.Sprintf("%dd %dh %dm %.2fs",
		int64(d.Hours())/24, int64(d.Hours())%24, int64(d.Minutes())%60, secs)
}
