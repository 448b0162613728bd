// Package util holds small helpers for masking buyer contact data in logs.
package util

import "strings"

// MaskPhone obscures a phone number for logging, keeping only the last few
// digits.
func MaskPhone(phone string) string {
	trimmed := strings.TrimSpace(phone)
	if len(trimmed) > 4 {
		return strings.Repeat("*", len(trimmed)-4) + trimmed[len(trimmed)-4:]
	}
	if len(trimmed) > 2 {
		return strings.Repeat("*", len(trimmed)-2) + trimmed[len(trimmed)-2:]
	}
	return trimmed
}

// MaskEmail obscures the local part of an email address for logging.
func MaskEmail(email string) string {
	trimmed := strings.TrimSpace(email)
	at := strings.Index(trimmed, "@")
	if at <= 1 {
		return trimmed
	}
	return trimmed[:1] + "***" + trimmed[at:]
}
