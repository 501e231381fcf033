package service

import (
	"testing"

	"folio/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"IPv4 keeps first two octets", "203.0.113.45", "203.0.0.0"},
		{"IPv4 local", "192.168.1.77", "192.168.0.0"},
		{"IPv4 with whitespace", "  10.20.30.40 ", "10.20.0.0"},
		{"IPv6 keeps first six bytes", "2001:db8:85a3:1:2:3:4:5", "2001:db8:85a3::"},
		{"IPv6 loopback", "::1", "::"},
		{"Garbage", "not-an-ip", ""},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnonymizeIP(tt.in))
		})
	}
}

func TestDeviceFromUserAgent(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want models.DeviceType
	}{
		{
			"Desktop Chrome",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			models.DeviceDesktop,
		},
		{
			"iPhone Safari",
			"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			models.DeviceMobile,
		},
		{
			// Carries a Mobile token alongside the tablet flag; the tablet
			// must win the tie.
			"iPad Safari",
			"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			models.DeviceTablet,
		},
		{
			"Android phone",
			"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36",
			models.DeviceMobile,
		},
		{
			"Android tablet",
			"Mozilla/5.0 (Android 14; Tablet; rv:109.0) Gecko/109.0 Firefox/115.0",
			models.DeviceTablet,
		},
		{"Empty falls back to desktop", "", models.DeviceDesktop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeviceFromUserAgent(tt.ua))
		})
	}
}
