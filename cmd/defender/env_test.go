package main

import (
	"testing"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/config"
)

func TestMinFPS(t *testing.T) {
	tests := []struct {
		stall time.Duration
		want  int
	}{
		{time.Second / 30, 38},
		{50 * time.Millisecond, 25},
		{0, 1},
	}
	for _, tc := range tests {
		if got := minFPS(tc.stall); got != tc.want {
			t.Errorf("minFPS(%v) = %d, expected %d", tc.stall, got, tc.want)
		}
	}
}

func TestCheckFPS(t *testing.T) {
	stall := config.DefaultShooterConfig().Loop.StallThreshold

	tests := []struct {
		fps     int
		wantErr bool
	}{
		{120, false},
		{60, false},
		{38, false},
		{30, true}, // every frame would stall
		{10, true},
		{0, true},
		{-5, true},
	}
	for _, tc := range tests {
		err := checkFPS(tc.fps, stall)
		if (err != nil) != tc.wantErr {
			t.Errorf("checkFPS(%d) error = %v, expected error %v", tc.fps, err, tc.wantErr)
		}
	}
}
