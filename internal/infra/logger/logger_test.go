package logger

import "testing"

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", "prod"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewBuildsDevAndProdLoggers(t *testing.T) {
	for _, env := range []string{"dev", "prod"} {
		log, err := New("debug", env)
		if err != nil {
			t.Fatalf("build %s logger: %v", env, err)
		}
		if !log.Core().Enabled(-1) {
			t.Fatalf("expected debug level to be enabled for %s", env)
		}
	}
}
