package xlog

import "testing"

func TestNewDefaultsToInfoLevel(t *testing.T) {
	l := New(Options{})
	if l.Logger.GetLevel().String() != "info" {
		t.Fatalf("default level = %s, want info", l.Logger.GetLevel())
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	l := New(Options{Level: "not-a-level"})
	if l.Logger.GetLevel().String() != "info" {
		t.Fatalf("fallback level = %s, want info", l.Logger.GetLevel())
	}
}

func TestNoopDoesNotPanic(t *testing.T) {
	l := NewNoop()
	l.Debugf("x")
	l.Infof("x")
	l.Warnf("x")
	l.Errorf("x")
	l.WithFields(nil)
}
