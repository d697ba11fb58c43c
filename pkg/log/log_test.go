package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestForComponentMemoizes(t *testing.T) {
	a := ForComponent("engine-test")
	b := ForComponent("engine-test")
	if a != b {
		t.Error("ForComponent returned distinct loggers for the same name")
	}
}

func TestPrefixAndLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil) // nil is ignored; writers stay as-is for other tests

	l := ForComponent("prefix-test")
	l.Infof("hello %d", 7)
	l.Warnf("careful")
	l.Errorf("broken")

	out := buf.String()
	for _, want := range []string{
		"INFO [prefix-test>] hello 7",
		"WARN [prefix-test>] careful",
		"ERROR [prefix-test>] broken",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDebugGating(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	l := ForComponent("debug-test")
	l.Debugf("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug message logged while disabled")
	}

	EnableDebugFor("debug-test")
	l.Debugf("visible")
	if !strings.Contains(buf.String(), "DEBUG [debug-test>] visible") {
		t.Errorf("per-component debug message missing:\n%s", buf.String())
	}

	other := ForComponent("debug-other")
	other.Debugf("still hidden")
	if strings.Contains(buf.String(), "still hidden") {
		t.Error("debug leak into other component")
	}

	SetGlobalDebug(true)
	defer SetGlobalDebug(false)
	other.Debugf("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("global debug did not enable component")
	}
}

func TestDebugEnabledFor(t *testing.T) {
	if DebugEnabledFor("never-enabled") {
		t.Error("unknown component reports debug enabled")
	}
	EnableDebugFor("enabled-once")
	if !DebugEnabledFor("enabled-once") {
		t.Error("enabled component reports debug disabled")
	}
}
