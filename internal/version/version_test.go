package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	if !strings.HasPrefix(info, "costwatch ") {
		t.Errorf("Info should start with the binary name: %q", info)
	}
	if !strings.Contains(info, "commit:") || !strings.Contains(info, "built:") {
		t.Errorf("Info missing fields: %q", info)
	}
}

func TestGetters(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion returned empty string")
	}
	if GetCommit() == "" {
		t.Error("GetCommit returned empty string")
	}
	if GetDate() == "" {
		t.Error("GetDate returned empty string")
	}
}
