package credential

import (
	"reflect"
	"testing"
	"time"
)

func TestSecret_Destroy(t *testing.T) {
	s := NewSecret("hunter2")

	backing := s.Bytes()
	if string(backing) != "hunter2" {
		t.Fatalf("Bytes = %q", backing)
	}

	s.Destroy()

	for i, b := range backing {
		if b != 0 {
			t.Errorf("backing[%d] = %d, want 0 after Destroy", i, b)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Len after Destroy = %d, want 0", s.Len())
	}

	// Destroy must be safe to call twice
	s.Destroy()
}

func TestIsEscalation(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{
			name:     "bare sudo",
			args:     []string{"sudo", "apt", "update"},
			expected: true,
		},
		{
			name:     "absolute path",
			args:     []string{"/usr/bin/sudo", "systemctl", "restart", "nginx"},
			expected: true,
		},
		{
			name:     "plain command",
			args:     []string{"echo", "hello"},
			expected: false,
		},
		{
			name:     "sudo as argument only",
			args:     []string{"echo", "sudo"},
			expected: false,
		},
		{
			name:     "prefixed name is not sudo",
			args:     []string{"sudoedit", "file"},
			expected: false,
		},
		{
			name:     "empty",
			args:     nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEscalation(tt.args); got != tt.expected {
				t.Errorf("IsEscalation(%v) = %v, want %v", tt.args, got, tt.expected)
			}
		})
	}
}

func TestEnsureStdinFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flag inserted after command",
			args:     []string{"sudo", "apt", "update"},
			expected: []string{"sudo", "-S", "apt", "update"},
		},
		{
			name:     "bare sudo gets flag appended",
			args:     []string{"sudo"},
			expected: []string{"sudo", "-S"},
		},
		{
			name:     "short flag already present",
			args:     []string{"sudo", "-S", "ls"},
			expected: []string{"sudo", "-S", "ls"},
		},
		{
			name:     "long flag already present",
			args:     []string{"sudo", "--stdin", "ls"},
			expected: []string{"sudo", "--stdin", "ls"},
		},
		{
			name:     "askpass counts as satisfied",
			args:     []string{"sudo", "--askpass", "ls"},
			expected: []string{"sudo", "--askpass", "ls"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnsureStdinFlag(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("EnsureStdinFlag(%v) = %v, want %v", tt.args, got, tt.expected)
			}
		})
	}
}

func TestGate_Grant(t *testing.T) {
	g := NewGate()

	// UI side: grant the prompt when it arrives
	go func() {
		req := <-g.Requests()
		if req.Command != "sudo ls" {
			t.Errorf("Request.Command = %q", req.Command)
		}
		req.Grant(NewSecret("pw"))
	}()

	secret, ok := g.Prompt("sudo ls")
	if !ok {
		t.Fatal("Prompt reported cancel, want grant")
	}
	if string(secret.Bytes()) != "pw" {
		t.Errorf("secret = %q", secret.Bytes())
	}
	if g.State() != StateIdle {
		t.Error("gate should return to idle after grant")
	}
}

func TestGate_Deny(t *testing.T) {
	g := NewGate()

	go func() {
		req := <-g.Requests()
		req.Deny()
	}()

	secret, ok := g.Prompt("sudo ls")
	if ok {
		t.Fatal("Prompt reported grant, want cancel")
	}
	if secret != nil {
		t.Errorf("secret = %v, want nil", secret)
	}
	if g.State() != StateIdle {
		t.Error("gate should return to idle after deny")
	}
}

func TestGate_PromptingState(t *testing.T) {
	g := NewGate()

	got := make(chan Request)
	go func() {
		got <- <-g.Requests()
	}()

	done := make(chan struct{})
	go func() {
		g.Prompt("sudo ls")
		close(done)
	}()

	req := <-got
	// The prompting goroutine is now blocked awaiting the response
	if g.State() != StatePrompting {
		t.Error("gate should be prompting while the request is outstanding")
	}

	req.Deny()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Prompt did not return after Deny")
	}
}
