package event

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestBus_FIFOOrder(t *testing.T) {
	b := NewBus()

	const n = 100
	for i := 1; i <= n; i++ {
		b.Publish(AppendLog{Line: fmt.Sprintf("line %d", i), Source: SourceStdout})
	}
	b.Close()

	i := 0
	for ev := range b.Events() {
		i++
		al, ok := ev.(AppendLog)
		if !ok {
			t.Fatalf("expected AppendLog, got %T", ev)
		}
		want := fmt.Sprintf("line %d", i)
		if al.Line != want {
			t.Fatalf("event %d: got %q, want %q", i, al.Line, want)
		}
	}
	if i != n {
		t.Errorf("received %d events, want %d", i, n)
	}
}

func TestBus_PublishNeverBlocks(t *testing.T) {
	b := NewBus()

	// No consumer is draining; publishing far beyond any channel buffer
	// must still return promptly.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			b.Publish(SetRunning{Running: i%2 == 0})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Publish blocked without a consumer")
	}
	b.Close()
}

func TestBus_PerProducerOrder(t *testing.T) {
	b := NewBus()

	const perProducer = 200
	var wg sync.WaitGroup
	for p := 0; p < 3; p++ {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				b.Publish(AppendLog{Line: fmt.Sprintf("%d", i), Source: src})
			}
		}(Source(p))
	}
	wg.Wait()
	b.Close()

	// Each producer's events must arrive in its own publish order;
	// cross-producer interleaving is unspecified.
	last := map[Source]int{SourceStdout: -1, SourceStderr: -1, SourceSystem: -1}
	total := 0
	for ev := range b.Events() {
		al := ev.(AppendLog)
		var i int
		fmt.Sscanf(al.Line, "%d", &i)
		if i <= last[al.Source] {
			t.Fatalf("source %v: event %d arrived after %d", al.Source, i, last[al.Source])
		}
		last[al.Source] = i
		total++
	}
	if total != 3*perProducer {
		t.Errorf("received %d events, want %d", total, 3*perProducer)
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	b := NewBus()
	b.Publish(AppendLog{Line: "kept", Source: SourceSystem})
	b.Close()
	b.Publish(AppendLog{Line: "dropped", Source: SourceSystem})

	var lines []string
	for ev := range b.Events() {
		lines = append(lines, ev.(AppendLog).Line)
	}
	if len(lines) != 1 || lines[0] != "kept" {
		t.Errorf("got %v, want just the pre-close event", lines)
	}
}

func TestSource_String(t *testing.T) {
	tests := []struct {
		source   Source
		expected string
	}{
		{SourceStdout, "stdout"},
		{SourceStderr, "stderr"},
		{SourceSystem, "system"},
		{Source(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.source.String(); got != tt.expected {
			t.Errorf("Source(%d).String() = %q, want %q", tt.source, got, tt.expected)
		}
	}
}
