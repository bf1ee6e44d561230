package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("snopes.com") {
			t.Errorf("Expected request %d within burst to be allowed", i+1)
		}
	}

	if l.Allow("snopes.com") {
		t.Error("Expected request beyond burst to be denied")
	}
}

func TestLimiter_DomainsAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("snopes.com") {
		t.Error("Expected first request to snopes.com to be allowed")
	}
	if l.Allow("snopes.com") {
		t.Error("Expected second request to snopes.com to be denied")
	}
	if !l.Allow("cdc.gov") {
		t.Error("Expected request to a different domain to be allowed")
	}
	if !l.Allow("") {
		t.Error("Expected unscoped bucket to be independent")
	}
}

func TestLimiter_SetDomainRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetDomainRate("slow.example", 0.001, 1)

	if !l.Allow("slow.example") {
		t.Error("Expected first request within custom burst to be allowed")
	}
	if l.Allow("slow.example") {
		t.Error("Expected custom rate to deny the second request")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)

	// Drain the burst
	if err := l.Wait(context.Background(), "snopes.com"); err != nil {
		t.Fatalf("Expected first wait to pass, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "snopes.com"); err == nil {
		t.Error("Expected wait to fail once the context deadline passes")
	}
}
