package payment

import "testing"

func TestStatusChain(t *testing.T) {
	next, ok := StatusPending.Next()
	if !ok || next != StatusVerified {
		t.Fatalf("Pending.Next() = %s, %v", next, ok)
	}
	next, ok = StatusVerified.Next()
	if !ok || next != StatusProcessed {
		t.Fatalf("Verified.Next() = %s, %v", next, ok)
	}
	if _, ok := StatusProcessed.Next(); ok {
		t.Fatal("Processed must be terminal")
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"Pending", "Verified", "Processed"} {
		if _, err := ParseStatus(valid); err != nil {
			t.Errorf("ParseStatus(%q): %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "pending", "Rejected", "PROCESSED"} {
		if _, err := ParseStatus(invalid); err == nil {
			t.Errorf("ParseStatus(%q): expected error", invalid)
		}
	}
}
