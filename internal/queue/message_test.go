package queue

import "testing"

func TestMessageRoundTrip(t *testing.T) {
	msg := Message{
		VersionID:  "ver-123",
		RequestID:  "req-456",
		EnqueuedAt: "2026-08-29T10:00:00Z",
		Version:    1,
	}

	payload, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeMessage(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != msg {
		t.Fatalf("decoded = %+v, want %+v", decoded, msg)
	}
}

func TestDecodeMessageRejectsGarbage(t *testing.T) {
	if _, err := DecodeMessage([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}
