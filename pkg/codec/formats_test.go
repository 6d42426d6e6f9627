package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEventFormatsRoundTrip(t *testing.T) {
	entries := []EventFormat{
		{Format: "Фуршет", Time: "14:00"},
		{Format: "Банкет"},
		{Format: "Кава-брейк", Time: "10:30"},
	}

	raw := SerializeEventFormats(entries)
	got := ParseEventFormats(raw)

	if diff := cmp.Diff(entries, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEventFormatsLegacyFallback(t *testing.T) {
	got := ParseEventFormats("Фуршет")
	want := []EventFormat{{Format: "Фуршет"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("legacy fallback mismatch (-want +got):\n%s", diff)
	}

	if !IsLegacyEventFormat("Фуршет") {
		t.Fatal("expected bare string to be reported as legacy")
	}
	if IsLegacyEventFormat(`[{"format":"Фуршет"}]`) {
		t.Fatal("structured encoding reported as legacy")
	}
}

func TestEventFormatsEmpty(t *testing.T) {
	if got := SerializeEventFormats(nil); got != "" {
		t.Fatalf("SerializeEventFormats(nil) = %q, want empty string", got)
	}
	if got := SerializeEventFormats([]EventFormat{}); got != "" {
		t.Fatalf("SerializeEventFormats([]) = %q, want empty string", got)
	}
	if got := ParseEventFormats(""); len(got) != 0 {
		t.Fatalf("ParseEventFormats(\"\") = %v, want empty", got)
	}
	if got := ParseEventFormats("   "); len(got) != 0 {
		t.Fatalf("ParseEventFormats(blank) = %v, want empty", got)
	}
}

func TestParseEventFormatsUpgradesLegacyOnSerialize(t *testing.T) {
	parsed := ParseEventFormats("Виїзний бар")
	upgraded := SerializeEventFormats(parsed)
	if upgraded == "Виїзний бар" {
		t.Fatal("legacy string should convert to structured encoding")
	}
	if diff := cmp.Diff(parsed, ParseEventFormats(upgraded)); diff != "" {
		t.Fatalf("upgraded encoding no longer round-trips (-want +got):\n%s", diff)
	}
}
