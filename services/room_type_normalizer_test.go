package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRoomTypeBedroomVariants(t *testing.T) {
	cases := map[string]string{
		"2 Bedroom Apartment":    "Two Bedroom",
		"Two Bedroom Apartments": "Two Bedroom",
		"two bedroom":            "Two Bedroom",
		"TWO BEDROOM SUITE":      "Two Bedroom",
		"3 Bedroom Apartment":    "Three Bedroom",
		"Three Bedroom":          "Three Bedroom",
		"three bedroom villa":    "Three Bedroom",
	}
	for raw, want := range cases {
		require.Equal(t, want, NormalizeRoomType(raw), "input %q", raw)
	}
}

func TestNormalizeRoomTypePassThrough(t *testing.T) {
	cases := []string{
		"Deluxe Suite",
		"Studio",
		"Penthouse",
		"Four Bedroom", // not a recognized count
	}
	for _, raw := range cases {
		require.Equal(t, raw, NormalizeRoomType(raw))
	}
}

func TestNormalizeRoomTypeTrimsWhitespace(t *testing.T) {
	require.Equal(t, "Deluxe Suite", NormalizeRoomType("  Deluxe Suite  "))
	require.Equal(t, "Two Bedroom", NormalizeRoomType("  2 Bedroom "))
	require.Equal(t, "", NormalizeRoomType("   "))
}

func TestNormalizeRoomTypeBedroomMustFollowCount(t *testing.T) {
	// A leading numeral without "Bedroom" after it is not a variant.
	require.Equal(t, "2 Queen Beds", NormalizeRoomType("2 Queen Beds"))
	// "Bedroom" must be at the start, not mid-string.
	require.Equal(t, "Luxury Two Bedroom", NormalizeRoomType("Luxury Two Bedroom"))
}
