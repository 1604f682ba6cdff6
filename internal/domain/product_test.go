package domain

import "testing"

func TestValidProductID(t *testing.T) {
	valid := []string{"1", "heirloom", "SKU-42", "roma_2024", "v1.2", "a~b"}
	for _, id := range valid {
		if !ValidProductID(id) {
			t.Fatalf("expected %q to be valid", id)
		}
	}
	invalid := []string{"", ".", "..", "a/b", "a?b", "a#b", "a b", "a%2Fb", "tomate-à-l'ancienne"}
	for _, id := range invalid {
		if ValidProductID(id) {
			t.Fatalf("expected %q to be rejected", id)
		}
	}
}
