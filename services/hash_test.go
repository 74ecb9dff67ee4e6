package services

import "testing"

func TestProductHashNormalization(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		same bool
	}{
		{
			name: "case and surrounding whitespace",
			a:    "  ASUS VivoBook A416JAO  ",
			b:    "asus vivobook a416jao",
			same: true,
		},
		{
			name: "punctuation and repeated spaces",
			a:    "Asus VivoBook   A416JAO!!!",
			b:    "asus vivobook a416jao",
			same: true,
		},
		{
			name: "non ascii letters dropped",
			a:    "Lenovo IdeaPad® 3",
			b:    "lenovo ideapad 3",
			same: true,
		},
		{
			name: "different models stay distinct",
			a:    "Acer Aspire 5 A514",
			b:    "Acer Aspire 5 A515",
			same: false,
		},
		{
			name: "punctuation between spaces leaves a double space",
			a:    "asus - rog",
			b:    "asus rog",
			same: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ha, hb := ProductHash(tt.a), ProductHash(tt.b)
			if (ha == hb) != tt.same {
				t.Errorf("ProductHash(%q) vs ProductHash(%q): same=%v, want same=%v",
					tt.a, tt.b, ha == hb, tt.same)
			}
		})
	}
}

func TestProductHashDeterministic(t *testing.T) {
	name := "MSI Katana GF66 i7-11800H RTX 3050"
	first := ProductHash(name)
	if len(first) != 64 {
		t.Fatalf("ProductHash length = %d, want 64 hex chars", len(first))
	}
	for i := 0; i < 5; i++ {
		if got := ProductHash(name); got != first {
			t.Fatalf("ProductHash not deterministic: %q vs %q", got, first)
		}
	}
}
