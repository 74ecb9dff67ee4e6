package extract

import "testing"

func TestBrand(t *testing.T) {
	brands := Brands()

	tests := []struct {
		name string
		want string
	}{
		{"ASUS ROG Strix G513QY R7 16GB 512GB SSD", "Asus"},
		{"Acer Aspire 5 A514 Slim", "Acer"},
		{"HP Pavilion 14 i5", "HP"},
		{"Apple Macbook Air M2 2022", "Apple"},
		{"Legion 5 Pro 16ACH6H", "Lenovo"},
		{"lenovo ideapad slim 3", "Lenovo"},
		{"Generic Notebook 14 8GB", "Other"},
		{"", "Other"},
	}

	for _, tt := range tests {
		got := Brand(tt.name, brands)
		if got.Text != tt.want {
			t.Errorf("Brand(%q) = %q; want %q", tt.name, got.Text, tt.want)
		}
	}
}

func TestBrandLegionOverridesListOrder(t *testing.T) {
	// "Legion 7" carries no vendor word at all; the model line implies it.
	got := Brand("Legion 7 16IAX7 i9 32GB", Brands())
	if got.Text != "Lenovo" || !got.Resolved {
		t.Errorf("Brand legion override = %+v; want resolved Lenovo", got)
	}
}

func TestSeries(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ASUS ROG Strix G513QY AMD Advantage Edition", "ROG Strix"},
		{"Asus TUF Gaming FX506 i5", "TUF Gaming"},
		{"Asus Zenbook UX425", "Zenbook"},
		{"Acer Aspire 5 A514", "Aspire"},
		{"Acer Predator Helios 300", "Predator"},
		{"Lenovo Legion 5 Pro 16ACH6H", "Legion"},
		{"Lenovo Yoga Slim 7", "Yoga"},
		{"Lenovo ThinkPad X1 Carbon", "ThinkPad"},
		{"Apple Macbook Pro M3", "Macbook Pro"},
		{"Dell XPS 13 Plus", "XPS"},
		{"ASUS G15 AMD Advantage Edition RX 6800M", "ROG Strix"},
		{"Lenovo Slim 3i 14IAH8", "IdeaPad Slim"},
		{"Lenovo Slim 2 14", "Unknown"},
		{"Totally Unbranded Device", "Unknown"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		got := Series(tt.name)
		if got.Text != tt.want {
			t.Errorf("Series(%q) = %q; want %q", tt.name, got.Text, tt.want)
		}
	}
}

func TestSeriesNeverPanicsOnNoise(t *testing.T) {
	noisy := []string{
		"((((", "asus", "lenovo ....", "MSI", "hp 14\" 8gb", "dell \\ / []",
	}
	for _, name := range noisy {
		_ = Series(name)
		_ = Brand(name, Brands())
	}
}
