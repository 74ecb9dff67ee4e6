package extract

import "testing"

func TestGPU(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Asus TUF Gaming F15 RTX 4060 8GB", "RTX 4060"},
		{"Lenovo Legion 5 RTX3060 6GB", "RTX 3060"},
		{"Acer Nitro 5 GTX 1650 4GB", "GTX 1650"},
		{"HP Pavilion MX450 2GB", "MX 450"},
		{"Apple Macbook Pro M2 10-Core CPU 16-Core GPU", "Apple Silicon Graphics"},
		{"Lenovo V14 VGA AMD Radeon Vega 8, RAM 8GB", "Radeon VEGA 8"},
		{"Asus ExpertBook Intel Iris Xe Graphics", "Intel Iris Xe Graphics"},
		{"Acer Aspire Intel UHD Graphics 620", "Intel UHD Graphics 620"},
		{"Plain Slate 8GB eMMC", UnknownGraphics},
	}

	for _, tt := range tests {
		got := GPU(tt.name)
		if got.Text != tt.want {
			t.Errorf("GPU(%q) = %q; want %q", tt.name, got.Text, tt.want)
		}
	}
}

func TestGPUVGADescriptorFallback(t *testing.T) {
	// A vendor named inside the VGA clause without any model token.
	got := GPU("Axioo MyBook VGA NVIDIA GEFORCE, RAM 8GB")
	if got.Text != "Integrated Graphics" {
		t.Errorf("GPU vga fallback = %q; want Integrated Graphics", got.Text)
	}
}

func TestStandardizeGPU(t *testing.T) {
	tests := []struct {
		detail string
		want   string
	}{
		{"RTX 4060", "NVIDIA GeForce High-End"},
		{"RTX 3050", "NVIDIA GeForce Performance"},
		{"GTX 1650", "NVIDIA GeForce Mainstream"},
		{"MX 450", "NVIDIA GeForce Entry-Level"},
		{"Quadro T600", "NVIDIA Quadro Workstation"},
		{"RTX A2000", "NVIDIA Quadro Workstation"},
		{"Radeon VEGA 8", "AMD Integrated Graphics"},
		{"Radeon Pro 560X", "AMD Radeon Pro Workstation"},
		{"Radeon RX 6600M", "AMD Radeon Dedicated"},
		{"Intel Iris Xe Graphics", "Intel Integrated Graphics"},
		{"Intel UHD Graphics 620", "Intel Integrated Graphics"},
		{"Apple Silicon Graphics", "Apple Silicon Graphics"},
		{"Adreno Graphics", "Other Mobile Graphics"},
		{IntegratedGraphic, IntegratedGraphic},
		{"", IntegratedGraphic},
		{"Voodoo 3", OtherGPU},
	}

	for _, tt := range tests {
		got := StandardizeGPU(tt.detail)
		if got != tt.want {
			t.Errorf("StandardizeGPU(%q) = %q; want %q", tt.detail, got, tt.want)
		}
	}
}
