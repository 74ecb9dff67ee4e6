package extract

import "testing"

func TestRAM(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ASUS ROG Strix G513QY 16GB 512GB SSD", "16GB"},
		{"Lenovo IdeaPad RAM 8GB SSD 256GB", "8GB"},
		{"HP 14s 8GB DDR4 512GB NVMe", "8GB"},
		{"Apple Macbook Air 8GB 2133MHz LPDDR3", "8GB"},
		{"MSI Katana 2x8GB DDR5 1TB", "16GB"},
		{"Acer Swift Memori 4GB eMMC 64GB", "4GB"},
		{"Zyrex Chromebook RAM 4GB, eMMC 32GB", "4GB"},
		{"Barebone Chassis no memory fitted", UnknownRAM},
	}

	for _, tt := range tests {
		got := RAM(tt.name)
		if got.Text != tt.want {
			t.Errorf("RAM(%q) = %q; want %q", tt.name, got.Text, tt.want)
		}
	}
}

func TestRAMRejectsStorageBoundCapacities(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		// The only GB figure is storage; nothing is left for RAM.
		{"Slim Notebook 512GB SSD", UnknownRAM},
		{"Slim Notebook SSD 128GB", UnknownRAM},
		// Unconventional totals never pass either tier.
		{"Workstation 48GB 1TB SSD", UnknownRAM},
	}

	for _, tt := range tests {
		got := RAM(tt.name)
		if got.Text != tt.want {
			t.Errorf("RAM(%q) = %q; want %q", tt.name, got.Text, tt.want)
		}
	}
}
