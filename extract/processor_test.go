package extract

import "testing"

func TestProcessor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Asus Vivobook Intel Core i5-1135G7 8GB", "Intel Core I5-1135G7"},
		{"Lenovo Legion 5 AMD Ryzen 7 5800H RTX 3060", "AMD Ryzen 7 5800H"},
		{"HP Victus AMD Ryzen 5 5600H", "AMD Ryzen 5 5600H"},
		{"Apple Macbook Air M2 8GB 256GB", "Apple M2"},
		{"Lenovo IdeaPad Celeron N4020 4GB", "Intel N4020"},
		{"Microsoft Surface Pro X SQ1 8GB", "Microsoft SQ1"},
		{"Asus ROG Snapdragon X Elite X1E-78-100", "Snapdragon X Elite"},
		{"Barebone Chassis 14 inch", UnknownProcessor},
	}

	for _, tt := range tests {
		got := Processor(tt.name)
		if got.Text != tt.want {
			t.Errorf("Processor(%q) = %q; want %q", tt.name, got.Text, tt.want)
		}
	}
}

func TestProcessorIgnoresMemoryAndGPUNumbers(t *testing.T) {
	// 512GB and Radeon model numbers must never be read as CPU models.
	got := Processor("Slim Notebook 8GB RAM 512GB SSD Radeon Graphics")
	if got.Resolved {
		t.Errorf("Processor on CPU-less name = %q; want unresolved", got.Text)
	}
}

func TestStandardizeProcessor(t *testing.T) {
	tests := []struct {
		detail string
		want   string
	}{
		{"Intel Core I7-12700H", "Intel Core i7"},
		{"Intel Core I5-1135G7", "Intel Core i5"},
		{"Intel Core Ultra 7 155H", "Intel Core Ultra"},
		{"AMD Ryzen 7 5800H", "AMD Ryzen 7"},
		{"AMD Ryzen 5 7520U", "AMD Ryzen 5"},
		{"AMD Ryzen AI MAX+ 395", "AMD Ryzen 9"},
		{"AMD 3020E", "AMD Entry-Level"},
		{"AMD Athlon Gold 3150U", "AMD Entry-Level"},
		{"Intel N4020", "Intel N-Series"},
		{"Intel Celeron N5100", "Intel N-Series"},
		{"Intel Pentium Gold 7505", "Intel Pentium"},
		{"Intel Xeon E3-1505M V6", "Intel Xeon"},
		{"Apple M2", "Apple Silicon"},
		{"Microsoft SQ1", "Qualcomm Snapdragon"},
		{"Snapdragon X Elite", "Qualcomm Snapdragon"},
		{"MediaTek 8183", "MediaTek"},
		{UnknownProcessor, UnknownCategory},
		{"", UnknownCategory},
		{"Quantum CPU 9000X", UnknownCategory},
	}

	for _, tt := range tests {
		got := StandardizeProcessor(tt.detail)
		if got != tt.want {
			t.Errorf("StandardizeProcessor(%q) = %q; want %q", tt.detail, got, tt.want)
		}
	}
}
