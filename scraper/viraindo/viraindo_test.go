package viraindo

import (
	"testing"
	"time"
)

const listingFixture = `
<html><body>
<p>Harga update setiap hari</p>
<table>
  <tr><td>Nama Produk</td><td>Harga</td></tr>
  <tr>
    <td>Asus TUF Gaming F15 FX506HF
        i5-11400H 8GB 512GB SSD</td>
    <td>Rp 10.799.000</td>
  </tr>
  <tr><td>Lenovo IdeaPad Slim 3</td><td>8.499.000</td></tr>
  <tr><td></td><td>Rp 5.000.000</td></tr>
  <tr><td>Promo banner tanpa harga</td><td>Hubungi kami</td></tr>
  <tr><td>Acer Aspire Gratis</td><td>Rp 0</td></tr>
  <tr><td colspan="2">Baris tidak lengkap</td></tr>
</table>
<table>
  <tr><td>Tabel kedua diabaikan</td><td>Rp 1.000.000</td></tr>
</table>
</body></html>`

func TestParseListing(t *testing.T) {
	at := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	products, err := ParseListing(listingFixture, at)
	if err != nil {
		t.Fatalf("ParseListing: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("parsed %d products, want 2", len(products))
	}

	first := products[0]
	if first.ProductName != "Asus TUF Gaming F15 FX506HF i5-11400H 8GB 512GB SSD" {
		t.Errorf("name not whitespace-collapsed: %q", first.ProductName)
	}
	if first.PriceRaw != 10_799_000 {
		t.Errorf("PriceRaw = %d, want 10799000", first.PriceRaw)
	}
	if !first.ScrapedAt.Equal(at) {
		t.Errorf("ScrapedAt = %v, want %v", first.ScrapedAt, at)
	}

	if products[1].ProductName != "Lenovo IdeaPad Slim 3" || products[1].PriceRaw != 8_499_000 {
		t.Errorf("second product = %+v", products[1])
	}
}

func TestParseListingNoTable(t *testing.T) {
	if _, err := ParseListing("<html><body><p>kosong</p></body></html>", time.Now()); err == nil {
		t.Fatalf("ParseListing succeeded on a document without a table")
	}
}
