package card

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		number    string
		wantBrand Brand
		wantLuhn  bool
	}{
		{
			name:      "visa 16 digit",
			number:    "4111111111111111",
			wantBrand: BrandVisa,
			wantLuhn:  true,
		},
		{
			name:      "visa 13 digit",
			number:    "4222222222222",
			wantBrand: BrandVisa,
			wantLuhn:  true,
		},
		{
			name:      "mastercard 51-55 range",
			number:    "5500005555555559",
			wantBrand: BrandMasterCard,
			wantLuhn:  true,
		},
		{
			name:      "mastercard 2-series range",
			number:    "2223000048400011",
			wantBrand: BrandMasterCard,
			wantLuhn:  true,
		},
		{
			name:      "amex",
			number:    "378282246310005",
			wantBrand: BrandAmex,
			wantLuhn:  true,
		},
		{
			name:      "discover",
			number:    "6011111111111117",
			wantBrand: BrandDiscover,
			wantLuhn:  true,
		},
		{
			name:      "diners",
			number:    "30569309025904",
			wantBrand: BrandDiners,
			wantLuhn:  true,
		},
		{
			name:      "visa with spaces",
			number:    "4111 1111 1111 1111",
			wantBrand: BrandVisa,
			wantLuhn:  true,
		},
		{
			name:      "visa with hyphens",
			number:    "4111-1111-1111-1111",
			wantBrand: BrandVisa,
			wantLuhn:  true,
		},
		{
			name:      "visa prefix but bad checksum",
			number:    "4111111111111112",
			wantBrand: BrandVisa,
			wantLuhn:  false,
		},
		{
			name:      "random 12 digits",
			number:    "123456789012",
			wantBrand: BrandUnknown,
			wantLuhn:  false,
		},
		{
			name:      "visa prefix wrong length",
			number:    "41111111111111",
			wantBrand: BrandUnknown,
			wantLuhn:  false,
		},
		{
			name:      "empty",
			number:    "",
			wantBrand: BrandUnknown,
			wantLuhn:  false,
		},
		{
			name:      "letters",
			number:    "4111a11111111111",
			wantBrand: BrandUnknown,
			wantLuhn:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.number)
			if got.Brand != tt.wantBrand {
				t.Errorf("Detect(%q).Brand = %q, want %q", tt.number, got.Brand, tt.wantBrand)
			}
			if got.LuhnValid != tt.wantLuhn {
				t.Errorf("Detect(%q).LuhnValid = %v, want %v", tt.number, got.LuhnValid, tt.wantLuhn)
			}
		})
	}
}

func TestDetectIsStateless(t *testing.T) {
	first := Detect("4111111111111111")
	second := Detect("4111111111111111")
	if first != second {
		t.Errorf("repeated Detect calls differ: %+v vs %+v", first, second)
	}
}

func TestLuhn(t *testing.T) {
	tests := []struct {
		digits string
		want   bool
	}{
		{"4111111111111111", true},
		{"79927398713", true},
		{"79927398710", false},
		{"0", true},
		{"", false},
		{"12ab", false},
	}

	for _, tt := range tests {
		if got := Luhn(tt.digits); got != tt.want {
			t.Errorf("Luhn(%q) = %v, want %v", tt.digits, got, tt.want)
		}
	}
}
