package enquiry

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name    string
		phone   string
		country string
		want    string
	}{
		{"uk leading zero", "07911 123456", "GB", "+447911123456"},
		{"uk already prefixed", "447911123456", "GB", "+447911123456"},
		{"us ten digits", "415-555-0199", "US", "+14155550199"},
		{"ca eleven digits", "14165550199", "CA", "+14165550199"},
		{"already e164", "+33 1 42 68 53 00", "FR", "+33142685300"},
		{"long unknown country", "0049301234567", "DE", "+0049301234567"},
		{"short number left alone", "123456", "US", "123456"},
		{"empty", "", "GB", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizePhone(tc.phone, tc.country); got != tc.want {
				t.Fatalf("NormalizePhone(%q, %q) = %q, want %q", tc.phone, tc.country, got, tc.want)
			}
		})
	}
}
