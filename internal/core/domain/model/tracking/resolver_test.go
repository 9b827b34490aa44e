package tracking_test

import (
	"testing"

	"yuandi/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
)

func TestDefaultResolver_Resolve(t *testing.T) {
	r := tracking.DefaultResolver()

	testCases := []struct {
		name     string
		carrier  string
		number   string
		expected string
		ok       bool
	}{
		{
			name:     "CJ appends the number as a query value",
			carrier:  "CJ대한통운",
			number:   "123456789",
			expected: "https://www.cjlogistics.com/ko/tool/parcel/tracking?gnbInvcNo=123456789",
			ok:       true,
		},
		{
			name:     "FedEx",
			carrier:  "FedEx",
			number:   "7777",
			expected: "https://www.fedex.com/fedextrack/?trknbr=7777",
			ok:       true,
		},
		{
			name:     "EMS embeds the number as a path segment",
			carrier:  "EMS",
			number:   "EE123456789KR",
			expected: "https://service.epost.go.kr/trace.RetrieveEmsRigiTraceList.comm/EE123456789KR",
			ok:       true,
		},
		{
			name:     "appended form keeps the trimmed number verbatim",
			carrier:  "로젠택배",
			number:   " 12-34/5 ",
			expected: "https://www.ilogen.com/web/personal/trace/12-34/5",
			ok:       true,
		},
		{
			name:     "appended query form does not plus-encode",
			carrier:  "UPS",
			number:   "1Z 999",
			expected: "https://www.ups.com/track?loc=ko_KR&tracknum=1Z 999",
			ok:       true,
		},
		{
			name:     "placeholder form path-escapes the number",
			carrier:  "EMS",
			number:   "EE 1/2",
			expected: "https://service.epost.go.kr/trace.RetrieveEmsRigiTraceList.comm/EE%201%2F2",
			ok:       true,
		},
		{
			name:    "unknown carrier",
			carrier: "順豐速運",
			number:  "SF100",
		},
		{
			name:    "blank number",
			carrier: "DHL",
			number:  "  ",
		},
		{
			name:   "blank carrier",
			number: "123",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := r.Resolve(tc.carrier, tc.number)

			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNewTemplateResolver_SkipsBlankEntries(t *testing.T) {
	r := tracking.NewTemplateResolver(map[string]string{
		"":        "https://example.com/?n=",
		"Empty":   " ",
		"Courier": "https://courier.example/?n=",
	})

	assert.ElementsMatch(t, []string{"Courier"}, r.Carriers())
}

func TestTemplateResolver_DoesNotShareCallerMap(t *testing.T) {
	table := map[string]string{"Courier": "https://courier.example/?n="}
	r := tracking.NewTemplateResolver(table)

	table["Courier"] = "https://changed.example/?n="

	got, ok := r.Resolve("Courier", "1")
	assert.True(t, ok)
	assert.Equal(t, "https://courier.example/?n=1", got)
}
