// Package tracking maps a carrier display name and tracking number to the
// carrier's public tracking page.
package tracking

import (
	"net/url"
	"strings"
)

// NumberPlaceholder marks where the tracking number goes in a template that
// embeds it as a path segment; the number is path-escaped there. Templates
// without it get the trimmed number appended verbatim, whether they end in a
// query value or a path.
const NumberPlaceholder = "{number}"

// Resolver resolves tracking URLs. Unknown carriers are not an error: shipment
// data may name carriers outside the configured table.
type Resolver interface {
	Resolve(carrier, trackingNumber string) (string, bool)
}

// TemplateResolver is a Resolver backed by a carrier name to URL template table.
// It is immutable after construction.
type TemplateResolver struct {
	templates map[string]string
}

// NewTemplateResolver copies the table; blank names or templates are skipped.
func NewTemplateResolver(templates map[string]string) *TemplateResolver {
	table := make(map[string]string, len(templates))
	for carrier, tpl := range templates {
		carrier = strings.TrimSpace(carrier)
		tpl = strings.TrimSpace(tpl)
		if carrier == "" || tpl == "" {
			continue
		}
		table[carrier] = tpl
	}
	return &TemplateResolver{templates: table}
}

// DefaultResolver resolves against DefaultTemplates.
func DefaultResolver() *TemplateResolver {
	return NewTemplateResolver(DefaultTemplates())
}

// DefaultTemplates is the carrier table the shop ships with.
func DefaultTemplates() map[string]string {
	return map[string]string{
		"CJ대한통운": "https://www.cjlogistics.com/ko/tool/parcel/tracking?gnbInvcNo=",
		"한진택배":   "https://www.hanjin.com/kor/CMS/DeliveryMgr/WaybillResult.do?mCode=MN038&schLang=KR&wblnumText2=",
		"롯데택배":   "https://www.lotteglogis.com/home/reservation/tracking/linkView?InvNo=",
		"우체국택배":  "https://service.epost.go.kr/trace.RetrieveDomRigiTraceList.comm?sid1=",
		"로젠택배":   "https://www.ilogen.com/web/personal/trace/",
		"DHL":    "https://www.dhl.com/kr-ko/home/tracking/tracking-express.html?submit=1&tracking-id=",
		"FedEx":  "https://www.fedex.com/fedextrack/?trknbr=",
		"UPS":    "https://www.ups.com/track?loc=ko_KR&tracknum=",
		"EMS":    "https://service.epost.go.kr/trace.RetrieveEmsRigiTraceList.comm/" + NumberPlaceholder,
	}
}

// Resolve returns ("", false) when either input is blank or the carrier is unknown.
func (r *TemplateResolver) Resolve(carrier, trackingNumber string) (string, bool) {
	carrier = strings.TrimSpace(carrier)
	trackingNumber = strings.TrimSpace(trackingNumber)
	if carrier == "" || trackingNumber == "" {
		return "", false
	}

	tpl, ok := r.templates[carrier]
	if !ok {
		return "", false
	}

	if strings.Contains(tpl, NumberPlaceholder) {
		return strings.ReplaceAll(tpl, NumberPlaceholder, url.PathEscape(trackingNumber)), true
	}
	return tpl + trackingNumber, true
}

// Carriers lists the configured carrier names.
func (r *TemplateResolver) Carriers() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}
