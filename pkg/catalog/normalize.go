package catalog

import (
	"strconv"
	"strings"
)

// tduNames maps the company-name variants Power to Choose uses to the
// stable area codes the rest of the system keys on.
var tduNames = map[string]string{
	"CENTERPOINT":                             "CENTERPOINT",
	"CENTERPOINT ENERGY":                      "CENTERPOINT",
	"CENTERPOINT ENERGY HOUSTON":              "CENTERPOINT",
	"CENTERPOINT ENERGY HOUSTON ELECTRIC":     "CENTERPOINT",
	"CENTERPOINT ENERGY HOUSTON ELECTRIC LLC": "CENTERPOINT",
	"ONCOR":                                   "ONCOR",
	"ONCOR ELECTRIC":                          "ONCOR",
	"ONCOR ELECTRIC DELIVERY":                 "ONCOR",
	"ONCOR ELECTRIC DELIVERY COMPANY":         "ONCOR",
	"AEP TEXAS CENTRAL":                       "AEP_CENTRAL",
	"AEP TEXAS CENTRAL COMPANY":               "AEP_CENTRAL",
	"AEP CENTRAL":                             "AEP_CENTRAL",
	"AEP TEXAS NORTH":                         "AEP_NORTH",
	"AEP TEXAS NORTH COMPANY":                 "AEP_NORTH",
	"AEP NORTH":                               "AEP_NORTH",
	"TEXAS-NEW MEXICO POWER":                  "TNMP",
	"TEXAS-NEW MEXICO POWER COMPANY":          "TNMP",
	"TNMP":                                    "TNMP",
	"LUBBOCK POWER":                           "LPL",
	"LUBBOCK POWER & LIGHT":                   "LPL",
	"LPL":                                     "LPL",
}

// NormalizeTDUName maps a TDU company name to its area code. Unrecognized
// names pass through uppercased so new delivery areas are visible rather
// than silently dropped.
func NormalizeTDUName(raw string) string {
	if raw == "" {
		return "UNKNOWN"
	}
	upper := strings.ToUpper(strings.TrimSpace(raw))

	if code, ok := tduNames[upper]; ok {
		return code
	}
	for name, code := range tduNames {
		if strings.Contains(upper, name) || strings.Contains(name, upper) {
			return code
		}
	}
	return upper
}

// ParsePrice parses a benchmark price into cents per kWh. Power to Choose
// exports rates as decimal dollars (0.1600 = 16 cents); anything below 1.0
// is treated as dollars and converted.
func ParsePrice(raw string) (float64, bool) {
	num, ok := parseFloat(raw)
	if !ok {
		return 0, false
	}
	if num < 1.0 {
		return num * 100, true
	}
	return num, true
}

func parseFloat(raw string) (float64, bool) {
	cleaned := strings.NewReplacer("$", "", "¢", "", ",", "", "%", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// parseInt tolerates suffixes like "12 months".
func parseInt(raw string) (int, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if fields := strings.Fields(cleaned); len(fields) > 0 {
		cleaned = fields[0]
	}
	if cleaned == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return int(num), true
}

func parseBool(raw string) bool {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TRUE", "YES", "1":
		return true
	}
	return false
}

func sanitizeString(raw string) string {
	return strings.TrimSpace(raw)
}

// sanitizeURL fills in scheme-relative and site-relative URLs from the
// catalogue source.
func sanitizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" || strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	if strings.HasPrefix(url, "/") {
		return "https://www.powertochoose.org" + url
	}
	return url
}
