package refdata

import "strings"

// wmiSet holds the registered World Manufacturer Identifier codes used as a
// VIN plausibility filter. A candidate whose first three characters are not
// in this set is discarded before any check-digit math.
var wmiSet = map[string]struct{}{}

func init() {
	for _, code := range wmiCodes {
		wmiSet[code] = struct{}{}
	}
}

var wmiCodes = []string{
	"1C3", "1C4", "1C6", "1C8", "1C9", "1FA", "1FB", "1FC",
	"1FD", "1FM", "1FT", "1FU", "1G1", "1G2", "1G3", "1G4",
	"1G6", "1GC", "1GN", "1GT", "1GY", "1HG", "1HJ", "1HM",
	"2G1", "2G2", "2G3", "2G4", "2G6", "2GC", "2GN", "2GT",
	"2HG", "2T1", "2T2", "3FA", "3HG", "3N1", "3VW", "3WK",
	"4F2", "4JG", "4M2", "4S2", "4T1", "4T2", "4T3", "5J6",
	"5N1", "5YJ", "6FP", "6G1", "6G2", "6G3", "6H8", "8AD",
	"8AF", "8AG", "8AJ", "8AP", "8AW", "8FA", "8GC", "9BW",
	"JAA", "JAL", "JF1", "JF2", "JHL", "JHM", "JHN", "JM1",
	"JM3", "JMB", "JME", "JMY", "JN1", "JN3", "JSA", "JS1",
	"JT1", "JT2", "JT3", "JT4", "JT5", "JT6", "JT8", "JTD",
	"JTE", "JTF", "JTH", "JTJ", "KL1", "KL2", "KL3", "KL5",
	"KMF", "KMH", "KM8", "KNA", "KNC", "KND", "KNE", "KNM",
	"KPA", "KYT", "L56", "L5N", "LBE", "LBV", "LDC", "LE4",
	"LFV", "LJC", "LTV", "LVS", "MA1", "MA3", "MA7", "MB1",
	"MLC", "NM0", "NM1", "NM4", "SAD", "SAJ", "SAL", "SB1",
	"SCC", "SFA", "SJM", "SJN", "TMB", "TMC", "TRU", "UU1",
	"UU2", "UU3", "VF1", "VF2", "VF3", "VF4", "VF7", "VF8",
	"VR1", "VS7", "VSS", "W09", "W0L", "WBA", "WBS", "WBX",
	"WD0", "WDB", "WDC", "WDD", "WDF", "WDW", "WMW", "WP0",
	"WP1", "WV1", "WV2", "WV3", "WVG", "WVW", "XTA", "XTB",
	"XTC", "XTD", "XTE", "YK1", "YS3", "YV1", "YV3", "YV4",
	"YV5", "ZAM", "ZAR", "ZCF", "ZFA", "ZFF", "ZLA", "ZYA",
}

// ValidWMI reports whether the first three characters of vin are a
// registered manufacturer code. vin must be at least 3 characters.
func ValidWMI(vin string) bool {
	if len(vin) < 3 {
		return false
	}
	_, ok := wmiSet[strings.ToUpper(vin[:3])]
	return ok
}
