package session

import "strings"

// DeviceClass is the category assigned to a requesting device based on its
// user agent string.
type DeviceClass string

const (
	DeviceClassTV      DeviceClass = "tv"
	DeviceClassTablet  DeviceClass = "tablet"
	DeviceClassMobile  DeviceClass = "mobile"
	DeviceClassPC      DeviceClass = "pc"
	DeviceClassUnknown DeviceClass = "unknown"
)

// classRule pairs a category with its case-insensitive keyword predicates.
type classRule struct {
	class    DeviceClass
	keywords []string
}

// classRules is evaluated in order, first match wins. The order matters:
// smart-TV platforms embed generic tokens ("android tv" contains "android"),
// so TV is checked before Tablet, Tablet before Mobile, Mobile before PC.
var classRules = []classRule{
	{DeviceClassTV, []string{
		"smart-tv", "smarttv", "googletv", "google tv", "android tv", "appletv", "apple tv",
		"hbbtv", "netcast", "web0s", "webos.tv", "tizen", "bravia", "viera", "philipstv",
		"roku", "shield", "chromecast", "crkey", "mibox", "fire tv", "firetv",
		"aftb", "aftt", "afts", "aftm", "tivo", "mag-",
	}},
	{DeviceClassTablet, []string{
		"ipad", "tablet", "kindle", "silk", "playbook",
		"nexus 7", "nexus 9", "nexus 10", "sm-t", "gt-p",
	}},
	{DeviceClassMobile, []string{
		"iphone", "ipod", "android", "mobile", "phone",
		"blackberry", "opera mini", "iemobile", "webos phone",
	}},
	{DeviceClassPC, []string{
		"windows nt", "macintosh", "mac os x", "cros", "x11", "linux", "ubuntu", "fedora",
	}},
}

// ClassifyUserAgent maps a raw client signature to a device category. It is
// a pure function over the signature string.
func ClassifyUserAgent(userAgent string) DeviceClass {
	ua := strings.ToLower(userAgent)
	if ua == "" {
		return DeviceClassUnknown
	}

	for _, rule := range classRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(ua, keyword) {
				return rule.class
			}
		}
	}
	return DeviceClassUnknown
}

// IsValid reports whether the class is one of the known categories.
func (c DeviceClass) IsValid() bool {
	switch c {
	case DeviceClassTV, DeviceClassTablet, DeviceClassMobile, DeviceClassPC, DeviceClassUnknown:
		return true
	}
	return false
}

func (c DeviceClass) String() string {
	return string(c)
}
