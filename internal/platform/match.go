package platform

import "strings"

// Match picks the device whose name contains selector (case-sensitive). An
// empty selector means the direction's default device. A non-empty selector
// that matches nothing also falls back to the default rather than failing;
// fellBack reports that so callers can log it. ErrNoDevices is the only
// failure: an empty device list.
func Match(devices []DeviceInfo, selector string) (dev DeviceInfo, fellBack bool, err error) {
	if len(devices) == 0 {
		return DeviceInfo{}, false, ErrNoDevices
	}
	if selector != "" {
		for _, d := range devices {
			if strings.Contains(d.Name, selector) {
				return d, false, nil
			}
		}
		fellBack = true
	}
	for _, d := range devices {
		if d.Default {
			return d, fellBack, nil
		}
	}
	return devices[0], fellBack, nil
}
