package postprocess

import "strings"

// AddressPlaceholder is substituted when the template carries no location at
// all. Kept deliberately generic so a human reviewer spots it immediately.
const AddressPlaceholder = "City, State/Province, Country"

// IsCompleteAddress reports whether a location string looks usable for a
// resume header: non-empty, at least five characters, and at least two
// comma-separated components.
func IsCompleteAddress(location string) bool {
	location = strings.TrimSpace(location)
	if len(location) < 5 {
		return false
	}
	parts := strings.Split(location, ",")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return false
		}
	}
	return true
}

// RepairAddress completes any location that fails IsCompleteAddress. A wholly
// absent value becomes the literal placeholder; a single remaining component
// gets exactly one country suffix; several components are rejoined with empty
// ones dropped. A value still too short after rebuilding is garbage and
// becomes the placeholder too. Complete values are never touched, and every
// repaired value is itself complete, which keeps the pass idempotent.
func RepairAddress(doc *Document) {
	if doc.Contact == nil {
		doc.Contact = map[string]string{}
	}
	location := strings.TrimSpace(doc.Contact["location"])
	if IsCompleteAddress(location) {
		return
	}

	var parts []string
	for _, p := range strings.Split(location, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		doc.Contact["location"] = AddressPlaceholder
	case 1:
		doc.Contact["location"] = parts[0] + ", Country"
	default:
		rejoined := strings.Join(parts, ", ")
		if !IsCompleteAddress(rejoined) {
			rejoined = AddressPlaceholder
		}
		doc.Contact["location"] = rejoined
	}
}
