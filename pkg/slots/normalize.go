package slots

// Normalize flattens the upstream schedule payload into a uniform slot list.
// The upstream API is not guaranteed to return an array (it may answer with an
// error object), and field names vary between response variants, so every
// lookup degrades instead of failing. The output preserves the input iteration
// order: per location, entries under "slots" first, then "availableDates".
func Normalize(payload interface{}) []Slot {
	out := []Slot{}

	locations, ok := payload.([]interface{})
	if !ok {
		return out
	}

	for _, entry := range locations {
		location, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}

		name := stringField(location, "locationName", "location")
		if name == "" {
			name = "Unknown"
		}
		consulate := stringField(location, "consulateName", "consulate")
		if consulate == "" {
			consulate = name
		}

		if raw, ok := location["slots"].([]interface{}); ok {
			for _, item := range raw {
				slot, ok := item.(map[string]interface{})
				if !ok {
					continue
				}
				out = append(out, Slot{
					Location:  name,
					Consulate: consulate,
					Date:      stringField(slot, "date", "appointmentDate"),
					Time:      optionalField(slot, "time", "appointmentTime"),
					Available: true,
				})
			}
		}

		if raw, ok := location["availableDates"].([]interface{}); ok {
			for _, item := range raw {
				out = append(out, availableDateSlot(name, consulate, item))
			}
		}
	}

	return out
}

// availableDateSlot handles the two shapes of an availableDates entry: a bare
// date string, or an object with a date and an optional time
func availableDateSlot(name, consulate string, item interface{}) Slot {
	slot := Slot{
		Location:  name,
		Consulate: consulate,
		Available: true,
	}
	switch v := item.(type) {
	case string:
		slot.Date = v
	case map[string]interface{}:
		slot.Date = stringField(v, "date")
		slot.Time = optionalField(v, "time")
	}
	return slot
}

// stringField returns the first non-empty string among the given keys
func stringField(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// optionalField is like stringField but keeps absence distinct from empty
func optionalField(m map[string]interface{}, keys ...string) *string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return &s
		}
	}
	return nil
}
