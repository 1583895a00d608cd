package bookings

// slotTemplate is the fixed daily template: 09:00 through 17:30 in 30-minute
// steps, 18 labels total.
var slotTemplate = []string{
	"09:00", "09:30",
	"10:00", "10:30",
	"11:00", "11:30",
	"12:00", "12:30",
	"13:00", "13:30",
	"14:00", "14:30",
	"15:00", "15:30",
	"16:00", "16:30",
	"17:00", "17:30",
}

// SlotTemplate returns a copy of the daily slot labels in template order.
func SlotTemplate() []string {
	out := make([]string, len(slotTemplate))
	copy(out, slotTemplate)
	return out
}

// AvailableSlots returns the template labels not present in booked, preserving
// template order. Booked labels outside the template are ignored.
func AvailableSlots(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}
	out := make([]string, 0, len(slotTemplate))
	for _, slot := range slotTemplate {
		if _, ok := taken[slot]; !ok {
			out = append(out, slot)
		}
	}
	return out
}

// IsTemplateSlot reports whether label is one of the daily template slots.
func IsTemplateSlot(label string) bool {
	for _, slot := range slotTemplate {
		if slot == label {
			return true
		}
	}
	return false
}
