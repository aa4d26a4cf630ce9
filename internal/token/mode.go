package token

// Mode is the set of run flags restricting which Specs are searched.
// The flags are independent and combine with a logical AND, so setting
// both UnicodeOnly and NonUnicodeOnly selects nothing.
type Mode struct {
	Quick          bool // skip the BIP32 extended keys
	UnicodeOnly    bool
	NonUnicodeOnly bool
}

// Allows reports whether s is searched under m.
func (m Mode) Allows(s Spec) bool {
	if m.Quick && !s.Quick {
		return false
	}
	if m.UnicodeOnly && !s.Unicode {
		return false
	}
	if m.NonUnicodeOnly && s.Unicode {
		return false
	}
	return true
}

// Select filters specs by m, keeping their order.
func Select(specs []Spec, m Mode) []Spec {
	var active []Spec
	for _, s := range specs {
		if m.Allows(s) {
			active = append(active, s)
		}
	}
	return active
}

// Active is Select applied to the Registry.
func Active(m Mode) []Spec {
	return Select(registry, m)
}
