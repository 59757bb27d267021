package secrets

// Sentinel values used on the write path of redacted and hashed fields.
const (
	// Redacted on write means "keep the stored value unchanged"; on read it
	// is what clients see in place of any non-empty stored value.
	Redacted = "__REDACTED__"
	// Clear on write means "erase the stored value".
	Clear = "__CLEAR__"
)

// Redact returns the client-visible form of a stored redacted field.
func Redact(stored string) string {
	if stored == "" {
		return ""
	}
	return Redacted
}

// ApplyRedactedUpdate resolves an incoming redacted-field value against the
// stored ciphertext: the Redacted sentinel keeps the stored value, Clear
// erases it, and anything else is encrypted and stored.
func (c *Cipher) ApplyRedactedUpdate(stored, incoming string) (string, error) {
	switch incoming {
	case Redacted:
		return stored, nil
	case Clear:
		return "", nil
	default:
		return c.Encrypt(incoming)
	}
}

// ApplyHashedUpdate is the sentinel discipline for hashed fields: Redacted
// keeps the stored hash, Clear erases it, anything else is hashed.
func ApplyHashedUpdate(stored, incoming string) (string, error) {
	switch incoming {
	case Redacted:
		return stored, nil
	case Clear:
		return "", nil
	default:
		return HashPassword(incoming)
	}
}
