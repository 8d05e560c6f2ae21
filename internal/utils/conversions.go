package utils

// FirstNonEmpty returns the first non-empty string from the given values
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
