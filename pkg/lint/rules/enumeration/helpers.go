package enumeration

// contains reports whether needle is one of the allowed values.
func contains(allowed []string, needle string) bool {
	for _, v := range allowed {
		if v == needle {
			return true
		}
	}
	return false
}
