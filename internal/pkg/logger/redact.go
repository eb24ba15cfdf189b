package logger

// RedactSecret masks a credential value for safe logging.
// "rahasia-panjang" → "ra***"
// Short values (≤2 chars) are fully masked: "ab" → "***"
func RedactSecret(secret string) string {
	if len(secret) > 2 {
		return secret[:2] + "***"
	}
	return "***"
}
