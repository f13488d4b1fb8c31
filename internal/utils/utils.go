package utils

// MaskUserID masks a user identifier for logging
func MaskUserID(id string) string {
	if len(id) > 6 {
		return id[:3] + "******" + id[len(id)-3:]
	}
	return "******"
}
