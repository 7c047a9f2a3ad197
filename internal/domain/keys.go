package domain

// Store key prefixes. Values under each key are JSON.
const (
	EntryKeyPrefix    = "time_entry_"
	SettingsKeyPrefix = "settings_"
	ProfileKeyPrefix  = "profile_"
)

// EntryKey is the key of a user's entry for day date.
func EntryKey(userID, date string) string {
	return EntryKeyPrefix + userID + "_" + date
}

// EntryPrefix matches every entry key of userID. It also matches users whose
// id extends userID with "_", so scans must check the decoded owner.
func EntryPrefix(userID string) string {
	return EntryKeyPrefix + userID + "_"
}

// SettingsKey is the key of a user's settings document.
func SettingsKey(userID string) string {
	return SettingsKeyPrefix + userID
}

// ProfileKey is the key of a user's profile document.
func ProfileKey(userID string) string {
	return ProfileKeyPrefix + userID
}
