package domain

// Language is the UI language preference.
type Language string

const (
	LanguageEN Language = "EN"
	LanguageHI Language = "HI"
)

func (l Language) String() string { return string(l) }

func (l Language) IsValid() bool {
	switch l {
	case LanguageEN, LanguageHI:
		return true
	}
	return false
}

// ChatRole tags one turn of an assistant conversation.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

func (r ChatRole) String() string { return string(r) }

func (r ChatRole) IsValid() bool {
	switch r {
	case ChatRoleUser, ChatRoleAssistant:
		return true
	}
	return false
}

// Community author roles seen in seed data. The set is open: user-submitted
// posts may carry any role string.
const (
	RoleUser       = "User"
	RoleBotanist   = "Botanist"
	RoleFarmer     = "Farmer"
	RoleAgriExpert = "Agri-Expert"
	RoleSystem     = "System"
)

// Tracker severity labels.
const (
	SeverityHigh        = "High"
	SeverityModerate    = "Moderate"
	SeveritySolved      = "Solved"
	SeverityFullyHealed = "Fully healed"
)
