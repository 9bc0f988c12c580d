package integration

import "strings"

// keys builds store keys namespaced by provider tag.
//
// Token entries are keyed {org}:{user}; the connection record is keyed
// {user}:{org}. Both orders are part of the storage contract shared with
// other readers of the store, so they are kept as they are.
type keys struct {
	provider string
}

func (k keys) state(orgID, userID string) string {
	return k.build("state", orgID, userID)
}

func (k keys) codeVerifier(orgID, userID string) string {
	return k.build("code_verifier", orgID, userID)
}

func (k keys) accessToken(orgID, userID string) string {
	return k.build("access_token", orgID, userID)
}

func (k keys) refreshToken(orgID, userID string) string {
	return k.build("refresh_token", orgID, userID)
}

func (k keys) itemType(orgID, userID string) string {
	return k.build("item_type", orgID, userID)
}

func (k keys) credentials(userID, orgID string) string {
	return k.build("credentials", userID, orgID)
}

func (k keys) build(field, first, second string) string {
	var b strings.Builder
	b.Grow(len(k.provider) + len(field) + len(first) + len(second) + 3)
	b.WriteString(k.provider)
	b.WriteByte('_')
	b.WriteString(field)
	b.WriteByte(':')
	b.WriteString(first)
	b.WriteByte(':')
	b.WriteString(second)
	return b.String()
}
