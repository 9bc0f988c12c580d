// Package integration implements the HubSpot "connect your account" flow.
//
// A Service mints a signed, single-use authorization state for a
// (user, organization) pair, validates the provider redirect against the
// stored state, exchanges the code for tokens and stores them in an expiring
// kvstore.Store with a TTL derived from the provider lifetime. The read path
// resolves the stored connection record and lists contacts or companies
// through the provider API, projected onto NormalizedItem.
//
// Store layout (all entries expire):
//
//	hubspot_state:{org}:{user}          pending authorization state
//	hubspot_code_verifier:{org}:{user}  PKCE verifier, when enabled
//	hubspot_access_token:{org}:{user}
//	hubspot_refresh_token:{org}:{user}
//	hubspot_item_type:{org}:{user}
//	hubspot_credentials:{user}:{org}    connection record without tokens
package integration
