// Package httpapi exposes the HubSpot connect flow over HTTP.
//
//	POST /integrations/hubspot/authorize       user_id, org_id, item_type → {"authorization_url"}
//	GET  /integrations/hubspot/oauth2callback  state, code → success page
//	POST /integrations/hubspot/credentials     user_id, org_id, item_type → connection descriptor
//	POST /integrations/hubspot/load            credentials, item_type → {"items"} or {"error"}
//
// Request bodies are form-encoded (urlencoded or multipart). Errors render
// as {"detail": "..."} with a 4xx or 5xx status; listing failures are soft
// and return 200 with {"error": "..."}.
package httpapi
