// Package sanitizer reduces untrusted third-party text to plain text.
//
// CRM records come from whatever the account owner typed into HubSpot, so
// names and domains may carry markup. PlainText removes it:
//
//	name := sanitizer.PlainText(`<b>Acme</b> &amp; Co`) // "Acme & Co"
package sanitizer
