// Package api implements the HTTP surface of the gateway: the five
// generation endpoints, the creation read endpoints, and the envelope and
// error-mapping conventions they share. Business declines are rendered as
// unsuccessful envelopes with a 200 status; only faults use error statuses.
package api
