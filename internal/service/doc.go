// Package service holds the application core of the gateway: the quota gate
// that admits or declines requests, and the creation service that runs each
// admitted request through its provider adapter, persists the result, and
// accounts free-tier usage.
package service
