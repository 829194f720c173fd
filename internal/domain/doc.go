// Package domain contains the core domain types of the application:
// creations, capabilities, and subscription plans. These types have no
// dependencies on transport, persistence, or external providers.
package domain
