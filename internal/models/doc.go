// Package models holds the domain types shared by the trustvote client and
// server: identities (candidates), ledger votes, and the explicit payload
// structs used to write identities to the store.
package models
