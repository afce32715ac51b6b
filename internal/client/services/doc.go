// Package services holds the client application services: the view state
// machine, the sync engine that mirrors the remote store, identity login,
// the voting queue controller and the dispatcher that runs optimistic
// commands' remote effects in the background.
package services
