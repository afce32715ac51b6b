package models

import "time"

func seedDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedIdentities returns the identities shown before the first successful
// refresh. Offline mode also loads them into the in-memory store.
func SeedIdentities() []Identity {
	return []Identity{
		{ID: 996, Handle: "@atomic996", Name: "Atomic", TrustScore: 156, FirstSeen: seedDate("2024-01-15")},
		{ID: 1, Handle: "@alice_crypto", Name: "Alice Web3", TrustScore: 89, FirstSeen: seedDate("2024-05-01")},
		{ID: 2, Handle: "@bob_builds", Name: "Bob the Builder", TrustScore: 45, FirstSeen: seedDate("2024-05-02")},
		{ID: 3, Handle: "@charlie_dao", Name: "Charlie DAO", TrustScore: 120, FirstSeen: seedDate("2024-05-03")},
		{ID: 4, Handle: "@dana_eth", Name: "Dana Ether", TrustScore: 67, FirstSeen: seedDate("2024-05-04")},
		{ID: 5, Handle: "@evan_solana", Name: "Evan Sol", TrustScore: 32, FirstSeen: seedDate("2024-05-05")},
		{ID: 6, Handle: "@fiona_art", Name: "Fiona NFT", TrustScore: 95, FirstSeen: seedDate("2024-05-06")},
		{ID: 7, Handle: "@george_infra", Name: "George Nodes", TrustScore: 28, FirstSeen: seedDate("2024-05-07")},
		{ID: 8, Handle: "@hannah_yield", Name: "Hannah DeFi", TrustScore: 140, FirstSeen: seedDate("2024-05-08")},
		{ID: 9, Handle: "@ian_code", Name: "Ian Protocol", TrustScore: 54, FirstSeen: seedDate("2024-05-09")},
		{ID: 10, Handle: "@jenny_tx", Name: "Jenny Ledger", TrustScore: 72, FirstSeen: seedDate("2024-05-10")},
	}
}
