package market

// Asset is one tradable cryptocurrency as reported by the price feed.
// A feed refresh replaces every Asset wholesale; nothing mutates one in place.
type Asset struct {
	Symbol       string
	Name         string
	Image        string
	CurrentPrice float64

	// Percentage change over the three feed windows.
	Change1h  float64
	Change24h float64
	Change7d  float64
}

// Valid reports whether the asset is well-formed enough to trade against.
// Malformed feed records are dropped at the boundary instead of propagating
// undefined fields into the ledger.
func (a Asset) Valid() bool {
	return a.Symbol != "" && a.Name != "" && a.CurrentPrice >= 0
}
