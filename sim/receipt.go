package sim

// Side distinguishes the two market order kinds.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// TradeReceipt reports a successfully executed trade.
type TradeReceipt struct {
	Side      Side
	Symbol    string
	AssetName string
	Amount    float64 // cash amount traded
	Units     float64 // asset units moved
	Price     float64 // snapshot price the fill used
	Cash      float64 // cash balance after the trade
	NetWorth  float64 // net worth after the trade
}

// TradeListener is notified after each successful trade, outside the engine
// lock. UI collaborators use it for success notifications.
type TradeListener interface {
	OnTrade(TradeReceipt)
}
