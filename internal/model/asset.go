package model

// Category tags an asset with the group it was sourced from.
type Category string

const (
	CategoryMetal  Category = "Metal"
	CategoryCrypto Category = "Crypto"
	CategoryETF    Category = "ETF"
	CategorySP500  Category = "SP500"
	CategoryGold   Category = "Gold"
	CategoryOther  Category = "Other"
)

// AssetKey identifies one instrument. Key is the column name the front-end
// sees; Symbol is the price-provider ticker.
type AssetKey struct {
	Key      string
	Symbol   string
	Name     string
	Category Category
}

// Listing is one (symbol, name) pair returned by a symbol list provider.
type Listing struct {
	Symbol string
	Name   string
}

// TickerInfo is one entry of the ticker-metadata artifact.
type TickerInfo struct {
	Symbol string   `json:"symbol"`
	Name   string   `json:"name"`
	Type   Category `json:"type"`
}
