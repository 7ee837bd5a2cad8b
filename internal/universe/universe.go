package universe

import (
	"sort"
	"strings"

	"GoldLens/internal/logger"
	"GoldLens/internal/model"
)

// Universe is the run's asset set in enumeration order.
type Universe struct {
	assets []model.AssetKey
	byKey  map[string]int
}

// NormalizeSymbol converts a listing symbol to the price-provider
// convention: trimmed, upper case, "." replaced by "-".
func NormalizeSymbol(s string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), ".", "-")
}

// Build assembles the universe in the order reference, metals, crypto, etf,
// other, sp500. sp500 is the live constituent list; when empty the static
// fallback of def is used.
//
// Symbols are normalized before use. A symbol seen twice is collapsed to its
// first occurrence. Two different raw symbols that normalize to the same
// provider symbol, or two symbols sharing a key, are logged and the later one
// is dropped.
func Build(def *Definition, sp500 []model.Listing) *Universe {
	b := &builder{
		u:       &Universe{byKey: make(map[string]int)},
		symbols: make(map[string]string),
	}

	ref := def.Reference
	if ref.Key == "" {
		ref.Key = "Gold"
	}
	b.add(ref, model.CategoryGold)
	for _, e := range def.Metals {
		b.add(e, model.CategoryMetal)
	}
	for _, e := range def.Crypto {
		b.add(e, model.CategoryCrypto)
	}
	for _, e := range def.ETF {
		b.add(e, model.CategoryETF)
	}
	for _, e := range def.Other {
		b.add(e, model.CategoryOther)
	}

	if len(sp500) == 0 && len(def.SP500) > 0 {
		logger.L.Infof("universe: using static S&P 500 list (%d symbols)", len(def.SP500))
		for _, s := range def.SP500 {
			sp500 = append(sp500, model.Listing{Symbol: s})
		}
	}
	for _, l := range sp500 {
		sym := NormalizeSymbol(l.Symbol)
		b.addRaw(l.Symbol, Entry{Key: sym, Symbol: sym, Name: l.Name}, model.CategorySP500)
	}

	if b.dropped > 0 {
		logger.L.Warnf("universe: %d entries dropped as duplicates or collisions", b.dropped)
	}
	logger.L.Infof("universe: %d assets", len(b.u.assets))
	return b.u
}

type builder struct {
	u       *Universe
	symbols map[string]string // normalized symbol -> raw symbol first seen
	dropped int
}

func (b *builder) add(e Entry, cat model.Category) {
	b.addRaw(e.Symbol, e, cat)
}

func (b *builder) addRaw(raw string, e Entry, cat model.Category) {
	sym := NormalizeSymbol(e.Symbol)
	if sym == "" {
		return
	}
	key := strings.TrimSpace(e.Key)
	if key == "" {
		key = sym
	}
	name := strings.TrimSpace(e.Name)
	if name == "" {
		name = key
	}

	if first, ok := b.symbols[sym]; ok {
		if strings.TrimSpace(first) != strings.TrimSpace(raw) {
			logger.L.Warnf("universe: symbols %q and %q both normalize to %s, keeping %q", first, raw, sym, first)
		} else {
			logger.L.Debugf("universe: duplicate symbol %s collapsed", sym)
		}
		b.dropped++
		return
	}
	if i, ok := b.u.byKey[key]; ok {
		logger.L.Warnf("universe: key %q already used by %s, dropping %s", key, b.u.assets[i].Symbol, sym)
		b.dropped++
		return
	}

	b.symbols[sym] = raw
	b.u.byKey[key] = len(b.u.assets)
	b.u.assets = append(b.u.assets, model.AssetKey{Key: key, Symbol: sym, Name: name, Category: cat})
}

// Len returns the number of assets.
func (u *Universe) Len() int { return len(u.assets) }

// Assets returns the assets in enumeration order.
func (u *Universe) Assets() []model.AssetKey {
	out := make([]model.AssetKey, len(u.assets))
	copy(out, u.assets)
	return out
}

// Symbols returns provider symbols in enumeration order.
func (u *Universe) Symbols() []string {
	out := make([]string, len(u.assets))
	for i, a := range u.assets {
		out[i] = a.Symbol
	}
	return out
}

// Lookup returns the asset registered under key.
func (u *Universe) Lookup(key string) (model.AssetKey, bool) {
	i, ok := u.byKey[key]
	if !ok {
		return model.AssetKey{}, false
	}
	return u.assets[i], true
}

// Tickers returns the ticker metadata, one entry per asset, sorted by key.
func (u *Universe) Tickers() []model.TickerInfo {
	out := make([]model.TickerInfo, 0, len(u.assets))
	for _, a := range u.assets {
		out = append(out, model.TickerInfo{Symbol: a.Key, Name: a.Name, Type: a.Category})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
