package coinledger

// Asset identifies a cryptocurrency or fiat currency by its canonical
// identifier (e.g. "BTC", "ETH", "eip155:1/erc20:0x..."). Asset metadata
// resolution lives outside this engine; here an asset is just its identifier.
type Asset string

func (a Asset) String() string { return string(a) }

// assetSet is the filter applied during replay: a nil set matches every
// asset, a non-nil set matches only its members.
type assetSet map[Asset]struct{}

func newAssetSet(assets []Asset) assetSet {
	if assets == nil {
		return nil
	}
	s := make(assetSet, len(assets))
	for _, a := range assets {
		s[a] = struct{}{}
	}
	return s
}

func (s assetSet) contains(a Asset) bool {
	if s == nil {
		return true
	}
	_, ok := s[a]
	return ok
}
