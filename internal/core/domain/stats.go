package domain

// MarketplaceStats - счетчики для админки.
type MarketplaceStats struct {
	Users            int64
	Properties       int64
	ActiveProperties int64
	Favorites        int64
	Inquiries        int64
}
