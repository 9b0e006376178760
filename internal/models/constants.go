package models

// Number of fields in a statement row: date, cost, rating, category, description.
const PurchaseFieldCount = 5

// File permissions
const (
	PermissionCacheFile = 0600
	PermissionDirectory = 0750
)
