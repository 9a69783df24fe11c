package interfaces

// Repository defines the interface for data persistence. Catalog records are
// written only by administrative flows; the engine reads them through the
// catalog cache.
type Repository interface {
	Hazard() HazardRepository
	Rule() RuleRepository
	Strategy() StrategyRepository
	Profile() ProfileRepository

	Close() error
}
