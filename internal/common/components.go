package common

const (
	ComponentSynchronizer = "synchronizer"
	ComponentSwapDetector = "swap-detector"
	ComponentRPC          = "rpc"
	ComponentStore        = "store"
	ComponentArchiver     = "archiver"
	ComponentAPI          = "api"
	ComponentMaintenance  = "maintenance"
)

var AllComponents = map[string]struct{}{
	ComponentSynchronizer: {},
	ComponentSwapDetector: {},
	ComponentRPC:          {},
	ComponentStore:        {},
	ComponentArchiver:     {},
	ComponentAPI:          {},
	ComponentMaintenance:  {},
}
