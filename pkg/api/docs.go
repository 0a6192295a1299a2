// Package api provides REST API handlers for SwapIndexor
// @title SwapIndexor API
// @version 1.0
// @description REST API for querying DEX swaps indexed by SwapIndexor
// @contact.name API Support
// @contact.url https://github.com/goran-ethernal/SwapIndexor
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /api/v1
// @schemes http https
package api

//go:generate swag init --generalInfo docs.go --dir ./,../../internal/synchronizer,../chain --output ./docs --outputTypes go
